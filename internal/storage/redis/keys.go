package redis

import (
	"fmt"

	"github.com/tikkit/tikkit/internal/model"
)

// Key prefix for all room/avatar data
const keyPrefix = "tikkit"

// userKey returns the Redis key for a user account record
func userKey(uuid model.UserID) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, uuid)
}

// usernameIndexKey returns the Redis key for the username -> uuid index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// furnitureKey returns the Redis key for a user's furniture aggregate
func furnitureKey(uuid model.UserID) string {
	return fmt.Sprintf("%s:furniture:%d", keyPrefix, uuid)
}

// clothesKey returns the Redis key for a user's clothing aggregate
func clothesKey(uuid model.UserID) string {
	return fmt.Sprintf("%s:clothes:%d", keyPrefix, uuid)
}

// nextUUIDKey returns the Redis key of the uuid allocation counter
func nextUUIDKey() string {
	return fmt.Sprintf("%s:next_uuid", keyPrefix)
}
