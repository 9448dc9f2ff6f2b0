package mocks

import (
	"fmt"

	"github.com/tikkit/tikkit/internal/dependencies/random"
)

// MockRandom is a deterministic Random for testing. Intn returns queued
// values (0 when the queue is empty); Token returns prefix plus a counter.
type MockRandom struct {
	IntnResults []int
	intnIndex   int
	tokenSeq    int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Token returns prefix followed by an incrementing counter
func (r *MockRandom) Token(prefix string) string {
	r.tokenSeq++
	return fmt.Sprintf("%s%06d", prefix, r.tokenSeq)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}
