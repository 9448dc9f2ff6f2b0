package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PurchaseRequest is the request body for buying an item
type PurchaseRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// WearRequest is the request body for wearing or unwearing an item
type WearRequest struct {
	Name string `json:"name"`
}

// PlaceRequest is the request body for placing a furniture piece
type PlaceRequest struct {
	Name string `json:"name"`
}

// MoveRequest is the request body for moving a placed instance
type MoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
