package user

import (
	"errors"
	"time"
)

var (
	ErrInvalidName = errors.New("display name is required")
	ErrNoProfile   = errors.New("no profile signed in")
)

// Profile is the operator's display name. It is not an account and carries
// no credentials.
type Profile struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
