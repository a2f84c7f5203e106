// internal/domain/caller.go
package domain

// Caller is the authenticated user making the current request.
// A nil *Caller means the request is unauthenticated.
type Caller struct {
	UserID int64
}

// NewCaller returns a caller for userID.
func NewCaller(userID int64) *Caller {
	return &Caller{UserID: userID}
}

// Require returns ErrUnauthenticated for a nil caller.
func (c *Caller) Require() error {
	if c == nil || c.UserID <= 0 {
		return ErrUnauthenticated
	}
	return nil
}

// Owns reports whether the caller is ownerID.
func (c *Caller) Owns(ownerID int64) bool {
	return c != nil && c.UserID > 0 && c.UserID == ownerID
}
