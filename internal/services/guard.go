package services

import "github.com/anonto42/idea-board/backend/internal/common"

// Owned is implemented by records that have a single author.
type Owned interface {
	OwnerID() string
}

// EnsureOwner returns common.ErrForbidden unless callerID authored entity.
func EnsureOwner(entity Owned, callerID string) error {
	if callerID == "" || entity.OwnerID() != callerID {
		return common.ErrForbidden
	}
	return nil
}
