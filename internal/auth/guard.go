package auth

import "fmt"

// Action is an operation a caller wants to perform on an owned resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionModify Action = "modify"
	ActionDelete Action = "delete"
)

// Authorize allows the action only when the caller owns the resource. All
// actions are treated the same; there are no shared or delegated permissions.
//
// Existence must be checked before calling Authorize: a missing resource has
// no owner to compare against.
func Authorize(ownerID, callerID uint64, action Action) error {
	if ownerID == 0 || ownerID != callerID {
		return fmt.Errorf("%w: %s denied", ErrForbidden, action)
	}
	return nil
}
