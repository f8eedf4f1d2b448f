package usecase

import "fmt"

// IsOwner reports whether the requesting user created the resource.
func IsOwner(resourceOwnerID, requestingUserID int64) bool {
	return resourceOwnerID == requestingUserID
}

func authorize(resourceOwnerID, requestingUserID int64, what string) error {
	if !IsOwner(resourceOwnerID, requestingUserID) {
		return fmt.Errorf("%s: %w", what, ErrUnauthorized)
	}
	return nil
}
