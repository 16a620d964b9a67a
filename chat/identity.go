package chat

// GuestUserID is the identity used when no valid credential is presented.
// Guests can chat but never have persisted history.
const GuestUserID = "anonymous"

// IsGuest reports whether id is the unauthenticated identity.
func IsGuest(id string) bool {
	return id == "" || id == GuestUserID
}
