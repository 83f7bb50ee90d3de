package access

import "crypto/subtle"

// Role is the outcome of authorizing a caller
type Role int

const (
	Anonymous Role = iota
	Admin
)

func (r Role) String() string {
	if r == Admin {
		return "admin"
	}
	return "anonymous"
}

// Caller is the identity resolved for one inbound request.
// UserID is zero when no valid session was presented.
type Caller struct {
	UserID    int64
	IsAdmin   bool // session user has is_admin and is active
	ViaAPIKey bool // request carried the configured notification API key
}

// AnonymousCaller has neither a session nor an API key.
var AnonymousCaller = Caller{}

func SessionCaller(userID int64, isAdmin bool) Caller {
	return Caller{UserID: userID, IsAdmin: isAdmin}
}

func (c Caller) Authenticated() bool {
	return c.UserID > 0
}

// MatchesAPIKey compares a presented key against the configured secret
// in constant time. An empty configured secret never matches.
func MatchesAPIKey(presented, configured string) bool {
	if configured == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
