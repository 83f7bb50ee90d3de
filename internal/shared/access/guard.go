package access

import "streamhub-backend/internal/shared/apperror"

// ============================================
// ACCESS GUARD
// ============================================

// Authorize resolves a caller to Admin or Anonymous for session-gated operations.
// The API key alone does not make a caller Admin here; only RequireAdminOrAPIKey honours it.
func Authorize(c Caller) Role {
	if c.Authenticated() && c.IsAdmin {
		return Admin
	}
	return Anonymous
}

// RequireAdmin gates every mutating catalog and user operation.
func RequireAdmin(c Caller) error {
	if Authorize(c) != Admin {
		return apperror.Forbidden()
	}
	return nil
}

// RequireAdminOrAPIKey gates notification creation.
func RequireAdminOrAPIKey(c Caller) error {
	if c.ViaAPIKey || Authorize(c) == Admin {
		return nil
	}
	return apperror.Forbidden()
}

// ============================================
// READ POLICY
// ============================================

type ReadMode string

const (
	ReadPublic  ReadMode = "public"
	ReadPrivate ReadMode = "private"
)

// ReadPolicy decides catalog read access.
//   - public: everyone may read, anonymous callers see published rows only
//   - private: admin only
type ReadPolicy struct {
	Mode ReadMode
}

func NewReadPolicy(mode string) ReadPolicy {
	if ReadMode(mode) == ReadPrivate {
		return ReadPolicy{Mode: ReadPrivate}
	}
	return ReadPolicy{Mode: ReadPublic}
}

// CheckRead returns Forbidden when the caller may not read the catalog at all.
func (p ReadPolicy) CheckRead(c Caller) error {
	if p.Mode == ReadPrivate {
		return RequireAdmin(c)
	}
	return nil
}

// SeesDrafts reports whether draft rows are visible to the caller.
func (p ReadPolicy) SeesDrafts(c Caller) bool {
	return Authorize(c) == Admin
}
