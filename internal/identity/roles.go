package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role captures the already-resolved capability level of a caller. Token
// verification happens outside the module; services only consume the result.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Actor identifies the caller of a mutating operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

var ErrForbidden = errors.New("identity: forbidden")

// ForbiddenError reports a role-gate rejection with enough context for
// user-facing messages.
type ForbiddenError struct {
	Role      Role
	Operation string
}

func (e *ForbiddenError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("role %s is not permitted", e.Role)
	}
	return fmt.Sprintf("role %s is not permitted to %s", e.Role, e.Operation)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NormalizeRole coerces arbitrary role strings into a known role, defaulting
// to viewer so unknown callers never gain write access.
func NormalizeRole(input string) Role {
	role := Role(strings.ToLower(strings.TrimSpace(input)))
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return role
	default:
		return RoleViewer
	}
}

// CanEdit reports whether the actor may perform content mutations.
func (a Actor) CanEdit() bool {
	switch a.Role {
	case RoleAdmin, RoleEditor:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RequireEditor rejects viewers for the named operation.
func (a Actor) RequireEditor(operation string) error {
	if a.CanEdit() {
		return nil
	}
	return &ForbiddenError{Role: a.Role, Operation: operation}
}

// RequireAdmin rejects any actor below admin for the named operation.
func (a Actor) RequireAdmin(operation string) error {
	if a.IsAdmin() {
		return nil
	}
	return &ForbiddenError{Role: a.Role, Operation: operation}
}
