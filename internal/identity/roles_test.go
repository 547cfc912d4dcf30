package identity_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/identity"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]identity.Role{
		"admin":   identity.RoleAdmin,
		" Editor": identity.RoleEditor,
		"VIEWER":  identity.RoleViewer,
		"":        identity.RoleViewer,
		"root":    identity.RoleViewer,
	}
	for input, want := range cases {
		if got := identity.NormalizeRole(input); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestActor_RequireEditor(t *testing.T) {
	editor := identity.Actor{ID: uuid.New(), Role: identity.RoleEditor}
	if err := editor.RequireEditor("edit"); err != nil {
		t.Fatalf("editor rejected: %v", err)
	}

	admin := identity.Actor{ID: uuid.New(), Role: identity.RoleAdmin}
	if err := admin.RequireEditor("edit"); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}

	viewer := identity.Actor{ID: uuid.New(), Role: identity.RoleViewer}
	err := viewer.RequireEditor("edit")
	if !errors.Is(err, identity.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var forbidden *identity.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %T", err)
	}
	if forbidden.Operation != "edit" {
		t.Fatalf("expected operation context, got %q", forbidden.Operation)
	}
}

func TestActor_RequireAdmin(t *testing.T) {
	admin := identity.Actor{ID: uuid.New(), Role: identity.RoleAdmin}
	if err := admin.RequireAdmin("publish"); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}

	editor := identity.Actor{ID: uuid.New(), Role: identity.RoleEditor}
	if err := editor.RequireAdmin("publish"); !errors.Is(err, identity.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for editor, got %v", err)
	}
}
