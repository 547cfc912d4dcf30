package sections

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewInstanceRepository creates a repository for section Instance entities.
func NewInstanceRepository(db *bun.DB) repository.Repository[*Instance] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Instance]{
		NewRecord: func() *Instance { return &Instance{} },
		GetID: func(i *Instance) uuid.UUID {
			return i.ID
		},
		SetID: func(i *Instance, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(i *Instance) string {
			return i.ID.String()
		},
	})
}
