package di

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/pages"
)

// pageExistenceAdapter answers section-placement existence checks from the
// page repository.
type pageExistenceAdapter struct {
	repo pages.Repository
}

func (a pageExistenceAdapter) Exists(ctx context.Context, pageID uuid.UUID) (bool, error) {
	_, err := a.repo.GetByID(ctx, pageID)
	if err != nil {
		var notFound *pages.NotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// pageLookupAdapter backs navigation read-time enrichment with page lookups.
type pageLookupAdapter struct {
	repo pages.Repository
}

func (a pageLookupAdapter) GetByID(ctx context.Context, pageID uuid.UUID) (*pages.Page, error) {
	return a.repo.GetByID(ctx, pageID)
}
