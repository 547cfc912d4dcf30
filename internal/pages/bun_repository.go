package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	prismpages "github.com/prismcms/prism/pages"
)

// BunRepository implements Repository on top of go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*Page]
}

// NewBunRepository creates a SQL-backed page repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: prismpages.NewPageRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, page *Page) (*Page, error) {
	record, err := r.repo.Create(ctx, page)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "page", slug)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, page *Page) (*Page, error) {
	record, err := r.repo.Update(ctx, page)
	if err != nil {
		return nil, mapRepositoryError(err, "page", page.ID.String())
	}
	return record, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Page{ID: id}); err != nil {
		return mapRepositoryError(err, "page", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
