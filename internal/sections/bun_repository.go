package sections

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	prismsections "github.com/prismcms/prism/sections"
)

// BunRepository implements Repository on top of go-repository-bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Instance]
}

// NewBunRepository creates a SQL-backed section instance repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: prismsections.NewInstanceRepository(db),
	}
}

func (r *BunRepository) Create(ctx context.Context, instance *Instance) (*Instance, error) {
	record, err := r.repo.Create(ctx, instance)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Instance, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "section", id.String())
	}
	return record, nil
}

func (r *BunRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Instance, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, instance *Instance) (*Instance, error) {
	record, err := r.repo.Update(ctx, instance)
	if err != nil {
		return nil, mapRepositoryError(err, "section", instance.ID.String())
	}
	return record, nil
}

// BulkUpdatePositions writes the batch inside a single transaction so a
// concurrent reader never observes a partially applied reorder.
func (r *BunRepository) BulkUpdatePositions(ctx context.Context, instances []*Instance) error {
	if len(instances) == 0 {
		return nil
	}
	if r.db == nil {
		return fmt.Errorf("section repository: database not configured")
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, instance := range instances {
			res, err := tx.NewUpdate().
				Model(instance).
				Column("position", "updated_at", "updated_by").
				WherePK().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update section position: %w", err)
			}
			if affected, _ := res.RowsAffected(); affected == 0 {
				return &NotFoundError{Resource: "section", Key: instance.ID.String()}
			}
		}
		return nil
	})
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Instance{ID: id}); err != nil {
		return mapRepositoryError(err, "section", id.String())
	}
	return nil
}

func (r *BunRepository) DeleteByPage(ctx context.Context, pageID uuid.UUID) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("section repository: database not configured")
	}
	res, err := r.db.NewDelete().
		Model((*Instance)(nil)).
		Where("?TableAlias.page_id = ?", pageID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete page sections: %w", err)
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
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
