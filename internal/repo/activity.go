package repo

import (
	"context"

	"github.com/uptrace/bun"

	"gdhotel.dev/backend/internal/model"
	"gdhotel.dev/backend/internal/pkg/apperr"
	"gdhotel.dev/backend/internal/repo/selector"
)

// Activity persists activity rows. Every query is scoped to the owning
// account: the owner-scoped WHERE clause is the only concurrency guard the
// design relies on.
type Activity struct {
	db  *bun.DB
	sel selector.S[model.Activity]
}

func NewActivity(db *bun.DB) *Activity {
	return &Activity{db: db, sel: selector.New[model.Activity](db)}
}

func (r *Activity) List(ctx context.Context, accountID int) ([]*model.Activity, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("account_id = ?", accountID).
			Order("activity_id ASC")
	})
}

func (r *Activity) GetByID(ctx context.Context, id, accountID int) (*model.Activity, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("activity_id = ?", id).
			Where("account_id = ?", accountID)
	})
}

func (r *Activity) Create(ctx context.Context, activity *model.Activity) error {
	_, err := r.db.NewInsert().
		Model(activity).
		Returning("activity_id").
		Exec(ctx)
	return err
}

func (r *Activity) Update(ctx context.Context, activity *model.Activity) error {
	res, err := r.db.NewUpdate().
		Model(activity).
		Column("title", "section", "additional_text", "start_date", "end_date", "logo", "image", "video").
		Where("activity_id = ?", activity.ActivityID).
		Where("account_id = ?", activity.AccountID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *Activity) Delete(ctx context.Context, id, accountID int) error {
	res, err := r.db.NewDelete().
		Model((*model.Activity)(nil)).
		Where("activity_id = ?", id).
		Where("account_id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
