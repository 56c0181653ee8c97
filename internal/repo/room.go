package repo

import (
	"context"

	"github.com/uptrace/bun"

	"gdhotel.dev/backend/internal/model"
)

// Room is the read-mostly collaborator activities borrow display data from.
// Assignments live in an explicit join table instead of a serialized id list
// on the activity row.
type Room struct {
	db *bun.DB
}

func NewRoom(db *bun.DB) *Room {
	return &Room{db: db}
}

func (r *Room) RoomNumbers(ctx context.Context, activityID int) ([]string, error) {
	var numbers []string
	err := r.db.NewSelect().
		Model((*model.Room)(nil)).
		Column("r.room_number").
		Join("JOIN activity_rooms AS ar ON ar.room_id = r.room_id").
		Where("ar.activity_id = ?", activityID).
		Order("r.room_number ASC").
		Scan(ctx, &numbers)
	if err != nil {
		return nil, err
	}
	if numbers == nil {
		numbers = []string{}
	}
	return numbers, nil
}

// ReplaceAssignments makes the join rows for activityID match roomIDs exactly.
func (r *Room) ReplaceAssignments(ctx context.Context, activityID int, roomIDs []int) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.ActivityRoom)(nil)).
			Where("activity_id = ?", activityID).
			Exec(ctx); err != nil {
			return err
		}

		if len(roomIDs) == 0 {
			return nil
		}

		assignments := make([]*model.ActivityRoom, 0, len(roomIDs))
		for _, roomID := range roomIDs {
			assignments = append(assignments, &model.ActivityRoom{
				ActivityID: activityID,
				RoomID:     roomID,
			})
		}
		_, err := tx.NewInsert().
			Model(&assignments).
			Exec(ctx)
		return err
	})
}
