package model

import (
	"github.com/uptrace/bun"
)

type Room struct {
	bun.BaseModel `bun:"table:rooms,alias:r"`

	RoomID     int    `bun:"room_id,pk,autoincrement" json:"id"`
	AccountID  int    `bun:"account_id" json:"-"`
	RoomNumber string `bun:"room_number" json:"room_number"`
}

// ActivityRoom links an activity to a room it is advertised for.
type ActivityRoom struct {
	bun.BaseModel `bun:"table:activity_rooms,alias:ar"`

	ActivityID int `bun:"activity_id"`
	RoomID     int `bun:"room_id"`
}
