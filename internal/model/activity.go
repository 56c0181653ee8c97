package model

import (
	"github.com/uptrace/bun"
)

// Activity is an owner-scoped dashboard entry with three independent ordered
// attachment categories. Every filename in Logo/Image/Video refers to a blob
// in the artifact store; the lists are persisted as JSONB arrays and are never
// null.
type Activity struct {
	bun.BaseModel `bun:"table:activity,alias:a"`

	ActivityID     int    `bun:"activity_id,pk,autoincrement" json:"id"`
	AccountID      int    `bun:"account_id" json:"-"`
	Title          string `bun:"title" json:"title"`
	Section        string `bun:"section" json:"section"`
	AdditionalText string `bun:"additional_text" json:"additional_text"`

	// StartDate and EndDate are stored in the canonical textual form
	// `YYYY-MM-DD HH:mm:ss`, UTC, no offset. Ordering between the two is not
	// enforced anywhere.
	StartDate string `bun:"start_date" json:"start_date"`
	EndDate   string `bun:"end_date" json:"end_date"`

	Logo  []string `bun:"logo,type:jsonb" json:"logo"`
	Image []string `bun:"image,type:jsonb" json:"image"`
	Video []string `bun:"video,type:jsonb" json:"video"`
}

// Attachments returns the filenames referenced by every category, in category
// order logo, image, video.
func (a *Activity) Attachments() []string {
	names := make([]string, 0, len(a.Logo)+len(a.Image)+len(a.Video))
	names = append(names, a.Logo...)
	names = append(names, a.Image...)
	names = append(names, a.Video...)
	return names
}

// EnsureLists replaces nil attachment lists with empty ones so the serialized
// record always carries three arrays.
func (a *Activity) EnsureLists() {
	if a.Logo == nil {
		a.Logo = []string{}
	}
	if a.Image == nil {
		a.Image = []string{}
	}
	if a.Video == nil {
		a.Video = []string{}
	}
}

// ActivityDetail is an Activity annotated with display data resolved from
// other collaborators, currently the numbers of the rooms assigned to it.
type ActivityDetail struct {
	Activity

	RoomNumbers []string `json:"room_numbers"`
}
