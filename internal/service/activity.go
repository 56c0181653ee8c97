package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"gdhotel.dev/backend/internal/app/appconfig"
	"gdhotel.dev/backend/internal/model"
	"gdhotel.dev/backend/internal/pkg/apperr"
	"gdhotel.dev/backend/internal/pkg/observability"
	"gdhotel.dev/backend/internal/storage"
	"gdhotel.dev/backend/internal/util/timefmt"
)

// opTimeout bounds a single lifecycle operation, including all of its
// artifact store and repository calls.
const opTimeout = 15 * time.Second

// Upload is one raw blob received from a multipart submission, together with
// the filename the client supplied. Only the extension of that filename
// survives into the stored artifact name.
type Upload struct {
	Filename string
	Content  io.Reader
}

// UploadSet groups uploads by attachment category.
type UploadSet struct {
	Logo  []Upload
	Image []Upload
	Video []Upload
}

// ActivityForm carries the scalar fields of a create/update submission.
type ActivityForm struct {
	Title          string `validate:"required"`
	Section        string `validate:"required"`
	AdditionalText string
	StartDate      string `validate:"required"`
	EndDate        string `validate:"required"`
	RoomIDs        []int
}

type ActivityRepo interface {
	List(ctx context.Context, accountID int) ([]*model.Activity, error)
	GetByID(ctx context.Context, id, accountID int) (*model.Activity, error)
	Create(ctx context.Context, activity *model.Activity) error
	Update(ctx context.Context, activity *model.Activity) error
	Delete(ctx context.Context, id, accountID int) error
}

type RoomRepo interface {
	RoomNumbers(ctx context.Context, activityID int) ([]string, error)
	ReplaceAssignments(ctx context.Context, activityID int, roomIDs []int) error
}

// Activity orchestrates the lifecycle of activity rows and their attachments.
// The invariant it maintains is ordering within a single operation: artifacts
// are written before the row references them, and deleted (best-effort)
// before the row is removed. When the two stores do diverge, the divergence
// is always an orphaned artifact, never a dangling reference.
type Activity struct {
	ActivityRepo ActivityRepo
	RoomRepo     RoomRepo
	Store        storage.Store

	maxFilesPerCategory int
}

func NewActivity(activityRepo ActivityRepo, roomRepo RoomRepo, store storage.Store, conf *appconfig.Config) *Activity {
	return &Activity{
		ActivityRepo:        activityRepo,
		RoomRepo:            roomRepo,
		Store:               store,
		maxFilesPerCategory: conf.UploadMaxFilesPerField,
	}
}

// List returns all activities of the owner, annotated with their assigned
// room numbers. It has no side effects.
func (s *Activity) List(ctx context.Context, accountID int) ([]*model.ActivityDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	activities, err := s.ActivityRepo.List(ctx, accountID)
	if err != nil {
		return nil, s.persistenceErr(ctx, err, "failed to list activities")
	}

	details := make([]*model.ActivityDetail, 0, len(activities))
	for _, activity := range activities {
		detail, err := s.detail(ctx, activity)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// Create validates the submission, writes every uploaded blob to the artifact
// store, then inserts the row referencing the stored names. Validation runs
// before any write. A repository failure after artifacts were stored leaves
// them as logged orphans; they are not rolled back.
func (s *Activity) Create(ctx context.Context, accountID int, form *ActivityForm, files *UploadSet) (*model.ActivityDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if files == nil {
		files = &UploadSet{}
	}

	start, end, err := s.validate(form, files)
	if err != nil {
		return nil, err
	}

	saved, err := s.saveUploads(ctx, files)
	if err != nil {
		s.logOrphans(ctx, "activity.create", saved.all())
		log.Ctx(ctx).Error().Err(err).Str("evt.name", "activity.create").Msg("artifact write failed")
		return nil, apperr.ErrStorage
	}

	activity := &model.Activity{
		AccountID:      accountID,
		Title:          strings.TrimSpace(form.Title),
		Section:        strings.TrimSpace(form.Section),
		AdditionalText: form.AdditionalText,
		StartDate:      start,
		EndDate:        end,
		Logo:           saved.logo,
		Image:          saved.image,
		Video:          saved.video,
	}
	activity.EnsureLists()

	if err := s.ActivityRepo.Create(ctx, activity); err != nil {
		s.logOrphans(ctx, "activity.create", activity.Attachments())
		return nil, s.persistenceErr(ctx, err, "failed to insert activity")
	}

	if len(form.RoomIDs) > 0 {
		if err := s.RoomRepo.ReplaceAssignments(ctx, activity.ActivityID, form.RoomIDs); err != nil {
			return nil, s.persistenceErr(ctx, err, "failed to assign rooms")
		}
	}

	return s.detail(ctx, activity)
}

// Update rewrites the row's mutable fields to reflect the submission exactly.
// Newly uploaded files replace the stored list of their category; a category
// with no new files is cleared, not preserved. Artifacts referenced by the
// previous lists are left in the store; orphan cleanup is an offline concern.
func (s *Activity) Update(ctx context.Context, id, accountID int, form *ActivityForm, files *UploadSet) (*model.ActivityDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if files == nil {
		files = &UploadSet{}
	}

	if _, err := s.ActivityRepo.GetByID(ctx, id, accountID); err != nil {
		return nil, s.readErr(ctx, err)
	}

	start, end, err := s.validate(form, files)
	if err != nil {
		return nil, err
	}

	saved, err := s.saveUploads(ctx, files)
	if err != nil {
		s.logOrphans(ctx, "activity.update", saved.all())
		log.Ctx(ctx).Error().Err(err).Str("evt.name", "activity.update").Msg("artifact write failed")
		return nil, apperr.ErrStorage
	}

	activity := &model.Activity{
		ActivityID:     id,
		AccountID:      accountID,
		Title:          strings.TrimSpace(form.Title),
		Section:        strings.TrimSpace(form.Section),
		AdditionalText: form.AdditionalText,
		StartDate:      start,
		EndDate:        end,
		Logo:           saved.logo,
		Image:          saved.image,
		Video:          saved.video,
	}
	activity.EnsureLists()

	if err := s.ActivityRepo.Update(ctx, activity); err != nil {
		s.logOrphans(ctx, "activity.update", activity.Attachments())
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, s.persistenceErr(ctx, err, "failed to update activity")
	}

	if err := s.RoomRepo.ReplaceAssignments(ctx, id, form.RoomIDs); err != nil {
		return nil, s.persistenceErr(ctx, err, "failed to assign rooms")
	}

	return s.detail(ctx, activity)
}

// Delete is a two-phase teardown: best-effort artifact cleanup first, row
// removal second. An individual artifact-delete failure is logged and
// skipped; the row is removed whenever the read step found it.
func (s *Activity) Delete(ctx context.Context, id, accountID int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	activity, err := s.ActivityRepo.GetByID(ctx, id, accountID)
	if err != nil {
		return s.readErr(ctx, err)
	}

	for _, name := range lo.Uniq(activity.Attachments()) {
		if err := s.Store.Delete(ctx, name); err != nil {
			observability.ArtifactDeleteFailures.WithLabelValues().Inc()
			log.Ctx(ctx).Warn().
				Err(err).
				Str("evt.name", "activity.artifact.delete").
				Str("artifact", name).
				Int("activityID", id).
				Msg("failed to delete artifact; leaving orphan")
		}
	}

	if err := s.RoomRepo.ReplaceAssignments(ctx, id, nil); err != nil {
		return s.persistenceErr(ctx, err, "failed to clear room assignments")
	}

	if err := s.ActivityRepo.Delete(ctx, id, accountID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return s.persistenceErr(ctx, err, "failed to delete activity")
	}
	return nil
}

// validate checks the scalar fields and file counts, and normalizes the time
// window. It must stay free of side effects: nothing may be written before it
// passes.
func (s *Activity) validate(form *ActivityForm, files *UploadSet) (start, end string, err error) {
	if strings.TrimSpace(form.Title) == "" {
		return "", "", apperr.ErrInvalidReq.Msg("invalid request: title is required")
	}
	if strings.TrimSpace(form.Section) == "" {
		return "", "", apperr.ErrInvalidReq.Msg("invalid request: section is required")
	}

	start, err = timefmt.Normalize(form.StartDate)
	if err != nil {
		return "", "", apperr.ErrInvalidReq.Msg("invalid request: malformed start_date: %s", err)
	}
	end, err = timefmt.Normalize(form.EndDate)
	if err != nil {
		return "", "", apperr.ErrInvalidReq.Msg("invalid request: malformed end_date: %s", err)
	}

	for category, uploads := range map[string][]Upload{
		"logo":  files.Logo,
		"image": files.Image,
		"video": files.Video,
	} {
		if len(uploads) > s.maxFilesPerCategory {
			return "", "", apperr.ErrInvalidReq.Msg("invalid request: at most %d %s files per request", s.maxFilesPerCategory, category)
		}
	}

	return start, end, nil
}

type savedSet struct {
	logo, image, video []string
}

func (s savedSet) all() []string {
	return lo.Flatten([][]string{s.logo, s.image, s.video})
}

// saveUploads writes every blob to the store in category order. On failure it
// returns the names written so far so the caller can account for them as
// orphans.
func (s *Activity) saveUploads(ctx context.Context, files *UploadSet) (savedSet, error) {
	var saved savedSet
	var err error

	if saved.logo, err = s.saveAll(ctx, "logo", files.Logo); err != nil {
		return saved, err
	}
	if saved.image, err = s.saveAll(ctx, "image", files.Image); err != nil {
		return saved, err
	}
	saved.video, err = s.saveAll(ctx, "video", files.Video)
	return saved, err
}

func (s *Activity) saveAll(ctx context.Context, category string, uploads []Upload) ([]string, error) {
	names := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		begin := time.Now()
		name, err := s.Store.Save(ctx, upload.Filename, upload.Content)
		observability.ArtifactSaveDuration.
			WithLabelValues(category).
			Observe(time.Since(begin).Seconds())
		if err != nil {
			return names, errors.Wrapf(err, "failed to store %s", upload.Filename)
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Activity) detail(ctx context.Context, activity *model.Activity) (*model.ActivityDetail, error) {
	numbers, err := s.RoomRepo.RoomNumbers(ctx, activity.ActivityID)
	if err != nil {
		return nil, s.persistenceErr(ctx, err, "failed to resolve room numbers")
	}
	activity.EnsureLists()
	return &model.ActivityDetail{
		Activity:    *activity,
		RoomNumbers: numbers,
	}, nil
}

func (s *Activity) logOrphans(ctx context.Context, op string, names []string) {
	if len(names) == 0 {
		return
	}
	observability.ArtifactOrphans.WithLabelValues(op).Add(float64(len(names)))
	log.Ctx(ctx).Warn().
		Str("evt.name", op+".artifact.orphan").
		Strs("artifacts", names).
		Msg("artifacts left unreferenced after failed operation")
}

func (s *Activity) readErr(ctx context.Context, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.ErrNotFound
	}
	return s.persistenceErr(ctx, err, "failed to read activity")
}

func (s *Activity) persistenceErr(ctx context.Context, err error, msg string) error {
	log.Ctx(ctx).Error().Err(err).Str("evt.name", "activity.persistence").Msg(msg)
	return apperr.ErrPersistence
}
