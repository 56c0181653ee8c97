package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdhotel.dev/backend/internal/app/appconfig"
	"gdhotel.dev/backend/internal/model"
	"gdhotel.dev/backend/internal/pkg/apperr"
)

type fakeStore struct {
	objects     map[string]string
	seq         int
	failSave    bool
	failDeletes map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:     map[string]string{},
		failDeletes: map[string]bool{},
	}
}

func (f *fakeStore) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	if f.failSave {
		return "", errors.New("store down")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.seq++
	name := fmt.Sprintf("17000000000000%05d%s", f.seq, filepath.Ext(originalFilename))
	f.objects[name] = string(b)
	return name, nil
}

func (f *fakeStore) Delete(ctx context.Context, filename string) error {
	if f.failDeletes[filename] {
		return errors.Errorf("cannot delete %s", filename)
	}
	if _, ok := f.objects[filename]; !ok {
		return errors.Errorf("no such artifact %s", filename)
	}
	delete(f.objects, filename)
	return nil
}

type fakeActivityRepo struct {
	rows       map[int]*model.Activity
	nextID     int
	failCreate bool
	failList   bool
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{rows: map[int]*model.Activity{}}
}

func (f *fakeActivityRepo) List(ctx context.Context, accountID int) ([]*model.Activity, error) {
	if f.failList {
		return nil, errors.New("db down")
	}
	var out []*model.Activity
	for _, row := range f.rows {
		if row.AccountID == accountID {
			copied := *row
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivityID < out[j].ActivityID })
	return out, nil
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id, accountID int) (*model.Activity, error) {
	row, ok := f.rows[id]
	if !ok || row.AccountID != accountID {
		return nil, apperr.ErrNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *model.Activity) error {
	if f.failCreate {
		return errors.New("db down")
	}
	f.nextID++
	activity.ActivityID = f.nextID
	copied := *activity
	f.rows[activity.ActivityID] = &copied
	return nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, activity *model.Activity) error {
	row, ok := f.rows[activity.ActivityID]
	if !ok || row.AccountID != activity.AccountID {
		return apperr.ErrNotFound
	}
	copied := *activity
	f.rows[activity.ActivityID] = &copied
	return nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id, accountID int) error {
	row, ok := f.rows[id]
	if !ok || row.AccountID != accountID {
		return apperr.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeRoomRepo struct {
	numbers     map[int]string
	assignments map[int][]int
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		numbers:     map[int]string{},
		assignments: map[int][]int{},
	}
}

func (f *fakeRoomRepo) RoomNumbers(ctx context.Context, activityID int) ([]string, error) {
	out := []string{}
	for _, roomID := range f.assignments[activityID] {
		if n, ok := f.numbers[roomID]; ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRoomRepo) ReplaceAssignments(ctx context.Context, activityID int, roomIDs []int) error {
	if len(roomIDs) == 0 {
		delete(f.assignments, activityID)
		return nil
	}
	f.assignments[activityID] = append([]int(nil), roomIDs...)
	return nil
}

func newTestService() (*Activity, *fakeActivityRepo, *fakeRoomRepo, *fakeStore) {
	activityRepo := newFakeActivityRepo()
	roomRepo := newFakeRoomRepo()
	store := newFakeStore()
	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{UploadMaxFilesPerField: 10}}
	return NewActivity(activityRepo, roomRepo, store, conf), activityRepo, roomRepo, store
}

func validForm() *ActivityForm {
	return &ActivityForm{
		Title:     "Fall Fest",
		Section:   "events",
		StartDate: "2024-09-01T00:00:00Z",
		EndDate:   "2024-09-02T00:00:00Z",
	}
}

func upload(name, content string) Upload {
	return Upload{Filename: name, Content: strings.NewReader(content)}
}

func TestCreateStoresArtifactsAndRow(t *testing.T) {
	svc, activityRepo, _, store := newTestService()

	detail, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{
		Logo: []Upload{upload("fileA.png", "logo bytes")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Fall Fest", detail.Title)
	assert.Equal(t, "2024-09-01 00:00:00", detail.StartDate)
	assert.Equal(t, "2024-09-02 00:00:00", detail.EndDate)

	require.Len(t, detail.Logo, 1)
	assert.True(t, strings.HasSuffix(detail.Logo[0], ".png"))
	assert.Equal(t, []string{}, detail.Image)
	assert.Equal(t, []string{}, detail.Video)

	// every referenced artifact is readable in the store
	assert.Equal(t, "logo bytes", store.objects[detail.Logo[0]])

	// and the row exists under the owner's scope
	row, err := activityRepo.GetByID(context.Background(), detail.ActivityID, 1)
	require.NoError(t, err)
	assert.Equal(t, detail.Logo, row.Logo)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	svc, _, _, _ := newTestService()

	seen := map[int]bool{}
	for i := 0; i < 5; i++ {
		detail, err := svc.Create(context.Background(), 1, validForm(), nil)
		require.NoError(t, err)
		assert.False(t, seen[detail.ActivityID], "id %d assigned twice", detail.ActivityID)
		seen[detail.ActivityID] = true
	}
}

func TestCreateValidatesBeforeAnyWrite(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *ActivityForm)
	}{
		{"MalformedStartDate", func(f *ActivityForm) { f.StartDate = "not-a-date" }},
		{"MalformedEndDate", func(f *ActivityForm) { f.EndDate = "2024-99-99" }},
		{"MissingTitle", func(f *ActivityForm) { f.Title = "   " }},
		{"MissingSection", func(f *ActivityForm) { f.Section = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, activityRepo, _, store := newTestService()
			form := validForm()
			tc.mutate(form)

			_, err := svc.Create(context.Background(), 1, form, &UploadSet{
				Logo: []Upload{upload("fileA.png", "x")},
			})
			assert.ErrorIs(t, err, apperr.ErrInvalidReq)

			// validate-before-write: zero artifacts, zero rows
			assert.Empty(t, store.objects)
			assert.Empty(t, activityRepo.rows)
		})
	}
}

func TestCreateRejectsTooManyFilesPerCategory(t *testing.T) {
	svc, _, _, store := newTestService()

	images := make([]Upload, 11)
	for i := range images {
		images[i] = upload("img.jpg", "x")
	}

	_, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{Image: images})
	assert.ErrorIs(t, err, apperr.ErrInvalidReq)
	assert.Empty(t, store.objects)
}

func TestCreateStoreFailureAbortsBeforeRow(t *testing.T) {
	svc, activityRepo, _, store := newTestService()
	store.failSave = true

	_, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{
		Logo: []Upload{upload("fileA.png", "x")},
	})
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.Empty(t, activityRepo.rows)
}

func TestCreateRepoFailureLeavesOrphanedArtifacts(t *testing.T) {
	svc, activityRepo, _, store := newTestService()
	activityRepo.failCreate = true

	_, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{
		Logo: []Upload{upload("fileA.png", "x")},
	})
	assert.ErrorIs(t, err, apperr.ErrPersistence)

	// orphaned-but-harmless: the artifact survives, no row references it
	assert.Len(t, store.objects, 1)
	assert.Empty(t, activityRepo.rows)
}

func TestUpdateReplacesAndClearsCategories(t *testing.T) {
	svc, activityRepo, _, store := newTestService()

	created, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{
		Logo: []Upload{upload("old.png", "old logo")},
	})
	require.NoError(t, err)
	oldLogo := created.Logo[0]

	updated, err := svc.Update(context.Background(), created.ActivityID, 1, validForm(), &UploadSet{
		Image: []Upload{upload("fileB.jpg", "new image")},
	})
	require.NoError(t, err)

	// image replaced, logo cleared on omit
	assert.Equal(t, []string{}, updated.Logo)
	require.Len(t, updated.Image, 1)
	assert.True(t, strings.HasSuffix(updated.Image[0], ".jpg"))
	assert.Equal(t, []string{}, updated.Video)

	// the superseded artifact is orphaned, not deleted
	assert.Equal(t, "old logo", store.objects[oldLogo])

	row, err := activityRepo.GetByID(context.Background(), created.ActivityID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{}, row.Logo)
	assert.Equal(t, updated.Image, row.Image)
}

func TestUpdateWrongOwnerMutatesNothing(t *testing.T) {
	svc, activityRepo, _, store := newTestService()

	created, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{
		Logo: []Upload{upload("a.png", "x")},
	})
	require.NoError(t, err)
	artifactsBefore := len(store.objects)

	form := validForm()
	form.Title = "Hijacked"
	_, err = svc.Update(context.Background(), created.ActivityID, 2, form, &UploadSet{
		Image: []Upload{upload("b.jpg", "y")},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Len(t, store.objects, artifactsBefore)
	row, err := activityRepo.GetByID(context.Background(), created.ActivityID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Fall Fest", row.Title)
}

func TestUpdateNonexistentID(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Update(context.Background(), 404, 1, validForm(), nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteRemovesRowAndArtifacts(t *testing.T) {
	svc, _, _, store := newTestService()

	created, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{
		Logo:  []Upload{upload("a.png", "x")},
		Video: []Upload{upload("v.mp4", "y")},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ActivityID, 1))
	assert.Empty(t, store.objects)

	details, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestDeleteIsBestEffortOnArtifacts(t *testing.T) {
	svc, activityRepo, _, store := newTestService()

	created, err := svc.Create(context.Background(), 1, validForm(), &UploadSet{
		Logo:  []Upload{upload("a.png", "x")},
		Image: []Upload{upload("b.jpg", "y")},
	})
	require.NoError(t, err)
	stuck := created.Image[0]
	store.failDeletes[stuck] = true

	// the failing artifact delete must not abort the row delete
	require.NoError(t, svc.Delete(context.Background(), created.ActivityID, 1))

	_, err = activityRepo.GetByID(context.Background(), created.ActivityID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// the stuck artifact survives as an orphan, the other one is gone
	assert.Contains(t, store.objects, stuck)
	assert.NotContains(t, store.objects, created.Logo[0])
}

func TestDeleteTwice(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, validForm(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ActivityID, 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ActivityID, 1), apperr.ErrNotFound)
}

func TestDeleteWrongOwner(t *testing.T) {
	svc, activityRepo, _, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, validForm(), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ActivityID, 2), apperr.ErrNotFound)
	_, err = activityRepo.GetByID(context.Background(), created.ActivityID, 1)
	assert.NoError(t, err)
}

func TestListIsOwnerScopedAndResolvesRooms(t *testing.T) {
	svc, _, roomRepo, _ := newTestService()
	roomRepo.numbers[10] = "101"
	roomRepo.numbers[11] = "102"

	form := validForm()
	form.RoomIDs = []int{10, 11}
	mine, err := svc.Create(context.Background(), 1, form, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 2, validForm(), nil)
	require.NoError(t, err)

	details, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, mine.ActivityID, details[0].ActivityID)
	assert.Equal(t, []string{"101", "102"}, details[0].RoomNumbers)
}

func TestListRepoFailure(t *testing.T) {
	svc, activityRepo, _, _ := newTestService()
	activityRepo.failList = true

	_, err := svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}
