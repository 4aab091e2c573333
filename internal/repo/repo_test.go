package repo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/job_tracker/internal/models"
	pkgdb "github.com/Skotchmaster/job_tracker/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), pkgdb.SQLitePrefix+":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	return &GormRepo{DB: db}
}

func newUser(email string) *models.User {
	return &models.User{Name: "Ada", Surname: "Lovelace", Email: email, PasswordHash: "hash"}
}

func TestGormRepo_CreateAndFindUser(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := newUser("a@x.com")
	require.NoError(t, r.CreateUser(ctx, u))
	require.NotZero(t, u.ID)
	assert.False(t, u.Created.IsZero())
	assert.False(t, u.Modified.IsZero())

	byEmail, err := r.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := r.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestGormRepo_FindUser_NotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.FindUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.FindUserByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_CreateUser_Duplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateUser(ctx, newUser("a@x.com")))
	assert.ErrorIs(t, r.CreateUser(ctx, newUser("a@x.com")), ErrDuplicateKey)
}

func TestGormRepo_CreateUser_ConcurrentDuplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.CreateUser(ctx, newUser("race@x.com"))
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicateKey):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dup)
}

func TestGormRepo_Trackers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	owner := newUser("owner@x.com")
	other := newUser("other@x.com")
	require.NoError(t, r.CreateUser(ctx, owner))
	require.NoError(t, r.CreateUser(ctx, other))

	empty, err := r.ListTrackersByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	tr := &models.Tracker{Title: "Backend dev", URL: "https://jobs.example/1", UserID: owner.ID}
	require.NoError(t, r.CreateTracker(ctx, tr))
	require.NoError(t, r.CreateTracker(ctx, &models.Tracker{Title: "SRE", UserID: other.ID}))

	mine, err := r.ListTrackersByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Backend dev", mine[0].Title)

	got, err := r.GetTracker(ctx, tr.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.example/1", got.URL)

	_, err = r.GetTracker(ctx, tr.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_CommentsAndAttachments(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := newUser("a@x.com")
	require.NoError(t, r.CreateUser(ctx, u))
	tr := &models.Tracker{Title: "Backend dev", UserID: u.ID}
	require.NoError(t, r.CreateTracker(ctx, tr))

	require.NoError(t, r.CreateComment(ctx, &models.Comment{Text: "applied", TrackerID: tr.ID}))
	require.NoError(t, r.CreateComment(ctx, &models.Comment{Text: "interview", TrackerID: tr.ID}))

	comments, err := r.ListCommentsByTracker(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "applied", comments[0].Text)
	assert.Equal(t, "interview", comments[1].Text)

	none, err := r.ListCommentsByTracker(ctx, tr.ID+100)
	require.NoError(t, err)
	assert.Empty(t, none)

	a := &models.Attachment{TrackerID: tr.ID, Filename: "cv.pdf", Size: 3, StorageKey: "k1"}
	require.NoError(t, r.CreateAttachment(ctx, a))
	assert.ErrorIs(t, r.CreateAttachment(ctx, &models.Attachment{TrackerID: tr.ID, Filename: "x", StorageKey: "k1"}), ErrDuplicateKey)

	files, err := r.ListAttachmentsByTracker(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "cv.pdf", files[0].Filename)
}
