package journal

import (
	"context"
	errs "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/oliverisaac/gratitude/lib/feedback"
	"github.com/oliverisaac/gratitude/lib/store"
	"github.com/oliverisaac/gratitude/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const placeholder = "feedback unavailable"

type fakeGenerator struct {
	calls []string
	fail  bool
}

func (f *fakeGenerator) Generate(ctx context.Context, content string) feedback.Result {
	f.calls = append(f.calls, content)
	if f.fail {
		return feedback.Failure(errs.New("remote exploded"))
	}
	return feedback.Success("great: " + content)
}

type failingWriter struct{}

func (failingWriter) CreateEntries(ctx context.Context, entries []types.JournalEntry) error {
	return errs.New("disk full")
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 17, 10, 30, 0, 0, time.Local)
}

func setup(t *testing.T, gen feedback.Generator) (*Service, *store.Store, types.User) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "journal.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := s.DB().DB(); err == nil {
			sqlDB.Close()
		}
	})

	ctx := context.Background()
	ok, err := s.Register(ctx, "mina", "pw", types.RoleStudent)
	require.NoError(t, err)
	require.True(t, ok)
	user, ok, err := s.Authenticate(ctx, "mina", "pw")
	require.NoError(t, err)
	require.True(t, ok)

	return NewService(s, gen, placeholder).WithClock(fixedClock), s, user
}

func TestSaveRejectsBlankSubmission(t *testing.T) {
	gen := &fakeGenerator{}
	svc, s, user := setup(t, gen)
	ctx := context.Background()

	_, err := svc.Save(ctx, user, Submission{Items: []Item{
		{Target: "  ", Content: "\n\t"},
		{},
	}})
	assert.ErrorIs(t, err, ErrEmptySubmission)
	assert.Empty(t, gen.calls)

	n, err := s.CountEntries(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestSaveStoresTrimmedEntry(t *testing.T) {
	gen := &fakeGenerator{}
	svc, s, user := setup(t, gen)
	ctx := context.Background()

	saved, err := svc.Save(ctx, user, Submission{Shared: true, Items: []Item{
		{Content: "  my sister shared lunch  "},
	}})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	got, err := s.ListEntriesForStudentOnDate(ctx, user.ID, "2024-05-17")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "my sister shared lunch", got[0].Content)
	assert.Equal(t, "2024-05-17", got[0].Date)
	assert.True(t, got[0].Shared)
	assert.Equal(t, 1, got[0].EntryNumber)
	assert.Equal(t, "great: my sister shared lunch", got[0].AIFeedback)
}

func TestSaveMultipleSlots(t *testing.T) {
	gen := &fakeGenerator{}
	svc, s, user := setup(t, gen)
	ctx := context.Background()

	_, err := svc.Save(ctx, user, Submission{Items: []Item{
		{Target: "mom", Content: " breakfast ", Feedback: "already previewed", FeedbackFor: "breakfast"},
		{},
		{Target: "teacher", Content: ""},
	}})
	require.NoError(t, err)

	got, err := s.ListEntriesForStudentOnDate(ctx, user.ID, "2024-05-17")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].EntryNumber)
	assert.Equal(t, "already previewed", got[0].AIFeedback)
	assert.False(t, got[0].Shared)
	assert.Equal(t, 3, got[1].EntryNumber)
	assert.Equal(t, "teacher", got[1].Target)
	assert.Empty(t, got[1].AIFeedback)
	// blank content is not sent to the generator
	assert.Empty(t, gen.calls)
}

func TestSaveRegeneratesUnmatchedFeedback(t *testing.T) {
	gen := &fakeGenerator{}
	svc, s, user := setup(t, gen)
	ctx := context.Background()

	_, err := svc.Save(ctx, user, Submission{Items: []Item{
		{Content: "my dog", Feedback: "typed by hand"},
		{Content: "my cat", Feedback: "written for the dog", FeedbackFor: "my dog"},
		{Content: "", Target: "grandma", Feedback: "nothing to praise", FeedbackFor: ""},
	}})
	require.NoError(t, err)

	got, err := s.ListEntriesForStudentOnDate(ctx, user.ID, "2024-05-17")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "great: my dog", got[0].AIFeedback)
	assert.Equal(t, "great: my cat", got[1].AIFeedback)
	assert.Empty(t, got[2].AIFeedback)
	assert.Equal(t, []string{"my dog", "my cat"}, gen.calls)
}

func TestSaveProceedsWhenFeedbackFails(t *testing.T) {
	gen := &fakeGenerator{fail: true}
	svc, s, user := setup(t, gen)
	ctx := context.Background()

	_, err := svc.Save(ctx, user, Submission{Items: []Item{{Content: "sunny day"}}})
	require.NoError(t, err)

	got, err := s.ListEntriesForStudentOnDate(ctx, user.ID, "2024-05-17")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, placeholder, got[0].AIFeedback)
}

func TestSaveTooManyItems(t *testing.T) {
	svc, _, user := setup(t, &fakeGenerator{})
	_, err := svc.Save(context.Background(), user, Submission{Items: make([]Item, 4)})
	assert.ErrorIs(t, err, ErrTooManyItems)
}

func TestSaveWriterFailure(t *testing.T) {
	svc := NewService(failingWriter{}, &fakeGenerator{}, placeholder)
	_, err := svc.Save(context.Background(), types.User{Username: "mina"}, Submission{Items: []Item{{Content: "x"}}})
	assert.ErrorContains(t, err, "disk full")
}

func TestPreview(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _, _ := setup(t, gen)

	out, err := svc.Preview(context.Background(), Submission{Shared: true, Items: []Item{
		{Content: " books "},
		{},
		{Content: "rain", Feedback: "kept", FeedbackFor: "rain"},
	}})
	require.NoError(t, err)
	assert.True(t, out.Shared)
	assert.Equal(t, "great: books", out.Items[0].Feedback)
	assert.Equal(t, "books", out.Items[0].FeedbackFor)
	assert.Empty(t, out.Items[1].Feedback)
	assert.Empty(t, out.Items[1].FeedbackFor)
	assert.Equal(t, "kept", out.Items[2].Feedback)
	assert.Equal(t, []string{"books"}, gen.calls)

	// edited content gets fresh feedback
	out, err = svc.Preview(context.Background(), Submission{Items: []Item{
		{Content: "rain and thunder", Feedback: "kept", FeedbackFor: "rain"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "great: rain and thunder", out.Items[0].Feedback)
	assert.Equal(t, "rain and thunder", out.Items[0].FeedbackFor)

	_, err = svc.Preview(context.Background(), Submission{Items: []Item{{}}})
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestPreviewFailureUsesPlaceholder(t *testing.T) {
	svc, _, _ := setup(t, &fakeGenerator{fail: true})
	out, err := svc.Preview(context.Background(), Submission{Items: []Item{{Content: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, placeholder, out.Items[0].Feedback)
}
