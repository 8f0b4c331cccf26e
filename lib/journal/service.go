// Package journal turns a student's submitted form into stored entries.
package journal

import (
	"context"
	errs "errors"
	"strings"
	"time"

	"github.com/oliverisaac/gratitude/lib/feedback"
	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptySubmission = errs.New("write something first")
	ErrTooManyItems    = errs.New("too many entries in one submission")
)

type EntryWriter interface {
	CreateEntries(ctx context.Context, entries []types.JournalEntry) error
}

// Item is one slot of a submission. Feedback holds text a preview generated
// for the content in FeedbackFor, if any.
type Item struct {
	Target      string
	Content     string
	Feedback    string
	FeedbackFor string
}

func (i Item) blank() bool {
	return strings.TrimSpace(i.Target) == "" && strings.TrimSpace(i.Content) == ""
}

// previewed returns the preview feedback when it was generated for exactly
// the item's current content.
func (i Item) previewed() (string, bool) {
	content := strings.TrimSpace(i.Content)
	fb := strings.TrimSpace(i.Feedback)
	if content == "" || fb == "" || strings.TrimSpace(i.FeedbackFor) != content {
		return "", false
	}
	return fb, true
}

type Submission struct {
	Shared bool
	Items  []Item
}

type Service struct {
	entries     EntryWriter
	generator   feedback.Generator
	placeholder string
	now         func() time.Time
}

func NewService(entries EntryWriter, generator feedback.Generator, placeholder string) *Service {
	return &Service{
		entries:     entries,
		generator:   generator,
		placeholder: placeholder,
		now:         time.Now,
	}
}

// WithClock replaces the clock used to date new entries.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Today() string {
	return s.now().Format(types.DateLayout)
}

func (s *Service) feedbackFor(ctx context.Context, item Item) string {
	content := strings.TrimSpace(item.Content)
	if content == "" {
		return ""
	}
	res := s.generator.Generate(ctx, content)
	return res.Display(s.placeholder)
}

// Preview fills in feedback for every non-blank item whose content has no
// preview yet. Blank items are left untouched.
func (s *Service) Preview(ctx context.Context, sub Submission) (Submission, error) {
	if len(sub.Items) > types.MaxEntriesPerSubmission {
		return sub, ErrTooManyItems
	}

	out := Submission{Shared: sub.Shared, Items: make([]Item, len(sub.Items))}
	anything := false
	for i, item := range sub.Items {
		out.Items[i] = item
		if item.blank() {
			continue
		}
		anything = true
		fb, ok := item.previewed()
		if !ok {
			fb = s.feedbackFor(ctx, item)
		}
		out.Items[i].Feedback = fb
		out.Items[i].FeedbackFor = ""
		if fb != "" {
			out.Items[i].FeedbackFor = strings.TrimSpace(item.Content)
		}
	}
	if !anything {
		return out, ErrEmptySubmission
	}
	return out, nil
}

// Save stores every non-blank item of sub as an entry for student dated
// today. Preview feedback is reused only for the content it was generated
// for. All entries are written in one transaction.
func (s *Service) Save(ctx context.Context, student types.User, sub Submission) ([]types.JournalEntry, error) {
	if len(sub.Items) > types.MaxEntriesPerSubmission {
		return nil, ErrTooManyItems
	}

	today := s.Today()
	entries := make([]types.JournalEntry, 0, len(sub.Items))
	for i, item := range sub.Items {
		if item.blank() {
			continue
		}

		fb, ok := item.previewed()
		if !ok {
			fb = s.feedbackFor(ctx, item)
		}

		entries = append(entries, types.JournalEntry{
			Date:        today,
			StudentID:   student.ID,
			EntryNumber: i + 1,
			Target:      strings.TrimSpace(item.Target),
			Content:     strings.TrimSpace(item.Content),
			Shared:      sub.Shared,
			AIFeedback:  fb,
		})
	}

	if len(entries) == 0 {
		return nil, ErrEmptySubmission
	}

	if err := s.entries.CreateEntries(ctx, entries); err != nil {
		return nil, errors.Wrapf(err, "saving %d entries for %s", len(entries), student.Username)
	}

	logrus.WithField("user", student.Username).Infof("Saved %d journal entries for %s", len(entries), today)
	return entries, nil
}
