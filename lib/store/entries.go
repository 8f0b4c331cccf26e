package store

import (
	"context"

	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) CreateEntry(ctx context.Context, entry *types.JournalEntry) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(entry).Error, "Saving entry to db")
}

// CreateEntries writes every entry of one submission in a single
// transaction. Either all of them are stored or none are.
func (s *Store) CreateEntries(ctx context.Context, entries []types.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			if err := tx.Create(&entries[i]).Error; err != nil {
				return errors.Wrapf(err, "saving entry %d", entries[i].EntryNumber)
			}
		}
		return nil
	})
	return errors.Wrap(err, "Saving entries to db")
}

// ListDatesForStudent returns each date the student wrote on, oldest first.
func (s *Store) ListDatesForStudent(ctx context.Context, studentID uint) ([]string, error) {
	ret := []string{}
	err := s.db.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Distinct("date").
		Where("student_id = ?", studentID).
		Order("date").
		Pluck("date", &ret).Error
	if err != nil {
		return nil, errors.Wrapf(err, "Looking for dates of student %d", studentID)
	}
	return ret, nil
}

func (s *Store) ListEntriesForStudentOnDate(ctx context.Context, studentID uint, date string) ([]types.JournalEntry, error) {
	ret := []types.JournalEntry{}
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, date).
		Order("entry_number, id").
		Find(&ret).Error
	if err != nil {
		return nil, errors.Wrapf(err, "Looking for entries of student %d on %s", studentID, date)
	}
	return ret, nil
}

// ListSharedEntries returns every shared entry across all students, newest
// date first.
func (s *Store) ListSharedEntries(ctx context.Context) ([]types.JournalEntry, error) {
	ret := []types.JournalEntry{}
	err := s.db.WithContext(ctx).
		Preload("Student").
		Where("shared = ?", true).
		Order("date DESC, id DESC").
		Find(&ret).Error
	if err != nil {
		return nil, errors.Wrap(err, "Looking for shared entries")
	}
	return ret, nil
}

func (s *Store) CountDistinctDates(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Where("student_id = ?", studentID).
		Distinct("date").
		Count(&count).Error
	return count, errors.Wrap(err, "counting days")
}

func (s *Store) CountEntries(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, errors.Wrap(err, "counting entries")
}

// HasEntryOn reports whether the student wrote anything on date.
func (s *Store) HasEntryOn(ctx context.Context, studentID uint, date string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Where("student_id = ? AND date = ?", studentID, date).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking entries for date")
	}
	return count > 0, nil
}
