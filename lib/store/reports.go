package store

import (
	"context"

	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
)

// PerStudentDayCounts returns one row per student with the number of
// distinct days they wrote on. Students without entries report zero.
func (s *Store) PerStudentDayCounts(ctx context.Context) ([]types.StudentDayCount, error) {
	ret := []types.StudentDayCount{}
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.username AS username, COUNT(DISTINCT journal.date) AS days").
		Joins("LEFT JOIN journal ON journal.student_id = users.id").
		Where("users.role = ? AND users.deleted_at IS NULL", types.RoleStudent).
		Group("users.id, users.username").
		Order("users.username").
		Scan(&ret).Error
	if err != nil {
		return nil, errors.Wrap(err, "counting days per student")
	}
	return ret, nil
}

// EntriesForExport returns all entries joined with their author, newest date
// first. An empty username returns every student's entries.
func (s *Store) EntriesForExport(ctx context.Context, username string) ([]types.ExportRow, error) {
	ret := []types.ExportRow{}
	q := s.db.WithContext(ctx).
		Table("journal").
		Select("users.username AS username, journal.date AS date, journal.target AS target, " +
			"journal.content AS content, journal.ai_feedback AS ai_feedback").
		Joins("JOIN users ON journal.student_id = users.id")
	if username != "" {
		q = q.Where("users.username = ?", username)
	}
	err := q.Order("journal.date DESC, users.username, journal.entry_number, journal.id").Scan(&ret).Error
	if err != nil {
		return nil, errors.Wrapf(err, "Looking for export rows (student %q)", username)
	}
	return ret, nil
}
