package types

import (
	"time"
)

// DateLayout is how entry dates are stored and passed around in query strings.
const DateLayout = "2006-01-02"

// MaxEntriesPerSubmission is the number of slots on the write form.
const MaxEntriesPerSubmission = 3

type JournalEntry struct {
	ID          uint   `gorm:"primaryKey"`
	Date        string `gorm:"index;not null"`
	StudentID   uint   `gorm:"index;not null"`
	Student     User   `gorm:"foreignKey:StudentID"`
	EntryNumber int    `gorm:"not null;default:1"`
	Target      string
	Content     string
	Shared      bool `gorm:"not null;default:false"`
	AIFeedback  string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (JournalEntry) TableName() string {
	return "journal"
}

// StudentDayCount is one row of the teacher dashboard.
type StudentDayCount struct {
	Username string
	Days     int64
}

// ExportRow is a journal entry flattened with its author's username.
type ExportRow struct {
	Username   string
	Date       string
	Target     string
	Content    string
	AIFeedback string
}
