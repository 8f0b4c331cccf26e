package types

import (
	errs "errors"
)

// PageData carries everything a full page needs. Each tab fills only the
// fields it renders.
type PageData struct {
	User   *User
	Config Config
	Tab    string
	Err    error
	Notice string

	Form     WriteForm
	Calendar CalendarMonth
	Entries  []JournalEntry

	DayCount   int64
	EntryCount int64

	DayCounts       []StudentDayCount
	SelectedStudent string
	ExportRows      []ExportRow
}

func NewPageData(cfg Config, tab string) PageData {
	return PageData{Config: cfg, Tab: tab}
}

func (d PageData) WithError(err error) PageData {
	d.Err = errs.Join(d.Err, err)
	return d
}

func (d PageData) WithNotice(s string) PageData {
	d.Notice = s
	return d
}

func (d PageData) WithUser(u User) PageData {
	d.User = &u
	return d
}

func (d PageData) WithEntries(entries []JournalEntry) PageData {
	d.Entries = append(d.Entries, entries...)
	return d
}

func (d PageData) WithForm(f WriteForm) PageData {
	d.Form = f
	return d
}
