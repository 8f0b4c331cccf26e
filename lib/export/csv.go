// Package export renders journal rows as a downloadable CSV file.
package export

import (
	"encoding/csv"
	"io"

	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
)

const Filename = "gratitude_journal.csv"

// utf8BOM lets spreadsheet programs detect the encoding of non-ASCII text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Labels struct {
	Student  string
	Date     string
	Target   string
	Content  string
	Feedback string
}

var labels = map[string]Labels{
	"en": {Student: "student", Date: "date", Target: "target", Content: "content", Feedback: "ai_feedback"},
	"ko": {Student: "학생", Date: "날짜", Target: "대상", Content: "내용", Feedback: "AI 피드백"},
}

func LabelsFor(locale string) Labels {
	if l, ok := labels[locale]; ok {
		return l
	}
	return labels["en"]
}

func (l Labels) header() []string {
	return []string{l.Student, l.Date, l.Target, l.Content, l.Feedback}
}

func WriteCSV(w io.Writer, rows []types.ExportRow, l Labels) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return errors.Wrap(err, "writing byte order mark")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(l.header()); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Username, r.Date, r.Target, r.Content, r.AIFeedback}); err != nil {
			return errors.Wrapf(err, "writing csv row for %s on %s", r.Username, r.Date)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
