package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/oliverisaac/gratitude/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	rows := []types.ExportRow{
		{Username: "mina", Date: "2024-01-03", Target: "mom", Content: "made soup, \"again\"", AIFeedback: "warm"},
		{Username: "jun", Date: "2024-01-01", Content: "line one\nline two"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows, LabelsFor("en")))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(out[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"student", "date", "target", "content", "ai_feedback"},
		{"mina", "2024-01-03", "mom", "made soup, \"again\"", "warm"},
		{"jun", "2024-01-01", "", "line one\nline two", ""},
	}, records)
}

func TestWriteCSVKoreanLabels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, LabelsFor("ko")))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"학생", "날짜", "대상", "내용", "AI 피드백"}}, records)
}

func TestLabelsForUnknownLocale(t *testing.T) {
	assert.Equal(t, LabelsFor("en"), LabelsFor("de"))
}
