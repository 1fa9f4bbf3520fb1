package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlPeriodString(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{"same day", date(2023, 3, 1), date(2023, 3, 1), "01.03.2023 - 01.03.2023"},
		{"range", date(2023, 1, 9), date(2023, 12, 31), "09.01.2023 - 31.12.2023"},
		{"across years", date(2022, 11, 5), date(2024, 2, 29), "05.11.2022 - 29.02.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewControlPeriod(tt.start, tt.end)
			assert.True(t, p.Valid())
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestControlPeriodValidIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2023, 5, 2, 23, 0, 0, 0, time.Local)
	end := time.Date(2023, 5, 2, 1, 0, 0, 0, time.Local)
	assert.True(t, ControlPeriod{Start: start, End: end}.Valid())

	assert.False(t, NewControlPeriod(date(2023, 5, 3), date(2023, 5, 2)).Valid())
}

func TestParseControlPeriod(t *testing.T) {
	p, ok := ParseControlPeriod("09.01.2023 - 31.12.2023")
	require.True(t, ok)
	assert.Equal(t, date(2023, 1, 9), p.Start)
	assert.Equal(t, date(2023, 12, 31), p.End)

	for _, bad := range []string{"", "09.01.2023", "2023-01-09 - 2023-01-10", "09.01.2023 - tomorrow"} {
		_, ok := ParseControlPeriod(bad)
		assert.False(t, ok, bad)
	}
}

func TestReportModifiedAt(t *testing.T) {
	at := time.Date(2023, 10, 7, 14, 5, 9, 0, time.Local)
	r := Report{DateModified: FormatDateModified(at)}
	assert.Equal(t, "07.10.2023 14:05:09", r.DateModified)
	assert.True(t, at.Equal(r.ModifiedAt()))

	assert.True(t, Report{DateModified: "garbage"}.ModifiedAt().IsZero())
}

func TestStoreFileName(t *testing.T) {
	at := time.Date(2023, 10, 7, 14, 5, 9, 0, time.Local)
	assert.Equal(t, "database_07102023_140509.db", StoreFileName(at))
	assert.Equal(t, "database_07102023_140509.db", FileNameOf("/data/database_07102023_140509.db"))
	assert.Empty(t, FileNameOf(""))
}

func TestSheetIsRectangular(t *testing.T) {
	s := NewSheet([]string{"a", "b"}, [][]Cell{
		{Text("1")},
		{Text("1"), Text("2"), Text("3")},
	})
	rows, cols := s.Dimensions()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.False(t, s.Cell(0, 1).Valid)
	assert.Equal(t, "2", s.Cell(1, 1).String())

	require.NoError(t, s.Set(0, 1, "x"))
	assert.Equal(t, Text("x"), s.Cell(0, 1))
	assert.Error(t, s.Set(2, 0, "x"))

	clone := s.Clone()
	require.NoError(t, clone.Set(0, 0, "changed"))
	assert.Equal(t, "1", s.Cell(0, 0).String())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
