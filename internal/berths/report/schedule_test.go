package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"portcall/pkg/model"
)

func TestWriteSchedule(t *testing.T) {
	base := time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC)
	berth := &model.Berth{
		Name: "North Quay",
		BookedPeriods: map[string]model.Period{
			"V2": {Start: base.Add(12 * time.Hour), End: base.Add(12*time.Hour + 30*time.Minute)},
			"V1": {Start: base.Add(10 * time.Hour), End: base.Add(12 * time.Hour)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, berth))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"North Quay"}, f.GetSheetList())

	rows, err := f.GetRows("North Quay")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Vessel", "Start", "End", "Hours"}, rows[0])
	assert.Equal(t, []string{"V1", "2024-10-08T10:00:00Z", "2024-10-08T12:00:00Z", "2"}, rows[1])
	assert.Equal(t, []string{"V2", "2024-10-08T12:00:00Z", "2024-10-08T12:30:00Z", "0.5"}, rows[2])
}

func TestWriteSchedule_EmptyBerth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, &model.Berth{Name: "B1"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("B1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteSchedule_BoldHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, &model.Berth{Name: "B1"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	for _, cell := range []string{"A1", "D1"} {
		idx, err := f.GetCellStyle("B1", cell)
		require.NoError(t, err)
		style, err := f.GetStyle(idx)
		require.NoError(t, err)
		require.NotNil(t, style.Font, cell)
		assert.True(t, style.Font.Bold, cell)
	}
}

func TestWriteHeader_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	err := writeHeader(f, "Missing")
	assert.Error(t, err)
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Sheet1"},
		{"B1", "B1"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SheetName(tt.in))
	}
}
