package mdblog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_DateOnly_DefaultsToNoon(t *testing.T) {
	got, err := ParseDate("2025-12-14")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.December, 14, 12, 0, 0, 0, time.Local), got)
}

func TestParseDate_DateAndTime_UsesTimeLiterally(t *testing.T) {
	got, err := ParseDate("2025-12-14 16:47")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.December, 14, 16, 47, 0, 0, time.Local), got)
}

func TestParseDate_SurroundingSpace_IsTrimmed(t *testing.T) {
	got, err := ParseDate("  2025-12-14\n")
	require.NoError(t, err)
	require.Equal(t, 14, got.Day())
	require.Equal(t, 12, got.Hour())
}

func TestParseDate_Malformed_ReturnsErrInvalidDate(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2025/12/14", "14-12-2025", "2025-12-14 4pm", "2025-13-01"} {
		_, err := ParseDate(in)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, ErrInvalidDate), in)
	}
}

func TestFormatDate_KeepsStoredPrecision(t *testing.T) {
	cases := map[string]string{
		"2025-12-14":       "2025-12-14",
		"2025-12-14 16:47": "2025-12-14 16:47",
		"2025-12-14 09:05": "2025-12-14 09:05",
		" 2025-01-02 ":     "2025-01-02",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDate(in), in)
	}
}

func TestFormatDate_Malformed_ReturnsTrimmedInput(t *testing.T) {
	require.Equal(t, "some day", FormatDate(" some day "))
}

func TestDescriptor_FormatDate_UsesStoredDate(t *testing.T) {
	d := Descriptor{Date: "2025-12-14 16:47"}
	require.Equal(t, "2025-12-14 16:47", d.FormatDate())
}
