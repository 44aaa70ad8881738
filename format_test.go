package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSizeAuto(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"one byte", 1, "1 B"},
		{"just below kilobyte", 1023, "1,023 B"},
		{"exact kilobyte", 1024, "1.00 KB"},
		{"one and a half kilobytes", 1536, "1.50 KB"},
		{"just below megabyte", 1048575, "1,024.00 KB"},
		{"exact megabyte", 1048576, "1.00 MB"},
		{"exact gigabyte", 1 << 30, "1.00 GB"},
		{"exact terabyte", 1 << 40, "1.00 TB"},
		{"beyond terabyte stays terabyte", 2048 << 40, "2,048.00 TB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatSize(tt.bytes, "", false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSizeForcedUnit(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		unit  string
		want  string
	}{
		{"kilobytes", 1024, "kb", "1.00 KB"},
		{"kilobytes fraction", 1536, "kb", "1.50 KB"},
		{"bytes keep integers", 1536, "b", "1,536 B"},
		{"megabytes from gigabyte", 1 << 30, "mb", "1,024.00 MB"},
		{"small value in gigabytes", 500, "gb", "0.00 GB"},
		{"unit name is case-insensitive", 1024, "KB", "1.00 KB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatSize(tt.bytes, tt.unit, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSizeClean(t *testing.T) {
	got, err := formatSize(1543, "", true)
	require.NoError(t, err)
	assert.Equal(t, "1543", got)

	// Clean wins over a forced unit and drops separators.
	got, err = formatSize(1234567, "mb", true)
	require.NoError(t, err)
	assert.Equal(t, "1234567", got)

	got, err = formatSize(0, "", true)
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestFormatSizeInvalidUnit(t *testing.T) {
	_, err := formatSize(1024, "petabytes", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid unit")
}

func TestParseUnit(t *testing.T) {
	assert.NoError(t, parseUnit(""))
	for _, unit := range []string{"b", "kb", "mb", "gb", "tb", "GB"} {
		assert.NoError(t, parseUnit(unit), unit)
	}

	err := parseUnit("pb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid unit")
	assert.Contains(t, err.Error(), "b, gb, kb, mb, tb")
}
