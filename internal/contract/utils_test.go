package contract

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainRateLabel(t *testing.T) {
	tests := []struct {
		name     string
		built    int
		rate     float64
		expected string
	}{
		{name: "no builds", built: 0, rate: 0, expected: InactiveValue},
		{name: "nothing published", built: 4, rate: 0, expected: StalledValue},
		{name: "just before lagging", built: 10, rate: 49.9, expected: StalledValue},
		{name: "exactly lagging", built: 10, rate: 50, expected: LaggingValue},
		{name: "just before healthy", built: 10, rate: 89.9, expected: LaggingValue},
		{name: "exactly healthy", built: 10, rate: 90, expected: HealthyValue},
		{name: "everything published", built: 3, rate: 100, expected: HealthyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainRateLabel(tt.built, tt.rate))
		})
	}
}

func TestGetColorRateLabel(t *testing.T) {
	tests := []struct {
		name  string
		built int
		rate  float64
		label string
	}{
		{"inactive", 0, 0, InactiveValue},
		{"stalled", 5, 20, StalledValue},
		{"lagging", 5, 60, LaggingValue},
		{"healthy", 5, 100, HealthyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, GetColorRateLabel(tt.built, tt.rate), tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "report.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogWarn(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = stderr })

	LogWarn("Cannot load .env", errors.New("unterminated quoted value"))
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Warn Cannot load .env: unterminated quoted value\n", string(out))
}
