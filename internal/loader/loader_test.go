package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSummary writes content to summary.json inside a fresh temp dir.
func writeSummary(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summary.json"), []byte(content), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeSummary(t, `[
		{"commit": "abc123", "date": "2024-01-01T00:00:00Z", "published": true, "publishedTime": "2024-01-01T00:10:00Z"},
		{"date": "2024-01-02T09:30:00+02:00", "published": false},
		{"date": "2024-01-03 12:00:00", "published": 1, "publishedTime": "2024-01-03T13:00:00.250Z"},
		{"date": "2024-01-04T08:00:00", "published": 0, "publishedTime": "garbage is ignored when unpublished"}
	]`)

	records, err := Load(dir, "summary.json")
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, schema.CommitRecord{
		Commit:        "abc123",
		Date:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Published:     true,
		PublishedTime: time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC),
	}, records[0])

	// offsets are normalized to UTC
	assert.Equal(t, time.Date(2024, 1, 2, 7, 30, 0, 0, time.UTC), records[1].Date)
	assert.Equal(t, time.UTC, records[1].Date.Location())
	assert.False(t, records[1].Published)
	assert.True(t, records[1].PublishedTime.IsZero())

	assert.True(t, records[2].Published)
	assert.Equal(t, time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), records[2].Date)
	assert.Equal(t, time.Date(2024, 1, 3, 13, 0, 0, 250_000_000, time.UTC), records[2].PublishedTime)

	assert.False(t, records[3].Published)
	assert.True(t, records[3].PublishedTime.IsZero())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "summary.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrInputNotFound))
	assert.Contains(t, err.Error(), "cannot open")
}

func TestLoadUnreadableFile(t *testing.T) {
	t.Run("directory in place of the file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "summary.json"), 0o755))

		_, err := Load(dir, "summary.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot read")
		assert.NotContains(t, err.Error(), "cannot open")
	})

	t.Run("permission denied", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("file permissions do not apply to root")
		}
		dir := writeSummary(t, `[]`)
		require.NoError(t, os.Chmod(filepath.Join(dir, "summary.json"), 0o000))

		_, err := Load(dir, "summary.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrPermission))
		assert.Contains(t, err.Error(), "cannot read")
	})
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "invalid json", content: `[{"date": `, errText: "invalid JSON"},
		{name: "object document", content: `{"date": "2024-01-01T00:00:00Z"}`, errText: "expected an array"},
		{name: "null document", content: `null`, errText: "expected an array"},
		{name: "empty array", content: `[]`, errText: "no commit records"},
		{name: "non-object element", content: `[42]`, errText: "record 0"},
		{name: "missing date", content: `[{"published": false}]`, errText: "missing field 'date'"},
		{name: "bad date", content: `[{"date": "yesterday", "published": false}]`, errText: "field 'date'"},
		{name: "missing published", content: `[{"date": "2024-01-01T00:00:00Z"}]`, errText: "missing field 'published'"},
		{name: "bad published", content: `[{"date": "2024-01-01T00:00:00Z", "published": "yes"}]`, errText: "field 'published'"},
		{
			name:    "published without time",
			content: `[{"date": "2024-01-01T00:00:00Z", "published": false}, {"date": "2024-01-01T00:00:00Z", "published": true}]`,
			errText: "record 1",
		},
		{
			name:    "bad published time",
			content: `[{"date": "2024-01-01T00:00:00Z", "published": true, "publishedTime": "soon"}]`,
			errText: "field 'publishedTime'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSummary(t, tt.content)
			_, err := Load(dir, "summary.json")
			require.Error(t, err)
			assert.True(t, errors.Is(err, contract.ErrMalformedInput), "got %v", err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	content := `[{"date": "2024-02-01T10:00:00Z", "published": true, "publishedTime": "2024-02-01T10:45:00Z"}]`
	dir := writeSummary(t, content)

	first, err := Load(dir, "summary.json")
	require.NoError(t, err)
	second, err := Load(dir, "summary.json")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-01T00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T00:00:00.5Z", time.Date(2024, 1, 1, 0, 0, 0, 500_000_000, time.UTC)},
		{"2024-01-01T01:00:00+01:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01 00:00:00-05:00", time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)},
		{"2024-01-01T00:00:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{" 2024-01-01 00:00:00 ", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseTime("2024/01/01")
	assert.Error(t, err)
}
