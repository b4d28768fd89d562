// Package loader reads the commit summary file into schema.CommitRecord values.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/schema"
)

// timeLayouts lists the accepted timestamp layouts in the order they are tried.
// Layouts without an offset are interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// rawRecord mirrors one JSON object of the summary file.
type rawRecord struct {
	Commit        string          `json:"commit"`
	Date          *string         `json:"date"`
	Published     json.RawMessage `json:"published"`
	PublishedTime *string         `json:"publishedTime"`
}

// Load reads and validates filepath.Join(dataDir, dataFile).
func Load(dataDir, dataFile string) ([]schema.CommitRecord, error) {
	path := filepath.Join(dataDir, dataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, contract.InputNotFound(path, err)
		}
		return nil, contract.Wrapf(err, contract.ErrInputNotFound, "cannot read %s", path)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Parse decodes a summary document. Record order is preserved.
func Parse(data []byte) ([]schema.CommitRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, contract.MalformedInput(nil, "top-level value is a JSON %s, expected an array of objects", typeErr.Value)
		}
		return nil, contract.MalformedInput(err, "invalid JSON")
	}
	if items == nil {
		return nil, contract.MalformedInput(nil, "top-level value is null, expected an array of objects")
	}
	if len(items) == 0 {
		return nil, contract.MalformedInput(nil, "no commit records")
	}

	records := make([]schema.CommitRecord, 0, len(items))
	for i, item := range items {
		rec, err := parseRecord(item)
		if err != nil {
			return nil, contract.MalformedInput(err, "record %d", i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRecord validates one array element.
func parseRecord(item json.RawMessage) (schema.CommitRecord, error) {
	var rec schema.CommitRecord

	if trimmed := bytes.TrimSpace(item); len(trimmed) == 0 || trimmed[0] != '{' {
		return rec, errors.New("not a JSON object")
	}
	var raw rawRecord
	if err := json.Unmarshal(item, &raw); err != nil {
		return rec, err
	}
	rec.Commit = raw.Commit

	if raw.Date == nil {
		return rec, errors.New("missing field 'date'")
	}
	date, err := ParseTime(*raw.Date)
	if err != nil {
		return rec, fmt.Errorf("field 'date': %w", err)
	}
	rec.Date = date

	published, err := parsePublished(raw.Published)
	if err != nil {
		return rec, err
	}
	rec.Published = published

	if !published {
		return rec, nil
	}
	if raw.PublishedTime == nil {
		return rec, errors.New("missing field 'publishedTime' on a published record")
	}
	pubTime, err := ParseTime(*raw.PublishedTime)
	if err != nil {
		return rec, fmt.Errorf("field 'publishedTime': %w", err)
	}
	rec.PublishedTime = pubTime
	return rec, nil
}

// parsePublished accepts a JSON boolean or the numbers 0 and 1.
func parsePublished(raw json.RawMessage) (bool, error) {
	switch strings.TrimSpace(string(raw)) {
	case "":
		return false, errors.New("missing field 'published'")
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("field 'published': expected a boolean or 0/1, got %s", raw)
	}
}

// ParseTime parses an ISO-8601 timestamp and normalizes it to UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
