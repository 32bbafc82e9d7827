// Package frontmatter extracts post metadata from markdown sources.
//
// A metadata block sits at the top of the file between --- delimiters:
//
//	---
//	name: Why Go?
//	date: 2024-06-01
//	topics: [Go, Opinions]
//	---
//
// Keys beyond name, date, and topics are tolerated and ignored so posts
// can carry extra fields for other tools.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	adrg "github.com/adrg/frontmatter"

	"github.com/alnah/go-mdpress/internal/dateutil"
	"github.com/alnah/go-mdpress/internal/yamlutil"
)

// Sentinel errors for metadata extraction.
// Both are advisory: Parse always returns usable content, and callers
// log these rather than aborting a build over one bad header.
var (
	// ErrMalformed indicates the block between delimiters is not valid YAML.
	ErrMalformed = errors.New("malformed frontmatter")

	// ErrBadDate indicates the date field matched no accepted layout.
	ErrBadDate = errors.New("invalid frontmatter date")
)

// Metadata holds the recognized frontmatter fields after normalization.
type Metadata struct {
	Name    string    // post title, whitespace-trimmed
	Date    time.Time // zero when absent or unparseable
	RawDate string    // original date value, kept for diagnostics
	Topics  []string  // lower-cased, trimmed, empties dropped
}

// IsZero reports whether no metadata was found.
func (m Metadata) IsZero() bool {
	return m.Name == "" && m.Date.IsZero() && m.RawDate == "" && len(m.Topics) == 0
}

// rawMetadata mirrors the YAML shape before normalization.
type rawMetadata struct {
	Name   string   `yaml:"name"`
	Date   string   `yaml:"date"`
	Topics []string `yaml:"topics"`
}

// yamlFormats recognizes the conventional --- delimited YAML block.
var yamlFormats = []*adrg.Format{
	adrg.NewFormat("---", "---", decodeBlock),
}

// decodeBlock decodes one frontmatter block, treating an empty block
// (bare delimiters) as valid metadata-free input.
func decodeBlock(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yamlutil.Unmarshal(data, v)
}

// Parse splits source into metadata and body content.
//
// When no frontmatter block opens the file, the metadata is zero and the
// body is the source unchanged, with no error. Running Parse over its own
// output is therefore a no-op. A malformed block returns the source
// unchanged with an error wrapping ErrMalformed; an unparseable date
// returns the remaining fields with an error wrapping ErrBadDate.
func Parse(source []byte) (Metadata, []byte, error) {
	var raw rawMetadata

	body, err := adrg.Parse(bytes.NewReader(source), &raw, yamlFormats...)
	if err != nil {
		return Metadata{}, source, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	meta := Metadata{
		Name:    strings.TrimSpace(raw.Name),
		RawDate: strings.TrimSpace(raw.Date),
		Topics:  normalizeTopics(raw.Topics),
	}

	if meta.RawDate != "" {
		date, dateErr := dateutil.ParsePostDate(meta.RawDate)
		if dateErr != nil {
			return meta, body, fmt.Errorf("%w: %q", ErrBadDate, meta.RawDate)
		}
		meta.Date = date
	}

	return meta, body, nil
}

// normalizeTopics lower-cases and trims topic labels, dropping entries
// that are empty after trimming. Order is preserved; topic pages key on
// these values, so normalization here keeps "Go" and "go" as one topic.
func normalizeTopics(topics []string) []string {
	if len(topics) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(topics))
	for _, topic := range topics {
		cleaned := strings.ToLower(strings.TrimSpace(topic))
		if cleaned == "" {
			continue
		}
		normalized = append(normalized, cleaned)
	}

	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
