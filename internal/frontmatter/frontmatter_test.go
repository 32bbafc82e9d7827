package frontmatter

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestParse - Metadata Extraction
// ---------------------------------------------------------------------------

func TestParse_FullBlock(t *testing.T) {
	t.Parallel()

	source := []byte(`---
name: Why Go?
date: 2024-06-01
topics: [Go, Opinions]
---
# Heading

Body text.
`)

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if meta.Name != "Why Go?" {
		t.Errorf("Name = %q, want %q", meta.Name, "Why Go?")
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !meta.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", meta.Date, want)
	}
	if !reflect.DeepEqual(meta.Topics, []string{"go", "opinions"}) {
		t.Errorf("Topics = %v, want [go opinions]", meta.Topics)
	}
	if !strings.HasPrefix(string(body), "# Heading") {
		t.Errorf("body = %q, want to start with %q", string(body), "# Heading")
	}
	if strings.Contains(string(body), "---") {
		t.Errorf("body still contains delimiters: %q", string(body))
	}
}

func TestParse_TopicNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"mixed case lowered",
			"---\ntopics: [Go, WebDev, TESTING]\n---\nbody",
			[]string{"go", "webdev", "testing"},
		},
		{
			"whitespace trimmed",
			"---\ntopics: ['  go  ', ' testing']\n---\nbody",
			[]string{"go", "testing"},
		},
		{
			"empties dropped",
			"---\ntopics: ['go', '', '   ', 'testing']\n---\nbody",
			[]string{"go", "testing"},
		},
		{
			"all empty becomes nil",
			"---\ntopics: ['', '  ']\n---\nbody",
			nil,
		},
		{
			"block list form",
			"---\ntopics:\n  - Go\n  - Testing\n---\nbody",
			[]string{"go", "testing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, _, err := Parse([]byte(tt.source))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(meta.Topics, tt.want) {
				t.Errorf("Topics = %v, want %v", meta.Topics, tt.want)
			}
		})
	}
}

func TestParse_UnknownKeysTolerated(t *testing.T) {
	t.Parallel()

	source := []byte("---\nname: Post\ndraft: true\nauthor: someone\n---\nbody")

	meta, _, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if meta.Name != "Post" {
		t.Errorf("Name = %q, want %q", meta.Name, "Post")
	}
}

// ---------------------------------------------------------------------------
// TestParse - Missing and Degenerate Blocks
// ---------------------------------------------------------------------------

func TestParse_NoFrontmatter(t *testing.T) {
	t.Parallel()

	source := []byte("# Just a heading\n\nNo metadata here.\n")

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !meta.IsZero() {
		t.Errorf("metadata = %+v, want zero", meta)
	}
	if string(body) != string(source) {
		t.Errorf("body = %q, want unchanged source", string(body))
	}
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	source := []byte("---\nname: Post\ndate: 2024-06-01\ntopics: [go]\n---\n# Body\n")

	_, first, err := Parse(source)
	if err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}

	meta, second, err := Parse(first)
	if err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}
	if !meta.IsZero() {
		t.Errorf("second pass metadata = %+v, want zero", meta)
	}
	if string(second) != string(first) {
		t.Errorf("second pass body = %q, want unchanged %q", string(second), string(first))
	}
}

func TestParse_EmptyBlock(t *testing.T) {
	t.Parallel()

	meta, body, err := Parse([]byte("---\n---\nbody text\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !meta.IsZero() {
		t.Errorf("metadata = %+v, want zero", meta)
	}
	if !strings.Contains(string(body), "body text") {
		t.Errorf("body = %q, want to contain %q", string(body), "body text")
	}
}

func TestParse_UnclosedBlockIsContent(t *testing.T) {
	t.Parallel()

	// An opening delimiter with no closing one is not frontmatter.
	source := []byte("---\nname: Post\n\nstill the document\n")

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !meta.IsZero() {
		t.Errorf("metadata = %+v, want zero", meta)
	}
	if string(body) != string(source) {
		t.Errorf("body = %q, want unchanged source", string(body))
	}
}

func TestParse_CRLFLineEndings(t *testing.T) {
	t.Parallel()

	source := []byte("---\r\nname: Post\r\ntopics: [Go]\r\n---\r\nbody\r\n")

	meta, body, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if meta.Name != "Post" {
		t.Errorf("Name = %q, want %q", meta.Name, "Post")
	}
	if !reflect.DeepEqual(meta.Topics, []string{"go"}) {
		t.Errorf("Topics = %v, want [go]", meta.Topics)
	}
	if !strings.Contains(string(body), "body") {
		t.Errorf("body = %q, want to contain %q", string(body), "body")
	}
}

func TestParse_EmptySource(t *testing.T) {
	t.Parallel()

	meta, body, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !meta.IsZero() {
		t.Errorf("metadata = %+v, want zero", meta)
	}
	if len(body) != 0 {
		t.Errorf("body = %q, want empty", string(body))
	}
}

// ---------------------------------------------------------------------------
// TestParse - Error Reporting
// ---------------------------------------------------------------------------

func TestParse_MalformedYAML(t *testing.T) {
	t.Parallel()

	source := []byte("---\nname: [unclosed\n---\nbody\n")

	meta, body, err := Parse(source)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Parse() error = %v, want ErrMalformed", err)
	}
	if !meta.IsZero() {
		t.Errorf("metadata = %+v, want zero on malformed block", meta)
	}
	if string(body) != string(source) {
		t.Errorf("body = %q, want unchanged source on malformed block", string(body))
	}
}

func TestParse_BadDateKeepsOtherFields(t *testing.T) {
	t.Parallel()

	source := []byte("---\nname: Post\ndate: someday\ntopics: [Go]\n---\nbody\n")

	meta, body, err := Parse(source)
	if !errors.Is(err, ErrBadDate) {
		t.Fatalf("Parse() error = %v, want ErrBadDate", err)
	}
	if meta.Name != "Post" {
		t.Errorf("Name = %q, want %q despite bad date", meta.Name, "Post")
	}
	if !meta.Date.IsZero() {
		t.Errorf("Date = %v, want zero", meta.Date)
	}
	if meta.RawDate != "someday" {
		t.Errorf("RawDate = %q, want %q", meta.RawDate, "someday")
	}
	if !reflect.DeepEqual(meta.Topics, []string{"go"}) {
		t.Errorf("Topics = %v, want [go]", meta.Topics)
	}
	if !strings.Contains(string(body), "body") {
		t.Errorf("body = %q, want body content", string(body))
	}
}

func TestParse_DateLayouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{"iso", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-06-01T10:30:00Z", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"long form", "June 1, 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source := []byte("---\ndate: \"" + tt.date + "\"\n---\nbody")
			meta, _, err := Parse(source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !meta.Date.Equal(tt.want) {
				t.Errorf("Date = %v, want %v", meta.Date, tt.want)
			}
		})
	}
}
