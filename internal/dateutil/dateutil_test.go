package dateutil

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestParsePostDate
// ---------------------------------------------------------------------------

func TestParsePostDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"iso date", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"iso date with whitespace", "  2024-06-01  ", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-06-01T10:30:00Z", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"datetime", "2024-06-01 10:30:00", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"slashes", "2024/06/01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"long form", "June 1, 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"short month", "Jun 1, 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePostDate(tt.value)
			if err != nil {
				t.Fatalf("ParsePostDate(%q) error = %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePostDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParsePostDate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"garbage", "not a date"},
		{"partial", "2024-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParsePostDate(tt.value)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("ParsePostDate(%q) error = %v, want ErrInvalidDate", tt.value, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseDateFormat
// ---------------------------------------------------------------------------

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"iso", "YYYY-MM-DD", "2006-01-02"},
		{"european", "DD/MM/YYYY", "02/01/2006"},
		{"long month", "MMMM D, YYYY", "January 2, 2006"},
		{"short month", "MMM D YY", "Jan 2 06"},
		{"single digits", "M/D/YYYY", "1/2/2006"},
		{"literal brackets", "[Updated] YYYY", "Updated 2006"},
		{"literal chars preserved", "YYYY.MM.DD", "2006.01.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) error = %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseDateFormat_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
	}{
		{"empty", ""},
		{"too long", "YYYY-MM-DD-YYYY-MM-DD-YYYY-MM-DD-YYYY-MM-DD-YYYY-MM-DD"},
		{"unclosed bracket", "[Updated YYYY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDateFormat(tt.format)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ParseDateFormat(%q) error = %v, want ErrInvalidDateFormat", tt.format, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDisplay / TestMachine
// ---------------------------------------------------------------------------

func TestDisplay(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"default when empty", "", "June 1, 2024"},
		{"iso preset", "iso", "2024-06-01"},
		{"preset case-insensitive", "ISO", "2024-06-01"},
		{"us preset", "us", "06/01/2024"},
		{"custom format", "DD.MM.YYYY", "01.06.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Display(date, tt.format)
			if err != nil {
				t.Fatalf("Display(%q) error = %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Display(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestDisplay_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := Display(time.Now(), "[unclosed")
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("Display error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestMachine(t *testing.T) {
	t.Parallel()

	got := Machine(time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC))
	if got != "2024-06-01" {
		t.Errorf("Machine() = %q, want %q", got, "2024-06-01")
	}
}
