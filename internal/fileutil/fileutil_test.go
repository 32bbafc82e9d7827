package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestWriteTempFile
// ---------------------------------------------------------------------------

func TestWriteTempFile_CreatesAndCleans(t *testing.T) {
	t.Parallel()

	path, cleanup, err := WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path = %q, want .html suffix", path)
	}
	if !strings.Contains(filepath.Base(path), "mdpress-") {
		t.Errorf("path = %q, want mdpress- prefix in base name", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- test-created temp file
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q, want %q", string(data), "<html></html>")
	}

	cleanup()
	if FileExists(path) {
		t.Error("file still exists after cleanup")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"empty", "", ErrExtensionEmpty},
		{"slash", "a/b", ErrExtensionPathTraversal},
		{"backslash", "a\\b", ErrExtensionPathTraversal},
		{"null byte", "a\x00b", ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := WriteTempFile("x", tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteTempFile(%q) error = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if FileExists(filepath.Join(dir, "missing.txt")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestIsURL
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"dracula", false},
		{"my-style", false},
		{"./custom.css", true},
		{"../shared/style.css", true},
		{"/absolute/path.css", true},
		{"C:\\windows\\path.css", true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"http://example.com/a.js", true},
		{"https://cdn.example.com/a.js", true},
		{"ftp://example.com", false},
		{"./local.js", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestCopyDir
// ---------------------------------------------------------------------------

func TestCopyDir_CopiesNestedTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	if err := os.MkdirAll(filepath.Join(src, "img"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "robots.txt"), []byte("ok"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "img", "logo.svg"), []byte("<svg/>"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "img", "logo.svg")) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading copied file: %v", err)
	}
	if string(got) != "<svg/>" {
		t.Errorf("copied content = %q, want %q", string(got), "<svg/>")
	}
	if !FileExists(filepath.Join(dst, "robots.txt")) {
		t.Error("robots.txt not copied")
	}
}

func TestCopyDir_SourceNotADirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := CopyDir(file, t.TempDir())
	if !errors.Is(err, ErrNotADirectory) {
		t.Errorf("CopyDir(file) error = %v, want ErrNotADirectory", err)
	}
}

func TestCopyDir_MissingSource(t *testing.T) {
	t.Parallel()

	if err := CopyDir(filepath.Join(t.TempDir(), "missing"), t.TempDir()); err == nil {
		t.Error("CopyDir(missing) error = nil, want error")
	}
}
