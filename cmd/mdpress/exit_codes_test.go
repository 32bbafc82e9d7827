package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"generic error", errors.New("boom"), ExitGeneral},
		{"context canceled", context.Canceled, ExitGeneral},

		{"browser connect", mdpress.ErrBrowserConnect, ExitBrowser},
		{"page create", mdpress.ErrPageCreate, ExitBrowser},
		{"typeset", mdpress.ErrTypeset, ExitBrowser},
		{"execution", mdpress.ErrExecution, ExitBrowser},
		{"wrapped browser", fmt.Errorf("static typesetting: %w", mdpress.ErrBrowserConnect), ExitBrowser},

		{"file not found", os.ErrNotExist, ExitIO},
		{"no content", ErrNoContent, ExitIO},
		{"read post", ErrReadPost, ExitIO},
		{"write page", ErrWritePage, ExitIO},
		{"site exists", ErrSiteExists, ExitIO},

		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid field", config.ErrInvalidField, ExitUsage},
		{"empty markdown", mdpress.ErrEmptyMarkdown, ExitUsage},
		{"empty code", mdpress.ErrEmptyCode, ExitUsage},
		{"style not found", mdpress.ErrStyleNotFound, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"timeout", ErrInvalidTimeout, ExitUsage},
		{"shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped usage", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
