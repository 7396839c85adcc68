// Package assets resolves named references (portraits, backgrounds, accent
// glyphs, overlays, fonts) into decoded resources, caching each decode
// process-wide. Concurrent requests for the same reference collapse into a
// single load.
//
// The package deliberately knows nothing about where bytes come from beyond
// the small Source interface; remote fetching, uploads and browsing stay
// collaborator concerns.
package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source supplies raw bytes for a reference.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Dir is a Source rooted at a filesystem directory. References resolve as
// relative paths beneath it; absolute references and path escapes are
// rejected.
type Dir string

// Open implements Source.
func (d Dir) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	if ref == "" {
		return nil, fmt.Errorf("assets: empty reference")
	}
	if filepath.IsAbs(ref) {
		return nil, fmt.Errorf("assets: absolute reference %q rejected", ref)
	}
	full := filepath.Join(string(d), filepath.Clean(ref))
	rel, err := filepath.Rel(string(d), full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("assets: reference %q escapes root", ref)
	}
	return os.Open(full)
}
