package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/sync/singleflight"

	_ "golang.org/x/image/webp"
)

// Library is the shared reference → decoded-resource cache. It is built once
// and passed by reference into every generator; there is no package-level
// singleton. Lookups are safe for concurrent use, and a second concurrent
// request for a reference still in flight awaits the first load instead of
// issuing a duplicate fetch.
type Library struct {
	src Source
	log *slog.Logger

	flight singleflight.Group

	mu     sync.RWMutex
	images map[string]*gg.ImageBuf
	fonts  map[string]*text.FontSource
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger for recovered load failures. Silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.log = l
		}
	}
}

// NewLibrary builds a Library over the given source.
func NewLibrary(src Source, opts ...Option) *Library {
	lib := &Library{
		src:    src,
		log:    slog.New(nopHandler{}),
		images: make(map[string]*gg.ImageBuf),
		fonts:  make(map[string]*text.FontSource),
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// Image returns the decoded image for ref, loading and caching it on first
// request. Duplicate concurrent requests share one load. The load itself
// runs under the context of the request that initiated it.
func (l *Library) Image(ctx context.Context, ref string) (*gg.ImageBuf, error) {
	l.mu.RLock()
	img, ok := l.images[ref]
	l.mu.RUnlock()
	if ok {
		return img, nil
	}

	v, err, _ := l.flight.Do("img:"+ref, func() (any, error) {
		img, err := l.loadImage(ctx, ref)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.images[ref] = img
		l.mu.Unlock()
		return img, nil
	})
	if err != nil {
		l.log.Warn("asset load failed", "ref", ref, "error", err)
		return nil, err
	}
	return v.(*gg.ImageBuf), nil
}

// Font returns the parsed font source for ref, loading and caching it on
// first request. Faces at specific sizes are derived by the caller.
func (l *Library) Font(ctx context.Context, ref string) (*text.FontSource, error) {
	l.mu.RLock()
	src, ok := l.fonts[ref]
	l.mu.RUnlock()
	if ok {
		return src, nil
	}

	v, err, _ := l.flight.Do("font:"+ref, func() (any, error) {
		data, err := l.readAll(ctx, ref)
		if err != nil {
			return nil, err
		}
		src, err := text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("assets: parse font %q: %w", ref, err)
		}
		l.mu.Lock()
		l.fonts[ref] = src
		l.mu.Unlock()
		return src, nil
	})
	if err != nil {
		l.log.Warn("font load failed", "ref", ref, "error", err)
		return nil, err
	}
	return v.(*text.FontSource), nil
}

// Len reports how many images are currently cached.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images)
}

func (l *Library) loadImage(ctx context.Context, ref string) (*gg.ImageBuf, error) {
	rc, err := l.src.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %q: %w", ref, err)
	}
	return gg.ImageBufFromImage(img), nil
}

func (l *Library) readAll(ctx context.Context, ref string) ([]byte, error) {
	rc, err := l.src.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// nopHandler discards all log records, mirroring the silent-by-default
// policy of the root package.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
