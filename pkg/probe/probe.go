// Package probe resolves the natural pixel dimensions of image sources.
//
// The viewer core only ever consumes a (width, height) pair; actually
// loading the image is the renderer's business. The prober reads just the
// image header, from a local file or over HTTP, and caches the result
// keyed by source URL so repeated opens of the same image skip the I/O.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	// Header decoders for the formats a photo viewer realistically meets.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/askonen/zoomview/pkg/cache"
	zverrors "github.com/askonen/zoomview/pkg/errors"
	"github.com/askonen/zoomview/pkg/httputil"
	"github.com/askonen/zoomview/pkg/layout"
	"github.com/askonen/zoomview/pkg/observability"
)

// maxConcurrent bounds parallel probes in a batch.
const maxConcurrent = 8

// Prober resolves natural dimensions with caching.
type Prober struct {
	cache   cache.Cache
	fetcher *httputil.Fetcher
	logger  *log.Logger
}

// New creates a prober. A nil cache disables caching; a nil logger uses
// the default.
func New(c cache.Cache, fetcher *httputil.Fetcher, logger *log.Logger) *Prober {
	if c == nil {
		c = cache.NewNullCache()
	}
	if fetcher == nil {
		fetcher = httputil.NewFetcher(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Prober{cache: c, fetcher: fetcher, logger: logger}
}

// NaturalSize resolves the dimensions of src, which is either an
// http(s) URL or a local file path.
func (p *Prober) NaturalSize(ctx context.Context, src string) (layout.Size, error) {
	key := cache.DimensionKey(src)
	if data, hit, err := p.cache.Get(ctx, key); err == nil && hit {
		var size layout.Size
		if err := json.Unmarshal(data, &size); err == nil {
			observability.Cache().OnCacheHit(ctx, "dimensions")
			p.logger.Debug("dimensions from cache", "src", src, "width", size.Width, "height", size.Height)
			return size, nil
		}
		// Unreadable entry: fall through and reprobe.
	}
	observability.Cache().OnCacheMiss(ctx, "dimensions")

	size, err := p.probe(ctx, src)
	if err != nil {
		return layout.Size{}, err
	}

	if data, err := json.Marshal(size); err == nil {
		if err := p.cache.Set(ctx, key, data, cache.TTLDimensions); err == nil {
			observability.Cache().OnCacheSet(ctx, "dimensions", len(data))
		}
	}

	p.logger.Debug("probed dimensions", "src", src, "width", size.Width, "height", size.Height)
	return size, nil
}

// NaturalSizes resolves a batch of sources concurrently. The result maps
// each source to its size; the first failure aborts the batch.
func (p *Prober) NaturalSizes(ctx context.Context, srcs []string) (map[string]layout.Size, error) {
	results := make([]layout.Size, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, src := range srcs {
		g.Go(func() error {
			size, err := p.NaturalSize(gctx, src)
			if err != nil {
				return err
			}
			results[i] = size
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sizes := make(map[string]layout.Size, len(srcs))
	for i, src := range srcs {
		sizes[src] = results[i]
	}
	return sizes, nil
}

func (p *Prober) probe(ctx context.Context, src string) (layout.Size, error) {
	var (
		data []byte
		err  error
	)
	if isRemote(src) {
		data, err = p.fetcher.Get(ctx, src)
	} else {
		data, err = os.ReadFile(src)
		if os.IsNotExist(err) {
			return layout.Size{}, zverrors.Wrap(zverrors.ErrCodeFileNotFound, err, "open %s", src)
		}
	}
	if err != nil {
		return layout.Size{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return layout.Size{}, zverrors.Wrap(zverrors.ErrCodeDecode, err, "decode header of %s", src)
	}

	p.logger.Debug("decoded image header", "src", src, "format", format)
	return layout.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
