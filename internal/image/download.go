package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/youruser/outfitapp/internal/apperr"
	"github.com/youruser/outfitapp/internal/util"
)

// Result is the outcome of a best-effort image fetch: either Image is set, or
// Err explains why the layer is missing.
type Result struct {
	URL   string
	Image image.Image
	Err   error
}

func (r Result) OK() bool {
	return r.Err == nil && r.Image != nil
}

// Fetcher downloads and decodes remote images.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

func NewFetcher(client *http.Client, logger *zap.Logger) *Fetcher {
	return &Fetcher{client: client, logger: logger}
}

// Fetch downloads url and decodes it. A non-zero size stretches the image to
// exactly size.X by size.Y. Fetch never fails loudly: transport errors, non-200
// responses and undecodable bodies come back as Result.Err.
func (f *Fetcher) Fetch(ctx context.Context, url string, size image.Point) Result {
	body, err := util.GetBytes(ctx, f.client, url)
	if err != nil {
		return f.fail(url, err)
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return f.fail(url, err)
	}
	if size.X > 0 && size.Y > 0 {
		img = Resize(img, size)
	}
	return Result{URL: url, Image: img}
}

func (f *Fetcher) fail(url string, err error) Result {
	f.logger.Warn("Failed to fetch image", zap.String("url", url), zap.Error(err))
	return Result{URL: url, Err: apperr.ErrLayerUnavailable.Wrap(err)}
}

// Resize stretches img to size using nearest-neighbour sampling.
func Resize(img image.Image, size image.Point) *image.NRGBA {
	return imaging.Resize(img, size.X, size.Y, imaging.NearestNeighbor)
}
