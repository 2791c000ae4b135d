package outfit

import (
	"context"
	"image"

	"go.uber.org/zap"

	"github.com/youruser/outfitapp/internal/apperr"
	"github.com/youruser/outfitapp/internal/config"
	imagepkg "github.com/youruser/outfitapp/internal/image"
	"github.com/youruser/outfitapp/internal/player"
	"github.com/youruser/outfitapp/internal/workerpool"
)

// Layer sizes and offsets of the card.
var (
	IconFetchSize = image.Pt(150, 150)

	AvatarSize    = image.Pt(500, 600)
	AvatarOffsetY = 109

	WeaponSize   = image.Pt(250, 128)
	WeaponOrigin = image.Pt(460, 397)

	PetSize   = image.Pt(120, 120)
	PetOrigin = image.Pt(600, 500)
)

// ImageFetcher is satisfied by *imagepkg.Fetcher.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string, size image.Point) imagepkg.Result
}

// Renderer builds outfit cards. A single Renderer is shared by all requests.
type Renderer struct {
	fetcher  ImageFetcher
	pool     *workerpool.Pool
	upstream config.UpstreamConfig
	slots    []Slot
	logger   *zap.Logger
}

func NewRenderer(fetcher ImageFetcher, pool *workerpool.Pool, upstream config.UpstreamConfig, logger *zap.Logger) *Renderer {
	return &Renderer{
		fetcher:  fetcher,
		pool:     pool,
		upstream: upstream,
		slots:    DefaultSlots,
		logger:   logger,
	}
}

// Render composes the card for profile. Only a missing background is fatal;
// any other missing layer is left out of the image.
func (r *Renderer) Render(ctx context.Context, profile *player.Profile) (*imagepkg.Canvas, error) {
	ids := ResolveSlots(r.slots, profile.EquippedItems)

	futures := make([]*workerpool.Future[imagepkg.Result], len(ids))
	for i, id := range ids {
		u := iconURL(r.upstream, id)
		futures[i] = workerpool.Go(ctx, r.pool, func() imagepkg.Result {
			return r.fetcher.Fetch(ctx, u, IconFetchSize)
		})
	}

	bg := r.fetcher.Fetch(ctx, r.upstream.BackgroundURL, image.Point{})
	if !bg.OK() {
		r.logger.Error("Background image unavailable", zap.Error(bg.Err))
		return nil, apperr.ErrBackgroundUnavailable.Wrap(bg.Err)
	}
	canvas := imagepkg.NewCanvas(bg.Image)

	for i, f := range futures {
		res := f.Wait()
		if !res.OK() {
			r.logger.Warn("Skipping outfit layer",
				zap.Int("slot", i),
				zap.String("item_id", ids[i]))
			continue
		}
		canvas.Paste(res.Image, r.slots[i].Rect)
	}

	avatar := r.fetcher.Fetch(ctx, avatarURL(r.upstream, profile.AvatarID.String()), AvatarSize)
	if avatar.OK() {
		x := centerX(canvas.Bounds().Dx(), avatar.Image.Bounds().Dx())
		canvas.PasteAt(avatar.Image, image.Pt(x, AvatarOffsetY))
	} else {
		r.logger.Warn("Skipping avatar layer", zap.Stringer("avatar_id", profile.AvatarID))
	}

	if profile.WeaponID.Present() {
		weapon := r.fetcher.Fetch(ctx, weaponURL(r.upstream, profile.WeaponID.String()), WeaponSize)
		if weapon.OK() {
			canvas.PasteAt(weapon.Image, WeaponOrigin)
		} else {
			r.logger.Warn("Skipping weapon layer", zap.Stringer("weapon_id", profile.WeaponID))
		}
	}

	if profile.PetID.Present() {
		pet := r.fetcher.Fetch(ctx, iconURL(r.upstream, profile.PetID.String()), PetSize)
		if pet.OK() {
			canvas.PasteAt(pet.Image, PetOrigin)
		} else {
			r.logger.Warn("Skipping pet layer", zap.Stringer("pet_id", profile.PetID))
		}
	}

	return canvas, nil
}

// centerX is the left edge that centers a layer of width w on a canvas of
// width canvasW. It floors, so a layer wider than the canvas starts one pixel
// further left on odd differences.
func centerX(canvasW, w int) int {
	d := canvasW - w
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}
