package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/outfitapp/internal/apperr"
	"github.com/youruser/outfitapp/internal/config"
	imagepkg "github.com/youruser/outfitapp/internal/image"
	"github.com/youruser/outfitapp/internal/player"
)

// PlayerFetcher is satisfied by *player.Client.
type PlayerFetcher interface {
	Fetch(ctx context.Context, uid, region string) (*player.Profile, error)
}

// CardRenderer is satisfied by *outfit.Renderer.
type CardRenderer interface {
	Render(ctx context.Context, profile *player.Profile) (*imagepkg.Canvas, error)
}

type Handler struct {
	cfg      *config.Config
	players  PlayerFetcher
	renderer CardRenderer
	logger   *zap.Logger
}

func NewHandler(cfg *config.Config, players PlayerFetcher, renderer CardRenderer, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		players:  players,
		renderer: renderer,
		logger:   logger,
	}
}

type outfitQuery struct {
	UID    string
	Region string
}

// validate checks the required parameters first, then the API key.
func (h *Handler) validate(c *gin.Context) (outfitQuery, error) {
	q := outfitQuery{UID: c.Query("uid"), Region: c.Query("region")}
	if q.UID == "" || q.Region == "" {
		return q, apperr.ErrMissingParameter
	}
	key := c.Query("key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.Auth.APIKey)) != 1 {
		return q, apperr.ErrUnauthorized
	}
	return q, nil
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.StatusOf(err), gin.H{"error": apperr.MessageOf(err)})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// outfitImage renders the player's outfit card as a PNG.
func (h *Handler) outfitImage(c *gin.Context) {
	q, err := h.validate(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ctx := c.Request.Context()

	profile, err := h.players.Fetch(ctx, q.UID, q.Region)
	if err != nil {
		h.logger.Error("Player info unavailable",
			zap.String("uid", q.UID),
			zap.String("region", q.Region),
			zap.Error(err))
		abortWithError(c, err)
		return
	}

	canvas, err := h.renderer.Render(ctx, profile)
	if err != nil {
		abortWithError(c, err)
		return
	}

	b, err := canvas.PNG()
	if err != nil {
		h.logger.Error("Failed to encode outfit image", zap.Error(err))
		abortWithError(c, apperr.ErrEncodeFailed.Wrap(err))
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// outfitQR returns a QR code linking to the player's outfit image.
func (h *Handler) outfitQR(c *gin.Context) {
	q, err := h.validate(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}

	b, err := imagepkg.GenerateQRPNG(h.shareURL(q), size)
	if err != nil {
		h.logger.Error("Failed to generate QR code", zap.Error(err))
		abortWithError(c, apperr.ErrEncodeFailed.Wrap(err))
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) shareURL(q outfitQuery) string {
	v := url.Values{}
	v.Set("uid", q.UID)
	v.Set("region", q.Region)
	v.Set("key", h.cfg.Auth.APIKey)
	return strings.TrimRight(h.cfg.Share.PublicURL, "/") + "/outfit-image?" + v.Encode()
}
