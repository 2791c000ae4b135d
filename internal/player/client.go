package player

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/youruser/outfitapp/internal/apperr"
	"github.com/youruser/outfitapp/internal/util"
)

// Client fetches profiles from the player info service.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch performs a single GET for uid/region. Any failure is returned wrapped
// in apperr.ErrUpstreamUnavailable; there is no retry.
func (c *Client) Fetch(ctx context.Context, uid, region string) (*Profile, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, apperr.ErrUpstreamUnavailable.Wrap(err)
	}
	q := u.Query()
	q.Set("uid", uid)
	q.Set("region", region)
	u.RawQuery = q.Encode()

	body, err := util.GetBytes(ctx, c.http, u.String())
	if err != nil {
		return nil, apperr.ErrUpstreamUnavailable.Wrap(err)
	}
	profile, err := ParseProfile(body)
	if err != nil {
		return nil, apperr.ErrUpstreamUnavailable.Wrap(err)
	}

	c.logger.Debug("Fetched player info",
		zap.String("uid", uid),
		zap.String("region", region),
		zap.Int("equipped_items", len(profile.EquippedItems)),
		zap.Stringer("avatar_id", profile.AvatarID),
		zap.Stringer("pet_id", profile.PetID),
		zap.Stringer("weapon_id", profile.WeaponID))

	return profile, nil
}
