package outfit

import (
	"net/url"

	"github.com/youruser/outfitapp/internal/config"
)

func withQuery(base, key, value string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + url.Values{key: {value}}.Encode()
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

func iconURL(up config.UpstreamConfig, id string) string {
	return withQuery(up.IconURL, "id", id)
}

func avatarURL(up config.UpstreamConfig, id string) string {
	return withQuery(up.AvatarURL, "id", id)
}

func weaponURL(up config.UpstreamConfig, id string) string {
	return withQuery(up.WeaponURL, "image", id+".png")
}
