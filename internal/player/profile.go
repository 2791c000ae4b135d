package player

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultAvatarID is used when the profile carries no avatar.
const DefaultAvatarID ItemID = "406"

// ItemID is an item, avatar, pet or weapon identifier. The info service sends
// these as JSON numbers or strings; both are kept by their textual form.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		*id = ItemID(n.String())
	}
	return nil
}

func (id ItemID) String() string { return string(id) }

// Present reports whether id names something. Zero counts as absent.
func (id ItemID) Present() bool {
	return id != "" && id != "0"
}

// Profile is the subset of the player info document the renderer needs.
type Profile struct {
	EquippedItems []ItemID
	AvatarID      ItemID
	PetID         ItemID
	WeaponID      ItemID
}

type infoDocument struct {
	ProfileInfo struct {
		EquippedItems []ItemID `json:"equippedItems"`
		AvatarID      *ItemID  `json:"avatarId"`
	} `json:"profileInfo"`
	PetInfo struct {
		ID ItemID `json:"id"`
	} `json:"petInfo"`
	PlayerData struct {
		WeaponSkinShows []ItemID `json:"weaponSkinShows"`
	} `json:"playerData"`
}

// ParseProfile decodes a player info response body.
func ParseProfile(body []byte) (*Profile, error) {
	var doc *infoDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("player info: empty document")
	}

	p := &Profile{
		EquippedItems: doc.ProfileInfo.EquippedItems,
		AvatarID:      DefaultAvatarID,
		PetID:         doc.PetInfo.ID,
	}
	if a := doc.ProfileInfo.AvatarID; a != nil && *a != "" {
		p.AvatarID = *a
	}
	if len(doc.PlayerData.WeaponSkinShows) > 0 {
		p.WeaponID = doc.PlayerData.WeaponSkinShows[0]
	}
	return p, nil
}
