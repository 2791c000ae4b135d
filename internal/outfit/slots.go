package outfit

import (
	"image"
	"strings"

	"github.com/youruser/outfitapp/internal/player"
)

// Slot is one outfit placement: the category prefix an equipped item must
// start with, the item drawn when none matches, and where it goes.
type Slot struct {
	Prefix   string
	Fallback string
	Rect     image.Rectangle
}

func slot(prefix, fallback string, x, y, w, h int) Slot {
	return Slot{Prefix: prefix, Fallback: fallback, Rect: image.Rect(x, y, x+w, y+h)}
}

// DefaultSlots is the fixed layout of the outfit card. Order matters: earlier
// slots win ambiguous matches.
var DefaultSlots = []Slot{
	slot("211", "211000000", 512, 119, 120, 120),
	slot("214", "214000000", 100, 100, 120, 120),
	slot("211", "208000000", 590, 255, 120, 120),
	slot("203", "203000000", 500, 537, 100, 100),
	slot("204", "204000000", 27, 405, 120, 120),
	slot("205", "205000000", 115, 530, 120, 120),
	slot("203", "212000000", 30, 235, 120, 120),
}

// ResolveSlots assigns one item id to each slot. For every slot in order it
// takes the first equipped item, in profile order, that starts with the slot
// prefix and has not been taken by an earlier slot; otherwise the fallback.
func ResolveSlots(slots []Slot, equipped []player.ItemID) []string {
	used := make(map[player.ItemID]struct{}, len(slots))
	out := make([]string, len(slots))

	for i, s := range slots {
		out[i] = s.Fallback
		for _, id := range equipped {
			if _, taken := used[id]; taken {
				continue
			}
			if strings.HasPrefix(id.String(), s.Prefix) {
				used[id] = struct{}{}
				out[i] = id.String()
				break
			}
		}
	}
	return out
}
