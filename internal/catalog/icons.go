// Package catalog holds the fixed icon table and the example-card store
// with its optional hot-reloaded examples directory.
package catalog

import "sort"

// Icon is one entry in the fixed free-space icon table. The card core only
// stores the key; the glyph is what a renderer displays.
type Icon struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Glyph string `json:"glyph"`
}

var icons = map[string]Icon{
	"star":      {Key: "star", Label: "Star", Glyph: "★"},
	"heart":     {Key: "heart", Label: "Heart", Glyph: "♥"},
	"diamond":   {Key: "diamond", Label: "Diamond", Glyph: "♦"},
	"smile":     {Key: "smile", Label: "Smile", Glyph: "☺"},
	"lightbulb": {Key: "lightbulb", Label: "Light Bulb", Glyph: "\U0001F4A1"},
	"coffee":    {Key: "coffee", Label: "Coffee", Glyph: "☕"},
	"rocket":    {Key: "rocket", Label: "Rocket", Glyph: "\U0001F680"},
	"trophy":    {Key: "trophy", Label: "Trophy", Glyph: "\U0001F3C6"},
	"fire":      {Key: "fire", Label: "Fire", Glyph: "\U0001F525"},
	"target":    {Key: "target", Label: "Target", Glyph: "\U0001F3AF"},
}

// Icons returns every icon, sorted by key.
func Icons() []Icon {
	out := make([]Icon, 0, len(icons))
	for _, ic := range icons {
		out = append(out, ic)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// LookupIcon returns the icon for key.
func LookupIcon(key string) (Icon, bool) {
	ic, ok := icons[key]
	return ic, ok
}
