// Package palette associe une couleur à chaque segment pour les rendus.
package palette

import (
	"fmt"
	"image/color"

	"rfm-segments/pkg/models"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback est utilisé pour un segment absent de la palette.
const Fallback = "#95a5a6"

// Palette associe un segment à une couleur hexadécimale "#rrggbb".
type Palette map[models.SegmentName]string

// Spectral reprend la palette ColorBrewer « Spectral » à 7 classes, du meilleur segment au moins bon.
var Spectral = Palette{
	models.CantLoseThem:      "#3288bd",
	models.Champions:         "#99d594",
	models.Loyal:             "#e6f598",
	models.Potential:         "#ffffbf",
	models.Promising:         "#fee08b",
	models.RequiresAttention: "#fc8d59",
	models.DemandsActivation: "#d53e4f",
}

// Hex retourne la couleur du segment.
func (p Palette) Hex(name models.SegmentName) string {
	if c, ok := p[name]; ok {
		return c
	}
	return Fallback
}

// Color retourne la couleur du segment en color.Color.
func (p Palette) Color(name models.SegmentName) color.Color {
	c, err := ParseHex(p.Hex(name))
	if err != nil {
		c, _ = ParseHex(Fallback)
	}
	return c
}

// ParseHex convertit "#rrggbb" (ou "#rgb") en color.RGBA opaque.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
