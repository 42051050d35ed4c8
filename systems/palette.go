package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/config"
)

// Palette draws leaf appearances from a fixed set of base colors.
type Palette struct {
	colors []colorful.Color
	cfg    config.PaletteConfig
}

// NewPalette parses the configured hex colors.
func NewPalette(cfg config.PaletteConfig) (*Palette, error) {
	if len(cfg.Colors) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	p := &Palette{cfg: cfg, colors: make([]colorful.Color, 0, len(cfg.Colors))}
	for _, hex := range cfg.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", hex, err)
		}
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// Len returns the number of base colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Pick draws a color, size, brightness and hue shift independently.
func (p *Palette) Pick(rng Rand) components.Appearance {
	base := p.colors[rng.Intn(len(p.colors))]
	size := uniform(rng, p.cfg.MinSize, p.cfg.MaxSize)
	brightness := uniform(rng, p.cfg.MinBrightness, p.cfg.MaxBrightness)
	hue := (rng.Float64()*2 - 1) * p.cfg.HueJitter

	return components.Appearance{
		Color:      Shade(base, brightness, hue),
		Size:       float32(size),
		Brightness: float32(brightness),
		HueShift:   float32(hue),
	}
}

// Shade rotates the hue of c in HCL space and scales its brightness.
func Shade(c colorful.Color, brightness, hueShift float64) color.RGBA {
	h, chroma, l := c.Hcl()
	h = math.Mod(h+hueShift+360, 360)
	shifted := colorful.Hcl(h, chroma, l).Clamped()

	scaled := colorful.Color{
		R: clamp(shifted.R*brightness, 0, 1),
		G: clamp(shifted.G*brightness, 0, 1),
		B: clamp(shifted.B*brightness, 0, 1),
	}
	r, g, b := scaled.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
