package inspector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/game"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   Options
	}{
		{"", WidgetAuto, Options{Max: 1}},
		{"bar,max:45", WidgetBar, Options{Max: 45}},
		{"label,fmt:%.1f", WidgetLabel, Options{Format: "%.1f", Max: 1}},
		{"bar,max:-3", WidgetBar, Options{Max: 1}},
		{"skip", WidgetSkip, Options{Max: 1}},
		{"angle", WidgetAngle, Options{Max: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, o := ParseTag(tt.tag)
			assert.Equal(t, tt.widget, w)
			assert.Equal(t, tt.opts, o)
		})
	}
}

func TestExtractFields_SkipsAndFlattens(t *testing.T) {
	look := components.Appearance{Size: 20, Brightness: 0.6, HueShift: -4}
	fields := ExtractFields(&look)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Size", "Brightness", "HueShift"}, names, "Color is skipped")
	assert.Equal(t, "20px", fields[0].Text())

	ratio, ok := fields[1].Ratio()
	require.True(t, ok)
	assert.InDelta(t, 0.5, ratio, 1e-6)
	assert.Equal(t, "-4°", fields[2].Text())

	type wrapped struct {
		components.Identity
		Extra bool
	}
	flat := ExtractFields(wrapped{Identity: components.Identity{ID: 9}})
	require.Len(t, flat, 4)
	assert.Equal(t, "ID", flat[0].Name)
	assert.Equal(t, "no", flat[3].Text())

	assert.Nil(t, ExtractFields(42))
	assert.Nil(t, ExtractFields((*components.Traits)(nil)))
}

func TestLeaf_Sections(t *testing.T) {
	leaf := game.Leaf{
		Identity:   components.Identity{ID: 12, Dynamic: true, CreatedAt: time.Second},
		Kinematics: components.Kinematics{X: 10, Y: 20, Rotation: 90, Scale: 3},
		Traits:     components.Traits{AnchorX: 10, Turbulence: 0.25},
	}

	sections := Leaf(leaf)
	require.Len(t, sections, 4)
	assert.Equal(t, "Motion", sections[1].Title)

	var rotation, scale Field
	for _, f := range sections[1].Fields {
		switch f.Name {
		case "Rotation":
			rotation = f
		case "Scale":
			scale = f
		}
	}
	assert.Equal(t, "90°", rotation.Text())
	r, ok := scale.Ratio()
	require.True(t, ok)
	assert.Equal(t, 1.0, r, "bars clamp at full scale")

	assert.Equal(t, "Leaf #12 (age 2.5s)", Title(leaf, 3500*time.Millisecond))
	leaf.Dynamic = false
	assert.Equal(t, "Leaf #12 (static)", Title(leaf, 0))
}
