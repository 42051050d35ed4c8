// Package inspector turns a leaf's components into labelled rows for the
// debug panel.
package inspector

import (
	"fmt"
	"time"

	"github.com/pthm-cable/leaves/game"
)

// Section is a titled group of fields from one component.
type Section struct {
	Title  string
	Fields []Field
}

// Leaf returns the inspectable sections of a leaf.
func Leaf(leaf game.Leaf) []Section {
	return []Section{
		{Title: "Identity", Fields: ExtractFields(leaf.Identity)},
		{Title: "Motion", Fields: ExtractFields(leaf.Kinematics)},
		{Title: "Personality", Fields: ExtractFields(leaf.Traits)},
		{Title: "Look", Fields: ExtractFields(leaf.Appearance)},
	}
}

// Title is the panel heading for a leaf.
func Title(leaf game.Leaf, now time.Duration) string {
	if !leaf.Dynamic {
		return fmt.Sprintf("Leaf #%d (static)", leaf.ID)
	}
	age := (now - leaf.CreatedAt).Round(100 * time.Millisecond)
	return fmt.Sprintf("Leaf #%d (age %s)", leaf.ID, age)
}
