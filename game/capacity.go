package game

import "github.com/pthm-cable/leaves/config"

// CapacityFor returns the population bound for a viewport width. Narrow
// viewports and low-power hints get the smallest bound.
func CapacityFor(width float64, lowPower bool, c config.CapacityConfig) int {
	switch {
	case width <= float64(c.NarrowWidth) || lowPower:
		return c.Narrow
	case width > float64(c.WideWidth):
		return c.Wide
	default:
		return c.Default
	}
}

// degradedCapacity shrinks capacity by one without going below the floor.
func degradedCapacity(current int, c config.CapacityConfig) int {
	if current <= c.Floor {
		return current
	}
	return current - 1
}
