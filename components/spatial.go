package components

// Kinematics holds the mutable motion state of a leaf.
// Rotation is in degrees and is never normalised.
type Kinematics struct {
	X, Y          float64 `inspect:"label,fmt:%.1f"`
	Rotation      float64 `inspect:"angle"`
	RotationSpeed float64 `inspect:"label,fmt:%.2f"`
	Scale         float64 `inspect:"bar,max:1.5"`
	MomentumX     float64 `inspect:"label,fmt:%.2f"`
	MomentumY     float64 `inspect:"label,fmt:%.2f"`
}

// Transform is the render output of one simulation step.
type Transform struct {
	X, Y      float64
	Rotation  float64 // degrees
	Scale     float64
	Influence float64 // Pointer influence in [0, 1], 0 when the pointer is far
}
