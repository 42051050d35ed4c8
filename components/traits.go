package components

// Traits are the intrinsic parameters that give each leaf its personality.
// They are drawn once at creation; a static leaf redraws most of them on reset.
type Traits struct {
	AnchorX             float64 `inspect:"label,fmt:%.0f"` // Horizontal anchor the sway is centred on
	BaseSwayAmplitude   float64 `inspect:"bar,max:45"`
	BaseFallSpeed       float64 `inspect:"bar,max:1.4"`
	PersonalityX        float64 `inspect:"label,fmt:%+.2f"` // Horizontal drift bias
	PersonalityRotation float64 `inspect:"label,fmt:%+.2f"`
	Phase               float64 `inspect:"angle"`
	SwayResponse        float64 `inspect:"bar,max:1.5"`
	FallResponse        float64 `inspect:"bar,max:1.3"`
	Turbulence          float64 `inspect:"bar,max:1"` // Also modulates spin decay
	Mass                float64 `inspect:"skip"`
}
