package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; systems step by 1/TPS seconds.
	TPS = 60

	// Gravity is in world units per second squared (y grows down).
	Gravity = 900.0

	// PixelsPerUnit converts gameplay units (the scale the behavior tuning uses)
	// to world pixels.
	PixelsPerUnit = 32.0
)

// DeltaTime is the fixed step in seconds.
const DeltaTime = 1.0 / TPS
