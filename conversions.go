package pcd

import "math"

// srgbToLinear converts an sRGB-encoded channel in [0,1] to linear light
func srgbToLinear(c float32) float32 {
	if c < 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}

// unpackRGB splits a packed 0x00RRGGBB value into its channel bytes
func unpackRGB(packed uint32) (r, g, b uint8) {
	return uint8(packed >> 16), uint8(packed >> 8), uint8(packed)
}
