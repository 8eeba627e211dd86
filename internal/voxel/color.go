package voxel

// PackRGB packs 8-bit channels into a 0xRRGGBB integer.
func PackRGB(r, g, b uint8) int {
	return int(r)<<16 | int(g)<<8 | int(b)
}

// UnpackRGB splits a packed 0xRRGGBB integer back into channels.
func UnpackRGB(c int) (r, g, b uint8) {
	return uint8(c >> 16 & 0xff), uint8(c >> 8 & 0xff), uint8(c & 0xff)
}

// RGBFloats returns the packed color's channels scaled to [0,1], the form
// material diffuse colors use.
func RGBFloats(c int) (r, g, b float32) {
	ri, gi, bi := UnpackRGB(c)
	return float32(ri) / 255.0, float32(gi) / 255.0, float32(bi) / 255.0
}
