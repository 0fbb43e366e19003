package animation

// FadeFactor returns the progress of a fade animation that lasts fadeFrames
// frames, after frames frames have been rendered.
//
// The result is min(1, frames/fadeFrames) for fadeFrames > 0. When fadeFrames
// is zero or negative there is no animation and the factor is always 1.
func FadeFactor(frames, fadeFrames int) float64 {
	if fadeFrames > 0 {
		return min(1, float64(frames)/float64(fadeFrames))
	}
	return 1
}

// Lerp linearly interpolates between start and final by factor.
func Lerp(start, final, factor float64) float64 {
	return start + (final-start)*factor
}
