// Package testdata builds synthetic camera frames for tests.
package testdata

import (
	"gocv.io/x/gocv"
)

// Frame returns a width x height BGR frame filled with one gray level.
func Frame(width, height int, gray float64) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(gray, gray, gray, 0), height, width, gocv.MatTypeCV8UC3)
	return &mat
}

// Sequence returns n frames ramping from dark to light, so consecutive
// frames differ like a live feed would.
func Sequence(n, width, height int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		gray := 0.0
		if n > 1 {
			gray = 255 * float64(i) / float64(n-1)
		}
		frames = append(frames, Frame(width, height, gray))
	}
	return frames
}

// CloseAll releases every frame.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
