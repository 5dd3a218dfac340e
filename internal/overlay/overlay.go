// Package overlay draws the control HUD onto camera frames and shows them.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/pinchvol/internal/detector"
	"github.com/ayusman/pinchvol/internal/volume"
)

// HUD colors.
var (
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 0}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

// Filled is the thickness value that fills a shape.
const Filled = -1

// Volume bar geometry.
const (
	barLeft  = 50
	barRight = 85
)

// handConnections are the landmark pairs joined when drawing a hand skeleton.
var handConnections = [][2]int{
	{detector.Wrist, detector.ThumbCMC}, {detector.ThumbCMC, detector.ThumbMCP},
	{detector.ThumbMCP, detector.ThumbIP}, {detector.ThumbIP, detector.ThumbTip},
	{detector.Wrist, detector.IndexMCP}, {detector.IndexMCP, detector.IndexPIP},
	{detector.IndexPIP, detector.IndexDIP}, {detector.IndexDIP, detector.IndexTip},
	{detector.IndexMCP, detector.MiddleMCP}, {detector.MiddleMCP, detector.MiddlePIP},
	{detector.MiddlePIP, detector.MiddleDIP}, {detector.MiddleDIP, detector.MiddleTip},
	{detector.MiddleMCP, detector.RingMCP}, {detector.RingMCP, detector.RingPIP},
	{detector.RingPIP, detector.RingDIP}, {detector.RingDIP, detector.RingTip},
	{detector.RingMCP, detector.PinkyMCP}, {detector.Wrist, detector.PinkyMCP},
	{detector.PinkyMCP, detector.PinkyPIP}, {detector.PinkyPIP, detector.PinkyDIP},
	{detector.PinkyDIP, detector.PinkyTip},
}

// HUD is everything drawn on one frame.
type HUD struct {
	Hands    []detector.HandLandmarks
	Detected bool
	Thumb    detector.Point
	Index    detector.Point
	Distance float64
	Level    volume.Level
	HasLevel bool
	Muted    bool
	FPS      float64
}

// Draw renders hud onto frame.
func Draw(frame *gocv.Mat, hud HUD) {
	width, height := frame.Cols(), frame.Rows()

	for i := range hud.Hands {
		drawHand(frame, &hud.Hands[i], width, height)
	}

	if hud.Detected {
		drawPinch(frame, hud.Thumb, hud.Index, hud.Distance)
	}

	if hud.HasLevel {
		drawVolume(frame, hud.Level)
	}

	if hud.Muted {
		gocv.PutText(frame, "MUTED", image.Pt(400, 100), gocv.FontHersheyPlain, 3, Red, 3)
	}

	gocv.PutText(frame, fmt.Sprintf("FPS: %d", int(hud.FPS)), image.Pt(10, 50), gocv.FontHersheyPlain, 2, Blue, 2)

	gocv.PutText(frame, "Volume Control: Move thumb and index finger", image.Pt(10, height-70), gocv.FontHersheyPlain, 2, White, 2)
	gocv.PutText(frame, "Mute: Pinch and hold for 1 second", image.Pt(10, height-40), gocv.FontHersheyPlain, 2, White, 2)
}

func drawHand(frame *gocv.Mat, hand *detector.HandLandmarks, width, height int) {
	pt := func(id int) image.Point {
		p := hand.Pixel(id, width, height).Pos
		return image.Pt(p.X, p.Y)
	}

	for _, c := range handConnections {
		gocv.Line(frame, pt(c[0]), pt(c[1]), White, 2)
	}
	for id := 0; id < detector.NumLandmarks; id++ {
		gocv.Circle(frame, pt(id), 5, Magenta, Filled)
	}
}

func drawPinch(frame *gocv.Mat, thumb, index detector.Point, distance float64) {
	p1 := image.Pt(thumb.X, thumb.Y)
	p2 := image.Pt(index.X, index.Y)

	gocv.Line(frame, p1, p2, Magenta, 3)
	gocv.Circle(frame, p1, 10, Blue, Filled)
	gocv.Circle(frame, p2, 10, Blue, Filled)
	gocv.PutText(frame, fmt.Sprintf("%d", int(distance)), image.Pt(p1.X+20, p1.Y-30), gocv.FontHersheyPlain, 2, Blue, 2)
}

func drawVolume(frame *gocv.Mat, level volume.Level) {
	outline := image.Rect(barLeft, volume.BarTop, barRight, volume.BarBottom)
	fill := image.Rect(barLeft, int(level.BarY), barRight, volume.BarBottom)

	gocv.Rectangle(frame, outline, Green, 3)
	gocv.Rectangle(frame, fill, Green, Filled)
	gocv.PutText(frame, fmt.Sprintf("%d%%", int(level.Percent)), image.Pt(40, 450), gocv.FontHersheyPlain, 2, Green, 2)
	gocv.PutText(frame, fmt.Sprintf("Vol: %d%%", int(level.Percent)), image.Pt(400, 50), gocv.FontHersheyPlain, 2, Blue, 2)
}
