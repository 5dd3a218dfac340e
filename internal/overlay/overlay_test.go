package overlay

import (
	"image"
	"math"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/pinchvol/internal/detector"
	"github.com/ayusman/pinchvol/internal/volume"
)

func TestIsQuit(t *testing.T) {
	tests := []struct {
		key  int
		want bool
	}{
		{'q', true},
		{'Q', true},
		{27, true},
		{'a', false},
		{' ', false},
		{NoKey, false},
	}

	for _, tt := range tests {
		if got := IsQuit(tt.key); got != tt.want {
			t.Errorf("IsQuit(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestNopDisplay(t *testing.T) {
	d := NewNopDisplay()

	if key := d.PollKey(); key != NoKey {
		t.Errorf("expected NoKey on empty queue, got %d", key)
	}

	d.Press('a', 'q')
	if key := d.PollKey(); key != 'a' {
		t.Errorf("expected 'a', got %d", key)
	}
	if key := d.PollKey(); key != 'q' {
		t.Errorf("expected 'q', got %d", key)
	}
	if key := d.PollKey(); key != NoKey {
		t.Errorf("expected queue drained, got %d", key)
	}

	frame := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer frame.Close()

	for i := 0; i < 3; i++ {
		if err := d.Show(&frame); err != nil {
			t.Fatalf("Show() error = %v", err)
		}
	}
	if d.Shown() != 3 {
		t.Errorf("expected 3 frames shown, got %d", d.Shown())
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !d.Closed() {
		t.Error("expected display closed")
	}
}

func TestFPSCounter(t *testing.T) {
	var c FPSCounter
	start := time.Unix(1000, 0)

	if fps := c.Tick(start); fps != 0 {
		t.Errorf("first tick = %v, want 0", fps)
	}

	if fps := c.Tick(start.Add(100 * time.Millisecond)); math.Abs(fps-10) > 1e-9 {
		t.Errorf("tick after 100ms = %v, want 10", fps)
	}

	if fps := c.Tick(start.Add(100 * time.Millisecond)); fps != 0 {
		t.Errorf("tick with zero interval = %v, want 0", fps)
	}
}

func TestDraw(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	hand := detector.PinchLandmarks(
		detector.Point3D{X: 0.25, Y: 0.5},
		detector.Point3D{X: 0.5, Y: 0.5},
	)
	thumb, index, ok := detector.PinchPoints([]detector.HandLandmarks{hand}, 640, 480)
	if !ok {
		t.Fatal("expected pinch points")
	}

	s := volume.NewSmoother(volume.DefaultConfig(), volume.Range{Min: 0, Max: 100})
	level := s.Update(detector.Distance(thumb.Pos, index.Pos))

	Draw(&frame, HUD{
		Hands:    []detector.HandLandmarks{hand},
		Detected: true,
		Thumb:    thumb.Pos,
		Index:    index.Pos,
		Distance: detector.Distance(thumb.Pos, index.Pos),
		Level:    level,
		HasLevel: true,
		Muted:    true,
		FPS:      30,
	})

	// Bar interior at the bottom is always filled green.
	px := frame.GetVecbAt(volume.BarBottom-5, barLeft+10)
	if px[0] != 0 || px[1] != 255 || px[2] != 0 {
		t.Errorf("expected green bar fill, got %v", px)
	}

	// The pinch line crosses the midpoint between thumb and index.
	mid := frame.GetVecbAt((thumb.Pos.Y+index.Pos.Y)/2, (thumb.Pos.X+index.Pos.X)/2)
	if mid[0] == 0 && mid[1] == 0 && mid[2] == 0 {
		t.Error("expected pinch line drawn between fingertips")
	}

	// Frames are BGR: the fingertip markers are blue.
	tip := frame.GetVecbAt(thumb.Pos.Y, thumb.Pos.X)
	if tip[0] != 255 || tip[1] != 0 || tip[2] != 0 {
		t.Errorf("expected blue fingertip marker, got %v", tip)
	}

	// The MUTED label is red.
	if !regionHas(&frame, image.Rect(400, 60, 640, 105), func(px []uint8) bool {
		return px[0] == 0 && px[1] == 0 && px[2] == 255
	}) {
		t.Error("expected red MUTED label")
	}
	if regionHas(&frame, image.Rect(400, 60, 640, 105), func(px []uint8) bool {
		return px[0] == 255 && px[1] == 0 && px[2] == 0
	}) {
		t.Error("MUTED label should not contain blue pixels")
	}
}

func TestDraw_UnmutedHasNoLabel(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	Draw(&frame, HUD{Muted: false})

	if regionHas(&frame, image.Rect(400, 60, 640, 105), func(px []uint8) bool {
		return px[0] != 0 || px[1] != 0 || px[2] != 0
	}) {
		t.Error("expected no MUTED label while unmuted")
	}
}

func blankFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
}

func regionHas(frame *gocv.Mat, r image.Rectangle, match func(px []uint8) bool) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if match(frame.GetVecbAt(y, x)) {
				return true
			}
		}
	}
	return false
}

func TestDraw_NothingDetected(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	Draw(&frame, HUD{})

	px := frame.GetVecbAt(volume.BarBottom-5, barLeft+10)
	if px[0] != 0 || px[1] != 0 || px[2] != 0 {
		t.Errorf("expected no bar without a level, got %v", px)
	}
}
