package canvas

import (
	"image"
	"image/color"
	"math"
	"os"
	"testing"

	"fyne.io/fyne/v2/test"

	"cable-router/internal/app"
	"cable-router/pkg/geometry"
)

func TestMain(m *testing.M) {
	test.NewApp()
	os.Exit(m.Run())
}

var red = color.RGBA{R: 255, A: 255}

func TestPlotLineHitsBothEndpoints(t *testing.T) {
	var pts [][2]int
	plotLine(2, 3, 10, 7, func(x, y int) {
		pts = append(pts, [2]int{x, y})
	})
	if len(pts) == 0 {
		t.Fatal("no pixels plotted")
	}
	if pts[0] != [2]int{2, 3} {
		t.Errorf("first pixel = %v, want [2 3]", pts[0])
	}
	if pts[len(pts)-1] != [2]int{10, 7} {
		t.Errorf("last pixel = %v, want [10 7]", pts[len(pts)-1])
	}
}

func TestFillRectClampsToImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fillRect(img, -5, -5, 100, 100, red)

	if img.RGBAAt(0, 0) != red || img.RGBAAt(7, 7) != red {
		t.Error("corners not filled")
	}
}

func TestFillRectSwapsCorners(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fillRect(img, 6, 6, 2, 2, red)
	if img.RGBAAt(3, 3) != red {
		t.Error("reversed corners not normalized")
	}
	if img.RGBAAt(7, 7) == red {
		t.Error("fill leaked past corner")
	}
}

func TestDrawLabelDrawsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	DrawLabel(img, "1.5M", 0, 0, red, 1)

	found := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			if img.RGBAAt(x, y) == red {
				found++
			}
		}
	}
	if found == 0 {
		t.Fatal("label drew nothing")
	}
}

func TestGetCharPatternFallsBackToEmpty(t *testing.T) {
	if getCharPattern('~') != [5]uint8{} {
		t.Error("unsupported char should map to empty pattern")
	}
	if getCharPattern('a') != getCharPattern('A') {
		t.Error("lowercase not folded to uppercase")
	}
}

// Grid lines must sit on world grid multiples even when the view
// margin is not one of them, so the drawn grid shows real snap
// positions for any grid size.
func TestGridLinesLandOnWorldMultiples(t *testing.T) {
	state := app.NewState()
	state.Session.Settings.GridSize = 0.3

	pc := NewPlanCanvas(state)
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	pc.drawGrid(img, 300, 200)

	atWorldX := func(wx float64) int {
		x, _ := pc.WorldToCanvas(geometry.Point3D{X: wx})
		return int(math.Round(x))
	}

	if got := img.RGBAAt(atWorldX(0), 0); got != gridMajorColor {
		t.Errorf("no major line at world X=0, pixel = %v", got)
	}
	if got := img.RGBAAt(atWorldX(0.3), 0); got != gridColor {
		t.Errorf("no minor line at world X=0.3, pixel = %v", got)
	}
	if got := img.RGBAAt(0, 0); got == gridColor || got == gridMajorColor {
		t.Error("line drawn at the screen origin, off the world grid")
	}
}
