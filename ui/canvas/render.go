package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"cable-router/internal/catalog"
	"cable-router/internal/equipment"
	"cable-router/internal/route"
	"cable-router/pkg/geometry"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 30, A: 255}
	gridColor       = color.RGBA{R: 44, G: 48, B: 54, A: 255}
	gridMajorColor  = color.RGBA{R: 62, G: 68, B: 76, A: 255}
	rubberBandColor = color.RGBA{R: 240, G: 240, B: 160, A: 255}
	pointColor      = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	junctionColor   = color.RGBA{R: 255, G: 170, B: 40, A: 255}
	labelColor      = color.RGBA{R: 200, G: 205, B: 210, A: 255}
	activeHalo      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	lockedColor     = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// equipmentColors maps equipment kinds to footprint fill colors.
var equipmentColors = map[equipment.Kind]color.RGBA{
	equipment.KindTransformer: {R: 140, G: 60, B: 60, A: 255},
	equipment.KindSwitchboard: {R: 60, G: 100, B: 140, A: 255},
	equipment.KindPDU:         {R: 70, G: 125, B: 80, A: 255},
	equipment.KindContainer:   {R: 90, G: 90, B: 100, A: 255},
	equipment.KindNetworkRack: {R: 125, G: 85, B: 140, A: 255},
}

// draw renders the whole scene into an RGBA buffer of the given size.
func (pc *PlanCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(output, 0, 0, w, h, backgroundColor)

	if pc.showGrid {
		pc.drawGrid(output, w, h)
	}
	pc.drawEquipment(output)
	pc.drawRoutes(output)
	pc.drawRubberBand(output)

	return output
}

// drawGrid draws snap-grid lines over the background. Minor lines are
// skipped when the spacing collapses below a few pixels.
func (pc *PlanCanvas) drawGrid(output *image.RGBA, w, h int) {
	gridSize := pc.state.Session.Settings.GridSize
	if gridSize <= 0 {
		return
	}
	s := pc.scale()
	step := gridSize * s
	drawMinor := step >= 5

	// Major lines every whole meter.
	majorEvery := int(math.Round(1.0 / gridSize))
	if majorEvery < 1 {
		majorEvery = 1
	}

	// Lines sit on world grid multiples; the view origin is offset by
	// worldMargin, which need not be one of them.
	k0 := int(math.Ceil(-worldMargin / gridSize))
	for k := k0; ; k++ {
		x := int(math.Round((float64(k)*gridSize + worldMargin) * s))
		if x >= w {
			break
		}
		if x < 0 {
			continue
		}
		major := ((k%majorEvery)+majorEvery)%majorEvery == 0
		if !major && !drawMinor {
			continue
		}
		col := gridColor
		if major {
			col = gridMajorColor
		}
		vline(output, x, 0, h, col)
	}
	for k := k0; ; k++ {
		y := int(math.Round((float64(k)*gridSize + worldMargin) * s))
		if y >= h {
			break
		}
		if y < 0 {
			continue
		}
		major := ((k%majorEvery)+majorEvery)%majorEvery == 0
		if !major && !drawMinor {
			continue
		}
		col := gridColor
		if major {
			col = gridMajorColor
		}
		hline(output, 0, y, w, col)
	}
}

// drawEquipment draws each footprint as a filled rectangle with its
// connection points and name.
func (pc *PlanCanvas) drawEquipment(output *image.RGBA) {
	for _, e := range pc.state.Equipment.All() {
		fill, ok := equipmentColors[e.Kind]
		if !ok {
			fill = color.RGBA{R: 100, G: 100, B: 100, A: 255}
		}

		half := e.Size.Scale(0.5)
		x1, y1 := pc.WorldToCanvas(e.Position.Sub(half))
		x2, y2 := pc.WorldToCanvas(e.Position.Add(half))
		fillRect(output, int(x1), int(y1), int(x2), int(y2), fill)
		strokeRect(output, int(x1), int(y1), int(x2), int(y2), lighten(fill))

		for _, cp := range e.Connections {
			cx, cy := pc.WorldToCanvas(e.Position.Add(cp.Offset))
			fillCircle(output, int(cx), int(cy), 3, pointColor)
		}

		if pc.scale() > 8 {
			lx := int(x1) + 3
			ly := int(y1) + 3
			DrawLabel(output, e.Name, lx, ly, labelColor, 1)
		}
	}
}

// drawRoutes draws every visible route: segments first, then points and
// fitting markers, with the active route highlighted.
func (pc *PlanCanvas) drawRoutes(output *image.RGBA) {
	active := pc.state.Session.ActiveRoute()

	for _, r := range pc.state.Manager.Routes() {
		if !r.Visible {
			continue
		}
		isActive := active != nil && active.ID == r.ID
		pc.drawRoute(output, r, isActive)
	}
}

func (pc *PlanCanvas) drawRoute(output *image.RGBA, r *route.CableRoute, active bool) {
	for _, seg := range r.Segments {
		if !seg.Visible {
			continue
		}
		start := r.Point(seg.StartPointID)
		end := r.Point(seg.EndPointID)
		if start == nil || end == nil {
			continue
		}

		col := catalog.ParseHexColor(seg.Color)
		if seg.Locked {
			col = lockedColor
		}
		width := pc.trayScreenWidth(seg.Width)

		x1, y1 := pc.WorldToCanvas(start.Position)
		x2, y2 := pc.WorldToCanvas(end.Position)

		if active {
			thickLine(output, int(x1), int(y1), int(x2), int(y2), width+2, activeHalo)
		}
		thickLine(output, int(x1), int(y1), int(x2), int(y2), width, col)

		if pc.showLengths && pc.scale() > 8 {
			length := start.Position.Distance(end.Position)
			mx := int((x1 + x2) / 2)
			my := int((y1+y2)/2) - 8
			DrawLabel(output, fmt.Sprintf("%.1fM", length), mx, my, labelColor, 1)
		}
	}

	for _, p := range r.Points {
		x, y := pc.WorldToCanvas(p.Position)
		if p.Role == route.RoleJunction {
			fillCircle(output, int(x), int(y), 5, junctionColor)
			continue
		}
		fillCircle(output, int(x), int(y), 3, pointColor)
		if p.Fitting != nil && pc.scale() > 12 {
			DrawLabel(output, fittingTag(p.Fitting.Type), int(x)+5, int(y)-9, labelColor, 1)
		}
	}
}

// drawRubberBand draws the preview line from the last committed or
// pending point to the cursor while a route is being drawn.
func (pc *PlanCanvas) drawRubberBand(output *image.RGBA) {
	if !pc.hasCursor {
		return
	}

	var from geometry.Point3D
	if pos, ok := pc.state.Session.PendingPosition(); ok {
		from = pos
	} else {
		active := pc.state.Session.ActiveRoute()
		if active == nil {
			return
		}
		last := active.LastPoint()
		if last == nil {
			return
		}
		from = last.Position
	}

	x1, y1 := pc.WorldToCanvas(from)
	x2, y2 := pc.WorldToCanvas(pc.cursor)
	dashedLine(output, int(x1), int(y1), int(x2), int(y2), rubberBandColor)
	fillCircle(output, int(x1), int(y1), 4, rubberBandColor)
}

// trayScreenWidth maps a tray width in meters to a stroke width in
// pixels, clamped so thin trays stay visible.
func (pc *PlanCanvas) trayScreenWidth(meters float64) int {
	w := int(math.Round(meters * pc.scale()))
	if w < 2 {
		w = 2
	}
	if w > 14 {
		w = 14
	}
	return w
}

func fittingTag(t route.FittingType) string {
	switch t {
	case route.FittingElbow90:
		return "L90"
	case route.FittingElbow45:
		return "L45"
	case route.FittingTee:
		return "TEE"
	case route.FittingCross:
		return "X"
	case route.FittingReducer:
		return "RED"
	case route.FittingEndCap:
		return "CAP"
	case route.FittingJunctionBox:
		return "JB"
	}
	return ""
}

func lighten(c color.RGBA) color.RGBA {
	add := func(v uint8) uint8 {
		if v > 195 {
			return 255
		}
		return v + 60
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: 255}
}

// Raster primitives. The canvas draws into a plain RGBA buffer, so
// lines and fills are done by hand.

func fillRect(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	b := img.Bounds()
	for y := max(y1, b.Min.Y); y < min(y2, b.Max.Y); y++ {
		for x := max(x1, b.Min.X); x < min(x2, b.Max.X); x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func strokeRect(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	hline(img, x1, y1, x2, col)
	hline(img, x1, y2-1, x2, col)
	vline(img, x1, y1, y2, col)
	vline(img, x2-1, y1, y2, col)
}

func hline(img *image.RGBA, x1, y, x2 int, col color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := max(x1, b.Min.X); x < min(x2, b.Max.X); x++ {
		img.SetRGBA(x, y, col)
	}
}

func vline(img *image.RGBA, x, y1, y2 int, col color.RGBA) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := max(y1, b.Min.Y); y < min(y2, b.Max.Y); y++ {
		img.SetRGBA(x, y, col)
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, cx+dx, cy+dy, col)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	img.SetRGBA(x, y, col)
}

// thickLine draws a line of the given pixel width by stamping a filled
// disc along the run.
func thickLine(img *image.RGBA, x1, y1, x2, y2, width int, col color.RGBA) {
	r := width / 2
	plotLine(x1, y1, x2, y2, func(x, y int) {
		if r <= 0 {
			setPixel(img, x, y, col)
			return
		}
		fillCircle(img, x, y, r, col)
	})
}

func dashedLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	i := 0
	plotLine(x1, y1, x2, y2, func(x, y int) {
		if i%8 < 5 {
			setPixel(img, x, y, col)
		}
		i++
	})
}

// plotLine walks a Bresenham line and calls plot for each pixel.
func plotLine(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
