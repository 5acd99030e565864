// Package canvas provides the plan-view layout canvas with pan and zoom.
package canvas

import (
	"cable-router/internal/app"
	"cable-router/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25

	// basePixelsPerMeter is the screen density at zoom 1. World units
	// are meters; the view is the XZ plane seen from above.
	basePixelsPerMeter = 24.0

	// worldMargin pads the drawable area around the layout, in meters.
	worldMargin = 4.0
)

// PlanCanvas renders the farm layout from above: equipment footprints,
// cable routes with their fittings, the snap grid and the in-progress
// rubber band. Clicks are reported in world coordinates.
type PlanCanvas struct {
	widget.BaseWidget

	state *app.State

	raster *fynecanvas.Raster
	zoom   float64

	// Cursor position in world coordinates, for the rubber band.
	cursor    geometry.Point3D
	hasCursor bool

	// Extent of the drawable area in meters, grown to fit the layout.
	worldW float64
	worldH float64

	showGrid    bool
	showLengths bool

	scroll  *zoomScroll
	content *tappableContent
	imgSize fyne.Size

	onZoomChange func(zoom float64)
	onLeftClick  func(p geometry.Point3D)
	onRightClick func(p geometry.Point3D)
	onHover      func(p geometry.Point3D)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *PlanCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *PlanCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// tappableContent wraps the raster to handle mouse events.
type tappableContent struct {
	widget.BaseWidget
	canvas *PlanCanvas
	raster *fynecanvas.Raster
}

func newTappableContent(pc *PlanCanvas, raster *fynecanvas.Raster) *tappableContent {
	tc := &tappableContent{canvas: pc, raster: raster}
	tc.ExtendBaseWidget(tc)
	return tc
}

func (tc *tappableContent) CreateRenderer() fyne.WidgetRenderer {
	return &tappableContentRenderer{content: tc}
}

func (tc *tappableContent) MinSize() fyne.Size {
	return tc.raster.MinSize()
}

func (tc *tappableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		tc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		tc.canvas.ZoomOut()
	}
}

// worldAt converts an event position to world coordinates, rejecting
// positions outside the widget. Fyne sometimes delivers taps past the
// widget bounds.
func (tc *tappableContent) worldAt(pos fyne.Position) (geometry.Point3D, bool) {
	size := tc.Size()
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		return geometry.Point3D{}, false
	}
	offset := tc.canvas.scroll.Offset()
	return tc.canvas.CanvasToWorld(
		float64(pos.X+offset.X),
		float64(pos.Y+offset.Y),
	), true
}

func (tc *tappableContent) Tapped(ev *fyne.PointEvent) {
	if tc.canvas.onLeftClick == nil {
		return
	}
	if p, ok := tc.worldAt(ev.Position); ok {
		tc.canvas.onLeftClick(p)
	}
}

func (tc *tappableContent) TappedSecondary(ev *fyne.PointEvent) {
	if tc.canvas.onRightClick == nil {
		return
	}
	if p, ok := tc.worldAt(ev.Position); ok {
		tc.canvas.onRightClick(p)
	}
}

func (tc *tappableContent) MouseMoved(ev *desktop.MouseEvent) {
	if p, ok := tc.worldAt(ev.Position); ok {
		tc.canvas.SetCursor(p)
		if tc.canvas.onHover != nil {
			tc.canvas.onHover(p)
		}
	}
}

func (tc *tappableContent) MouseIn(*desktop.MouseEvent) {}

func (tc *tappableContent) MouseOut() {
	tc.canvas.ClearCursor()
}

type tappableContentRenderer struct {
	content *tappableContent
}

func (r *tappableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *tappableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *tappableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *tappableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *tappableContentRenderer) Destroy() {}

// NewPlanCanvas creates a plan-view canvas bound to the application
// state. The canvas re-renders on every route change.
func NewPlanCanvas(state *app.State) *PlanCanvas {
	pc := &PlanCanvas{
		state:       state,
		zoom:        1.0,
		worldW:      48,
		worldH:      32,
		showGrid:    true,
		showLengths: true,
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.content = newTappableContent(pc, pc.raster)
	pc.scroll = newZoomScroll(pc.content, pc)
	pc.ExtendBaseWidget(pc)
	pc.updateContentSize()

	state.On(app.EventRoutesChanged, func(interface{}) { pc.Refresh() })
	state.On(app.EventEquipmentChanged, func(interface{}) {
		pc.fitWorldToLayout()
		pc.Refresh()
	})
	state.On(app.EventProjectLoaded, func(interface{}) {
		pc.fitWorldToLayout()
		pc.Refresh()
	})
	state.On(app.EventSnapChanged, func(interface{}) { pc.Refresh() })
	return pc
}

// Container returns the canvas container for embedding in layouts.
func (pc *PlanCanvas) Container() fyne.CanvasObject {
	return pc.scroll
}

// SetCursor updates the rubber-band endpoint.
func (pc *PlanCanvas) SetCursor(p geometry.Point3D) {
	pc.cursor = p
	pc.hasCursor = true
	if _, drawing := pc.state.Session.PendingPosition(); drawing {
		pc.Refresh()
	} else if pc.state.Session.ActiveRoute() != nil {
		pc.Refresh()
	}
}

// ClearCursor hides the rubber band.
func (pc *PlanCanvas) ClearCursor() {
	pc.hasCursor = false
	pc.Refresh()
}

// SetShowGrid toggles grid rendering.
func (pc *PlanCanvas) SetShowGrid(show bool) {
	pc.showGrid = show
	pc.Refresh()
}

// SetShowLengths toggles segment length labels.
func (pc *PlanCanvas) SetShowLengths(show bool) {
	pc.showLengths = show
	pc.Refresh()
}

// SetZoom sets the zoom level, clamped to the supported range.
func (pc *PlanCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	pc.zoom = zoom
	pc.updateContentSize()

	if pc.onZoomChange != nil {
		pc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (pc *PlanCanvas) Zoom() float64 {
	return pc.zoom
}

func (pc *PlanCanvas) ZoomIn() {
	pc.SetZoom(pc.zoom * zoomStep)
}

func (pc *PlanCanvas) ZoomOut() {
	pc.SetZoom(pc.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the whole layout is visible.
func (pc *PlanCanvas) FitToWindow() {
	viewSize := pc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}
	zoomX := float64(viewSize.Width) / (pc.worldW * basePixelsPerMeter)
	zoomY := float64(viewSize.Height) / (pc.worldH * basePixelsPerMeter)
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	pc.SetZoom(zoom * 0.95)
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PlanCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// OnLeftClick sets a callback for left clicks, in world coordinates.
func (pc *PlanCanvas) OnLeftClick(callback func(p geometry.Point3D)) {
	pc.onLeftClick = callback
}

// OnRightClick sets a callback for right clicks, in world coordinates.
func (pc *PlanCanvas) OnRightClick(callback func(p geometry.Point3D)) {
	pc.onRightClick = callback
}

// OnHover sets a callback for pointer movement, in world coordinates.
func (pc *PlanCanvas) OnHover(callback func(p geometry.Point3D)) {
	pc.onHover = callback
}

// Refresh redraws the canvas.
func (pc *PlanCanvas) Refresh() {
	pc.raster.Refresh()
}

// scale returns screen pixels per meter at the current zoom.
func (pc *PlanCanvas) scale() float64 {
	return basePixelsPerMeter * pc.zoom
}

// WorldToCanvas converts world XZ coordinates to canvas pixels.
func (pc *PlanCanvas) WorldToCanvas(p geometry.Point3D) (x, y float64) {
	s := pc.scale()
	return (p.X + worldMargin) * s, (p.Z + worldMargin) * s
}

// CanvasToWorld converts canvas pixels to world coordinates on the
// ground plane.
func (pc *PlanCanvas) CanvasToWorld(x, y float64) geometry.Point3D {
	s := pc.scale()
	return geometry.Point3D{
		X: x/s - worldMargin,
		Z: y/s - worldMargin,
	}
}

// fitWorldToLayout grows the drawable area to cover every route point
// and equipment footprint. The area never shrinks below the default.
func (pc *PlanCanvas) fitWorldToLayout() {
	maxX, maxZ := 48.0-2*worldMargin, 32.0-2*worldMargin
	for _, r := range pc.state.Manager.Routes() {
		for _, p := range r.Points {
			if p.Position.X > maxX {
				maxX = p.Position.X
			}
			if p.Position.Z > maxZ {
				maxZ = p.Position.Z
			}
		}
	}
	for _, e := range pc.state.Equipment.All() {
		if x := e.Position.X + e.Size.X/2; x > maxX {
			maxX = x
		}
		if z := e.Position.Z + e.Size.Z/2; z > maxZ {
			maxZ = z
		}
	}
	pc.worldW = maxX + 2*worldMargin
	pc.worldH = maxZ + 2*worldMargin
	pc.updateContentSize()
}

func (pc *PlanCanvas) updateContentSize() {
	s := pc.scale()
	pc.imgSize = fyne.NewSize(float32(pc.worldW*s), float32(pc.worldH*s))
	pc.raster.SetMinSize(pc.imgSize)
	pc.raster.Resize(pc.imgSize)
	if pc.content != nil {
		pc.content.Resize(pc.imgSize)
		pc.content.Refresh()
	}
	pc.raster.Refresh()
	if pc.scroll != nil {
		pc.scroll.Refresh()
	}
}

// CreateRenderer implements fyne.Widget.
func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &planCanvasRenderer{canvas: pc}
}

type planCanvasRenderer struct {
	canvas *PlanCanvas
}

func (r *planCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
}

func (r *planCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *planCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *planCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *planCanvasRenderer) Destroy() {}
