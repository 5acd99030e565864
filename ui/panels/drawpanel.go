package panels

import (
	"fmt"
	"strconv"

	"cable-router/internal/app"
	"cable-router/internal/catalog"
	"cable-router/internal/session"
	"cable-router/ui/canvas"
	"cable-router/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// modeNames maps the radio labels to session modes.
var modeNames = []struct {
	label string
	mode  session.Mode
}{
	{"Select", session.ModeSelect},
	{"Draw", session.ModeDraw},
	{"Edit", session.ModeEdit},
	{"Delete", session.ModeDelete},
	{"Junction", session.ModeJunction},
}

// DrawPanel holds the tool mode selector, the preset picker and the
// snap settings.
type DrawPanel struct {
	state     *app.State
	canvas    *canvas.PlanCanvas
	container fyne.CanvasObject

	modeSelect   *widget.RadioGroup
	presetSelect *widget.Select
	presetInfo   *widget.Label
	statusLabel  *widget.Label

	objectSnapCheck *widget.Check
	gridSnapCheck   *widget.Check
	snapRadiusEntry *widget.Entry
	gridSizeEntry   *widget.Entry
}

// NewDrawPanel creates the drawing tool panel.
func NewDrawPanel(state *app.State, cvs *canvas.PlanCanvas, p *prefs.Prefs) *DrawPanel {
	dp := &DrawPanel{
		state:  state,
		canvas: cvs,
	}

	dp.statusLabel = widget.NewLabel("")
	dp.statusLabel.Wrapping = fyne.TextWrapWord
	dp.presetInfo = widget.NewLabel("")
	dp.presetInfo.Wrapping = fyne.TextWrapWord

	labels := make([]string, len(modeNames))
	for i, m := range modeNames {
		labels[i] = m.label
	}
	dp.modeSelect = widget.NewRadioGroup(labels, func(selected string) {
		for _, m := range modeNames {
			if m.label == selected {
				state.Session.SetMode(m.mode)
				state.Emit(app.EventModeChanged, m.mode)
				break
			}
		}
		dp.updateStatus()
	})
	dp.modeSelect.SetSelected("Select")

	dp.presetSelect = widget.NewSelect(catalog.List(), func(selected string) {
		state.Session.SetPreset(selected)
		state.Emit(app.EventPresetChanged, selected)
		dp.updatePresetInfo()
	})
	dp.presetSelect.SetSelected(state.Session.Preset().Name)

	newRouteButton := widget.NewButton("New Route", func() {
		r := state.Manager.CreateRoute(state.Session.Preset())
		if err := state.Session.EnterDraw(r.ID); err != nil {
			return
		}
		dp.modeSelect.SetSelected("Draw")
		state.SetModified(true)
		state.Emit(app.EventRoutesChanged, nil)
		dp.updateStatus()
	})

	finishButton := widget.NewButton("Finish", func() {
		state.Session.Finish()
		dp.updateStatus()
	})
	cancelButton := widget.NewButton("Cancel", func() {
		state.Session.Cancel()
		dp.updateStatus()
	})

	dp.objectSnapCheck = widget.NewCheck("Snap to equipment", func(on bool) {
		state.Session.Settings.ObjectSnap = on
		state.Emit(app.EventSnapChanged, nil)
	})
	dp.gridSnapCheck = widget.NewCheck("Snap to grid", func(on bool) {
		state.Session.Settings.GridSnap = on
		state.Emit(app.EventSnapChanged, nil)
	})
	dp.objectSnapCheck.SetChecked(state.Session.Settings.ObjectSnap)
	dp.gridSnapCheck.SetChecked(state.Session.Settings.GridSnap)

	dp.snapRadiusEntry = widget.NewEntry()
	dp.snapRadiusEntry.SetText(formatMeters(state.Session.Settings.Radius))
	dp.snapRadiusEntry.OnSubmitted = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil && v > 0 {
			state.Session.Settings.Radius = v
			state.Emit(app.EventSnapChanged, nil)
		} else {
			dp.snapRadiusEntry.SetText(formatMeters(state.Session.Settings.Radius))
		}
	}

	dp.gridSizeEntry = widget.NewEntry()
	dp.gridSizeEntry.SetText(formatMeters(state.Session.Settings.GridSize))
	dp.gridSizeEntry.OnSubmitted = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil && v > 0 {
			state.Session.Settings.GridSize = v
			state.Emit(app.EventSnapChanged, nil)
		} else {
			dp.gridSizeEntry.SetText(formatMeters(state.Session.Settings.GridSize))
		}
	}

	showGridCheck := widget.NewCheck("Show grid", func(on bool) {
		cvs.SetShowGrid(on)
		p.SetBool(prefs.KeyShowGrid, on)
	})
	showGrid := p.Bool(prefs.KeyShowGrid, true)
	showGridCheck.SetChecked(showGrid)
	cvs.SetShowGrid(showGrid)

	showLengthsCheck := widget.NewCheck("Show lengths", func(on bool) {
		cvs.SetShowLengths(on)
		p.SetBool(prefs.KeyShowLengths, on)
	})
	showLengths := p.Bool(prefs.KeyShowLengths, true)
	showLengthsCheck.SetChecked(showLengths)
	cvs.SetShowLengths(showLengths)

	state.On(app.EventRoutesChanged, func(interface{}) { dp.updateStatus() })

	snapForm := container.NewVBox(
		dp.objectSnapCheck,
		dp.gridSnapCheck,
		container.NewGridWithColumns(2,
			widget.NewLabel("Snap radius (m)"), dp.snapRadiusEntry,
			widget.NewLabel("Grid size (m)"), dp.gridSizeEntry,
		),
		showGridCheck,
		showLengthsCheck,
	)

	dp.container = container.NewVBox(
		widget.NewCard("Tool", "", dp.modeSelect),
		widget.NewCard("Tray Preset", "", container.NewVBox(dp.presetSelect, dp.presetInfo)),
		widget.NewCard("Drawing", "", container.NewVBox(
			newRouteButton,
			container.NewGridWithColumns(2, finishButton, cancelButton),
			dp.statusLabel,
		)),
		widget.NewCard("Snapping", "", snapForm),
	)

	dp.updatePresetInfo()
	dp.updateStatus()
	return dp
}

// Container returns the panel container.
func (dp *DrawPanel) Container() fyne.CanvasObject {
	return dp.container
}

// SetModeSelection moves the radio selection without going through the
// session, used when the mode changed from a shortcut.
func (dp *DrawPanel) SetModeSelection(mode session.Mode) {
	for _, m := range modeNames {
		if m.mode == mode {
			dp.modeSelect.SetSelected(m.label)
			return
		}
	}
}

func (dp *DrawPanel) updatePresetInfo() {
	p := dp.state.Session.Preset()
	dp.presetInfo.SetText(fmt.Sprintf("%s, %.2f x %.2f m, %s / %s",
		p.Style, p.Width, p.Height, p.Voltage, p.RouteType))
}

func (dp *DrawPanel) updateStatus() {
	sess := dp.state.Session
	active := sess.ActiveRoute()

	switch {
	case sess.State() == session.StateDrawing && active != nil:
		if _, pending := sess.PendingPosition(); pending {
			dp.statusLabel.SetText(fmt.Sprintf("Drawing %s: click to place the first segment", active.Name))
		} else {
			dp.statusLabel.SetText(fmt.Sprintf("Drawing %s: %d points, %.1f m",
				active.Name, len(active.Points), active.TotalLength))
		}
	case active != nil:
		dp.statusLabel.SetText(fmt.Sprintf("Selected: %s", active.Name))
	default:
		dp.statusLabel.SetText("No active route")
	}
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
