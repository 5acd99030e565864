package panels

import (
	"fmt"

	"cable-router/internal/app"
	"cable-router/internal/route"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// RoutesPanel lists every route with visibility toggles and the
// aggregate length statistics.
type RoutesPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	list       *widget.List
	statsLabel *widget.Label

	// snapshot of the route list backing the widget, rebuilt on every
	// change notification
	rows []*route.CableRoute
	sel  int
}

// NewRoutesPanel creates the routes panel.
func NewRoutesPanel(state *app.State) *RoutesPanel {
	rp := &RoutesPanel{
		state: state,
		sel:   -1,
	}

	rp.statsLabel = widget.NewLabel("")
	rp.statsLabel.Wrapping = fyne.TextWrapWord

	rp.list = widget.NewList(
		func() int { return len(rp.rows) },
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			name := widget.NewLabel("")
			length := widget.NewLabel("")
			return container.NewBorder(nil, nil, check, length, name)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id >= len(rp.rows) {
				return
			}
			r := rp.rows[id]
			border := item.(*fyne.Container)
			check := border.Objects[1].(*widget.Check)
			length := border.Objects[2].(*widget.Label)
			name := border.Objects[0].(*widget.Label)

			name.SetText(r.Name)
			length.SetText(fmt.Sprintf("%.1f m", r.TotalLength))
			check.OnChanged = nil
			check.SetChecked(r.Visible)
			check.OnChanged = func(bool) {
				if _, err := state.Manager.ToggleVisibility(r.ID); err == nil {
					state.SetModified(true)
					state.Emit(app.EventRoutesChanged, nil)
				}
			}
		},
	)
	rp.list.OnSelected = func(id widget.ListItemID) {
		rp.sel = id
		if id < len(rp.rows) {
			state.Session.SetActiveRoute(rp.rows[id].ID)
			state.Emit(app.EventSelectionChanged, rp.rows[id].ID)
		}
	}
	rp.list.OnUnselected = func(widget.ListItemID) {
		rp.sel = -1
	}

	duplicateButton := widget.NewButton("Duplicate", func() {
		r := rp.selected()
		if r == nil {
			return
		}
		if _, err := state.Manager.Duplicate(r.ID); err == nil {
			state.SetModified(true)
			state.Emit(app.EventRoutesChanged, nil)
		}
	})

	deleteButton := widget.NewButton("Delete", func() {
		r := rp.selected()
		if r == nil {
			return
		}
		del := func() {
			if err := state.Manager.Delete(r.ID); err != nil {
				return
			}
			state.Session.RouteDeleted(r.ID)
			rp.sel = -1
			state.SetModified(true)
			state.Emit(app.EventRoutesChanged, nil)
		}
		if rp.window != nil {
			dialog.ShowConfirm("Delete Route",
				fmt.Sprintf("Delete %s?", r.Name),
				func(ok bool) {
					if ok {
						del()
					}
				}, rp.window)
			return
		}
		del()
	})

	rp.container = container.NewBorder(
		nil,
		container.NewVBox(
			container.NewGridWithColumns(2, duplicateButton, deleteButton),
			widget.NewCard("Totals", "", rp.statsLabel),
		),
		nil, nil,
		rp.list,
	)

	state.On(app.EventRoutesChanged, func(interface{}) { rp.Reload() })
	state.On(app.EventProjectLoaded, func(interface{}) { rp.Reload() })

	rp.Reload()
	return rp
}

// Container returns the panel container.
func (rp *RoutesPanel) Container() fyne.CanvasObject {
	return rp.container
}

// SetWindow sets the parent window for confirmation dialogs.
func (rp *RoutesPanel) SetWindow(w fyne.Window) {
	rp.window = w
}

// Reload rebuilds the route list and statistics from the manager.
func (rp *RoutesPanel) Reload() {
	rp.rows = rp.state.Manager.Routes()
	rp.list.Refresh()

	global, _ := rp.state.Manager.Stats()
	rp.statsLabel.SetText(fmt.Sprintf(
		"%d routes, %d points, %d segments\nTotal tray length: %.1f m",
		global.Routes, global.Points, global.Segments, global.TotalLength))
}

func (rp *RoutesPanel) selected() *route.CableRoute {
	if rp.sel < 0 || rp.sel >= len(rp.rows) {
		return nil
	}
	return rp.rows[rp.sel]
}
