// Package panels provides UI panels for the application.
package panels

import (
	"cable-router/internal/app"
	"cable-router/ui/canvas"
	"cable-router/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.PlanCanvas
	container *container.AppTabs

	drawPanel   *DrawPanel
	routesPanel *RoutesPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.PlanCanvas, p *prefs.Prefs) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.drawPanel = NewDrawPanel(state, cvs, p)
	sp.routesPanel = NewRoutesPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Draw", sp.drawPanel.Container()),
		container.NewTabItem("Routes", sp.routesPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.routesPanel.SetWindow(w)
}
