// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"strings"

	"cable-router/internal/app"
	"cable-router/internal/session"
	"cable-router/internal/version"
	"cable-router/pkg/geometry"
	"cable-router/ui/canvas"
	"cable-router/ui/panels"
	"cable-router/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const projectExt = ".trayproj"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app        fyne.App
	state      *app.State
	prefs      *prefs.Prefs
	canvas     *canvas.PlanCanvas
	sidePanel  *panels.SidePanel
	statusBar  *widget.Label
	coordLabel *widget.Label

	// First click of an edit-mode move, waiting for the destination.
	editFrom *geometry.Point3D
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Cable Router")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.applyPrefs()
	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupKeys()

	win.SetCloseIntercept(func() {
		mw.savePrefs()
		win.Close()
	})

	return mw
}

// applyPrefs restores snap settings from the preference store.
func (mw *MainWindow) applyPrefs() {
	s := &mw.state.Session.Settings
	s.GridSize = mw.prefs.FloatWithFallback(prefs.KeyGridSize, s.GridSize)
	s.Radius = mw.prefs.FloatWithFallback(prefs.KeySnapRadius, s.Radius)
	s.GridSnap = mw.prefs.Bool(prefs.KeyGridSnap, s.GridSnap)
	s.ObjectSnap = mw.prefs.Bool(prefs.KeyObjectSnap, s.ObjectSnap)
	if name := mw.prefs.String(prefs.KeyPreset); name != "" {
		mw.state.Session.SetPreset(name)
	}
}

// savePrefs writes the current snap settings back.
func (mw *MainWindow) savePrefs() {
	s := mw.state.Session.Settings
	mw.prefs.SetFloat(prefs.KeyGridSize, s.GridSize)
	mw.prefs.SetFloat(prefs.KeySnapRadius, s.Radius)
	mw.prefs.SetBool(prefs.KeyGridSnap, s.GridSnap)
	mw.prefs.SetBool(prefs.KeyObjectSnap, s.ObjectSnap)
	mw.prefs.SetString(prefs.KeyPreset, mw.state.Session.Preset().Name)
	mw.prefs.SetString(prefs.KeyLastProject, mw.state.ProjectPath)
	_ = mw.prefs.Save()
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPlanCanvas(mw.state)
	mw.canvas.OnLeftClick(mw.onCanvasClick)
	mw.canvas.OnRightClick(func(geometry.Point3D) {
		// Right click ends the current drawing pass.
		mw.state.Session.Finish()
	})

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas, mw.prefs)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")
	mw.coordLabel = widget.NewLabel("")
	mw.canvas.OnHover(func(p geometry.Point3D) {
		mw.coordLabel.SetText(fmt.Sprintf("%.2f, %.2f", p.X, p.Z))
	})

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(container.NewBorder(nil, nil, nil, mw.coordLabel, mw.statusBar)),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToWindow)
	actualBtn := widget.NewButton("1:1", func() { mw.canvas.SetZoom(1.0) })

	zoomLabel := widget.NewLabel("100%")
	mw.canvas.OnZoomChange(func(zoom float64) {
		zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		zoomLabel,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.savePrefs()
			mw.app.Quit()
		}),
	)

	routeMenu := fyne.NewMenu("Route",
		fyne.NewMenuItem("New Route", mw.onNewRoute),
		fyne.NewMenuItem("Finish Drawing", func() { mw.state.Session.Finish() }),
		fyne.NewMenuItem("Cancel Drawing", func() { mw.state.Session.Cancel() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, routeMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Cable Router - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		}
		if warnings := mw.state.TakeLoadWarnings(); len(warnings) > 0 {
			dialog.ShowInformation("Project Repaired",
				"Some data was repaired while loading:\n\n"+strings.Join(warnings, "\n"),
				mw.Window)
		}
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Cable Router - " + filepath.Base(path))
			mw.updateStatus("Project saved: " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventModeChanged, func(interface{}) {
		mw.editFrom = nil
	})
}

// setupKeys binds Return to finish and Escape to cancel a drawing pass.
func (mw *MainWindow) setupKeys() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyReturn, fyne.KeyEnter:
			mw.state.Session.Finish()
			mw.updateStatus("Drawing finished")
		case fyne.KeyEscape:
			mw.state.Session.Cancel()
			mw.editFrom = nil
			mw.updateStatus("Drawing cancelled")
		}
	})
}

// onCanvasClick dispatches a world-space click to the current tool.
func (mw *MainWindow) onCanvasClick(p geometry.Point3D) {
	sess := mw.state.Session

	switch sess.Mode() {
	case session.ModeDraw:
		res, err := sess.Click(p)
		if err != nil {
			mw.updateStatus(err.Error())
			return
		}
		if res.Target != nil {
			mw.updateStatus("Snapped to " + res.Target.ObjectName)
		} else {
			mw.updateStatus(fmt.Sprintf("Point at %.2f, %.2f", res.Position.X, res.Position.Z))
		}

	case session.ModeSelect:
		if id := sess.SelectAt(p); id != "" {
			sess.SetActiveRoute(id)
			mw.state.Emit(app.EventSelectionChanged, id)
			if r := sess.ActiveRoute(); r != nil {
				mw.updateStatus("Selected " + r.Name)
			}
		}

	case session.ModeDelete:
		if sess.DeleteSegmentAt(p) {
			mw.state.SetModified(true)
			mw.updateStatus("Segment deleted")
		}

	case session.ModeJunction:
		if sess.JunctionAt(p) {
			mw.state.SetModified(true)
			mw.updateStatus("Junction placed")
		}

	case session.ModeEdit:
		if mw.editFrom == nil {
			from := p
			mw.editFrom = &from
			mw.updateStatus("Click the new position")
			return
		}
		from := *mw.editFrom
		mw.editFrom = nil
		if sess.MovePointAt(from, p) {
			mw.state.SetModified(true)
			mw.updateStatus("Point moved")
		} else {
			mw.updateStatus("No point near the first click")
		}
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// RestoreLastProject reopens the project from the previous run, if any.
func (mw *MainWindow) RestoreLastProject() {
	path := mw.prefs.String(prefs.KeyLastProject)
	if path == "" {
		return
	}
	if err := mw.state.LoadProject(path); err != nil {
		mw.updateStatus("Could not reopen " + path)
	}
}

// OpenProject loads the given project path, reporting errors in a dialog.
func (mw *MainWindow) OpenProject(path string) {
	if err := mw.state.LoadProject(path); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

// Menu action handlers

func (mw *MainWindow) onNewRoute() {
	r := mw.state.Manager.CreateRoute(mw.state.Session.Preset())
	if err := mw.state.Session.EnterDraw(r.ID); err != nil {
		return
	}
	mw.state.SetModified(true)
	mw.state.Emit(app.EventRoutesChanged, nil)
	mw.updateStatus("Drawing " + r.Name)
}

func (mw *MainWindow) onNewProject() {
	reset := func() {
		mw.state.Manager.Hydrate(nil)
		mw.state.Session.SetActiveRoute("")
		mw.state.ProjectPath = ""
		mw.state.ProjectName = ""
		mw.state.SetModified(false)
		mw.state.Emit(app.EventRoutesChanged, nil)
		mw.SetTitle("Cable Router - New Project")
	}
	if mw.state.Modified {
		dialog.ShowConfirm("New Project",
			"Discard unsaved changes?",
			func(ok bool) {
				if ok {
					reset()
				}
			}, mw.Window)
		return
	}
	reset()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.OpenProject(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{projectExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != projectExt {
			path += projectExt
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("layout" + projectExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String("lastDirectory")
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString("lastDirectory", filepath.Dir(filePath))
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Cable Router",
		fmt.Sprintf("Cable Router v%s\n\n"+
			"Cable tray and conduit routing for mining farm layouts.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
