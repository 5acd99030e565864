// Package main provides the entry point for the Cable Router application.
package main

import (
	"log"
	"os"

	"cable-router/internal/app"
	"cable-router/internal/version"
	"cable-router/ui/mainwindow"
	"cable-router/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const appTitle = "Cable Router"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.cable-router")
	fyneApp.Settings().SetTheme(&app.RouterTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetTitle(appTitle)
	win.Resize(fyne.NewSize(1280, 800))

	// A project path on the command line wins over the remembered one.
	if len(os.Args) > 1 {
		win.OpenProject(os.Args[1])
	} else {
		win.RestoreLastProject()
	}

	win.ShowAndRun()
}
