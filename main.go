package main

import (
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/zkmkarlsruhe/dnschanger/internal/gui"
)

func main() {
	// Check for CLI mode
	if len(os.Args) > 1 {
		runCLI()
		return
	}

	env, err := setup("")
	if err != nil {
		env.log.Fatal().Err(err).Msg("Startup failed")
	}
	log := env.log

	log.Info().Msg("Starting DNS Changer (GUI mode)")

	a := fyneapp.NewWithID("de.zkm.dnschanger")
	a.SetIcon(gui.AppIcon())

	w := a.NewWindow("DNS Changer")
	w.Resize(fyne.NewSize(420, 360))
	w.SetFixedSize(true)

	g := gui.New(a, w, env.core, env.config, log)
	w.SetContent(g.Content())

	// Setup system tray if supported
	if desk, ok := a.(desktop.App); ok {
		g.SetupSystemTray(desk)
		w.SetCloseIntercept(func() {
			log.Debug().Msg("Window hidden (still running in tray)")
			w.Hide()
		})
	} else {
		log.Warn().Msg("Desktop features not available (no system tray)")
	}

	w.Show()
	a.Run()

	log.Info().Msg("Goodbye")
}
