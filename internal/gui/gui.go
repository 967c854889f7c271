package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	core "github.com/zkmkarlsruhe/dnschanger/internal/app"
	"github.com/zkmkarlsruhe/dnschanger/internal/config"
	"github.com/zkmkarlsruhe/dnschanger/internal/store"
	"github.com/zkmkarlsruhe/dnschanger/internal/system"
)

// GUI holds the application GUI state
type GUI struct {
	app    fyne.App
	window fyne.Window
	core   *core.App
	config *config.Config
	log    zerolog.Logger
	desk   desktop.App

	// Widgets that need updating
	currentLabel   *widget.Label
	adapterLabel   *widget.Label
	dnsSelect      *widget.Select
	setBtn         *widget.Button
	autostartCheck *widget.Check
}

// AppIcon returns the window and tray icon.
func AppIcon() fyne.Resource {
	return theme.SettingsIcon()
}

// New creates a new GUI instance
func New(a fyne.App, w fyne.Window, c *core.App, cfg *config.Config, log zerolog.Logger) *GUI {
	return &GUI{
		app:    a,
		window: w,
		core:   c,
		config: cfg,
		log:    log.With().Str("component", "gui").Logger(),
	}
}

// Content returns the main content container
func (g *GUI) Content() fyne.CanvasObject {
	g.currentLabel = widget.NewLabel("Current DNS is: ...")
	g.currentLabel.TextStyle = fyne.TextStyle{Bold: true}
	g.adapterLabel = widget.NewLabel("")
	g.adapterLabel.TextStyle = fyne.TextStyle{Italic: true}

	g.dnsSelect = widget.NewSelect(nil, nil)
	g.dnsSelect.PlaceHolder = "Select a DNS server"
	g.refreshOptions(0)

	g.setBtn = widget.NewButtonWithIcon("Set DNS", theme.ConfirmIcon(), g.applySelected)
	g.setBtn.Importance = widget.HighImportance

	addBtn := widget.NewButtonWithIcon("Add DNS", theme.ContentAddIcon(), func() {
		g.showAddDialog(store.Entry{})
	})
	deleteBtn := widget.NewButtonWithIcon("Delete DNS", theme.DeleteIcon(), g.deleteSelected)
	deleteBtn.Importance = widget.DangerImportance

	statusCard := widget.NewCard("Status", "", container.NewVBox(
		g.currentLabel,
		g.adapterLabel,
	))

	dnsCard := widget.NewCard("DNS Server", "", container.NewVBox(
		g.dnsSelect,
		container.NewHBox(addBtn, deleteBtn, layout.NewSpacer(), g.setBtn),
	))

	g.autostartCheck = widget.NewCheck("Start on login", nil)
	g.autostartCheck.Checked = g.config.Autostart || system.IsAutostartEnabled()
	g.autostartCheck.OnChanged = g.onAutostartChanged

	settingsCard := widget.NewCard("Settings", "", g.autostartCheck)

	content := container.NewVBox(
		statusCard,
		dnsCard,
		layout.NewSpacer(),
		settingsCard,
	)

	go g.refreshStatus()

	return container.NewPadded(content)
}

// SetupSystemTray configures the system tray icon and menu
func (g *GUI) SetupSystemTray(desk desktop.App) {
	g.desk = desk
	desk.SetSystemTrayIcon(AppIcon())
	g.refreshTray()
	g.log.Debug().Msg("System tray setup complete")
}

// refreshTray rebuilds the tray menu from the current options.
func (g *GUI) refreshTray() {
	if g.desk == nil {
		return
	}

	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Show", func() {
			g.window.Show()
		}),
		fyne.NewMenuItemSeparator(),
	}
	for i, e := range g.core.Options() {
		i := i
		items = append(items, fyne.NewMenuItem(e.Title, func() {
			g.dnsSelect.SetSelectedIndex(i)
			g.applySelected()
		}))
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			g.app.Quit()
		}),
	)

	g.desk.SetSystemTrayMenu(fyne.NewMenu("DNS Changer", items...))
}

// refreshOptions reloads the dropdown and selects index.
func (g *GUI) refreshOptions(index int) {
	options := g.core.Options()
	labels := make([]string, len(options))
	for i, e := range options {
		labels[i] = e.String()
	}
	g.dnsSelect.Options = labels
	if index >= len(labels) {
		index = len(labels) - 1
	}
	g.dnsSelect.SetSelectedIndex(index)
	g.dnsSelect.Refresh()
	g.refreshTray()
}

// refreshStatus updates the current DNS and adapter labels
func (g *GUI) refreshStatus() {
	ctx := context.Background()

	adapter, err := g.core.ActiveAdapter(ctx)
	switch {
	case err != nil:
		g.log.Warn().Err(err).Msg("Failed to query adapters")
		g.adapterLabel.SetText("Adapter: unavailable")
	case adapter == "":
		g.adapterLabel.SetText("Adapter: none connected")
	default:
		g.adapterLabel.SetText("Adapter: " + adapter)
	}

	g.currentLabel.SetText("Current DNS is: " + g.core.CurrentDNS(ctx))
}

// applySelected applies the selected entry to the active adapter
func (g *GUI) applySelected() {
	index := g.dnsSelect.SelectedIndex()
	if index < 0 {
		dialog.ShowInformation("Error", "Please select a DNS server.", g.window)
		return
	}
	title := g.core.Options()[index].Title

	g.setBtn.Disable()
	go func() {
		defer g.setBtn.Enable()

		current, err := g.core.Apply(context.Background(), index)
		if err != nil {
			g.log.Error().Err(err).Str("title", title).Msg("Set DNS failed")
			if errors.Is(err, system.ErrNoAdapter) {
				dialog.ShowError(errors.New("No active network adapter found."), g.window)
				return
			}
			dialog.ShowError(fmt.Errorf("Failed to set DNS: %v", err), g.window)
			return
		}

		g.currentLabel.SetText("Current DNS is: " + current)
		dialog.ShowInformation("DNS Set Successfully", "DNS Updated: "+title, g.window)
	}()
}

// deleteSelected removes the selected entry after confirmation
func (g *GUI) deleteSelected() {
	index := g.dnsSelect.SelectedIndex()
	if index < 0 {
		return
	}
	if index == 0 {
		dialog.ShowError(core.ErrAutomaticProtected, g.window)
		return
	}

	entry := g.core.Options()[index]
	dialog.ShowConfirm("Confirm Deletion",
		fmt.Sprintf("Are you sure you want to delete '%s'?", entry.Title),
		func(ok bool) {
			if !ok {
				return
			}
			err := g.core.Delete(index, nil)
			if err != nil {
				dialog.ShowError(err, g.window)
				return
			}
			g.refreshOptions(index)
		}, g.window)
}

// showAddDialog asks for a new entry. Invalid input is reported and the form
// reopened with what was typed.
func (g *GUI) showAddDialog(prefill store.Entry) {
	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("My DNS")
	titleEntry.SetText(prefill.Title)

	primaryEntry := widget.NewEntry()
	primaryEntry.SetPlaceHolder("1.1.1.1")
	primaryEntry.SetText(prefill.PrimaryDns)

	secondaryEntry := widget.NewEntry()
	secondaryEntry.SetPlaceHolder("1.0.0.1")
	secondaryEntry.SetText(prefill.SecondaryDns)

	items := []*widget.FormItem{
		widget.NewFormItem("Title", titleEntry),
		widget.NewFormItem("Primary DNS", primaryEntry),
		widget.NewFormItem("Secondary DNS", secondaryEntry),
	}

	dialog.ShowForm("Add DNS", "Save", "Cancel", items, func(save bool) {
		if !save {
			return
		}
		entry := store.Entry{
			Title:        titleEntry.Text,
			PrimaryDns:   primaryEntry.Text,
			SecondaryDns: secondaryEntry.Text,
		}
		if err := g.core.Add(entry); err != nil {
			d := dialog.NewError(err, g.window)
			d.SetOnClosed(func() { g.showAddDialog(entry) })
			d.Show()
			return
		}
		g.refreshOptions(len(g.core.Options()) - 1)
	}, g.window)
}

// onAutostartChanged handles autostart checkbox changes
func (g *GUI) onAutostartChanged(checked bool) {
	if err := system.SetAutostart(checked); err != nil {
		g.log.Error().Err(err).Msg("Failed to change autostart")
		dialog.ShowError(err, g.window)
		return
	}
	g.config.Autostart = checked
	if err := config.Save(g.config); err != nil {
		g.log.Warn().Err(err).Msg("Failed to save settings")
		if errors.Is(err, config.ErrFallback) {
			dialog.ShowInformation("Settings not saved",
				"The settings file could not be read, so it was left unchanged.", g.window)
		}
	}
}
