package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pwm/internal/backup"
	"pwm/internal/config"
	"pwm/internal/constants"
	apperrors "pwm/internal/errors"
	"pwm/internal/keymanager"
	"pwm/internal/store"
	"pwm/internal/ui"
	"pwm/internal/watcher"
)

// PasswordManager is the main window
type PasswordManager struct {
	app           fyne.App
	window        fyne.Window
	store         *store.Store
	config        *config.Config
	configManager config.ManagerInterface
	backups       *backup.Manager

	state       ui.ViewState
	serviceList *widget.List
	listView    *ui.KeySink
	details     *fyne.Container
	statusLabel *widget.Label
	search      *ui.ServiceSearchOverlay
	syncing     bool // Set while the list selection is updated from state

	keyManager   *keymanager.KeyManager
	storeWatcher *watcher.StoreWatcher
}

// NewPasswordManager builds the main window for env
func NewPasswordManager(app fyne.App, env *environment) *PasswordManager {
	pm := &PasswordManager{
		app:           app,
		window:        app.NewWindow(constants.ApplicationTitle),
		store:         env.store,
		config:        env.config,
		configManager: env.configManager,
		backups:       env.backups(),
		keyManager:    keymanager.NewKeyManager(debugPrint),
	}

	pm.keyManager.PushHandler(keymanager.NewMainScreenKeyHandler(pm, debugPrint))

	pm.setupUI()
	pm.render()
	pm.startWatcher()

	return pm
}

func (pm *PasswordManager) setupUI() {
	pm.serviceList = widget.NewList(
		func() int { return len(pm.state.Services) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.AccountIcon()), widget.NewLabel("service"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(pm.state.Services) {
				return
			}
			row := obj.(*fyne.Container)
			row.Objects[1].(*widget.Label).SetText(pm.state.Services[id])
		},
	)
	pm.serviceList.OnSelected = func(id widget.ListItemID) {
		if pm.syncing {
			return
		}
		pm.selectService(id)
		pm.window.Canvas().Focus(pm.listView)
	}

	// Route list keys through the KeyManager so Up/Down drive the cursor.
	// Tab stays with the sink so the service search can cycle matches.
	pm.listView = ui.NewKeySink(pm.serviceList, pm.keyManager, ui.WithTabCapture(true))

	pm.statusLabel = widget.NewLabel("")
	pm.statusLabel.TextStyle.Italic = true

	pm.search = ui.NewServiceSearchOverlay(func(service string) {
		if idx := pm.state.IndexOf(service); idx >= 0 {
			pm.serviceList.ScrollTo(idx)
		}
	}, debugPrint)

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Services", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewVBox(pm.search.GetContainer(), pm.statusLabel), nil, nil,
		pm.listView,
	)

	pm.details = container.NewStack()

	split := container.NewHSplit(listPanel, container.NewPadded(pm.details))
	split.SetOffset(float64(constants.ServiceListWidth) / float64(pm.config.Window.Width))

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			pm.Refresh()
			pm.window.Canvas().Focus(pm.listView)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), pm.CreateBackup),
		widget.NewToolbarAction(theme.HistoryIcon(), pm.ShowRestoreDialog),
	)

	bottomBar := container.NewGridWithColumns(4,
		widget.NewButtonWithIcon("Add Password", theme.ContentAddIcon(), pm.ShowAddDialog),
		widget.NewButtonWithIcon("Delete Password", theme.DeleteIcon(), pm.ShowDeleteDialog),
		widget.NewButtonWithIcon("Filter", theme.SearchIcon(), pm.ShowFilterDialog),
		widget.NewButtonWithIcon("Exit", theme.LogoutIcon(), pm.ShowQuitDialog),
	)

	content := container.NewBorder(
		container.NewVBox(ui.NewHeader(constants.ApplicationTitle), toolbar),
		bottomBar, nil, nil,
		split,
	)

	pm.window.SetContent(content)
	pm.window.Resize(fyne.NewSize(float32(pm.config.Window.Width), float32(pm.config.Window.Height)))
	pm.window.Canvas().Focus(pm.listView)

	pm.window.SetCloseIntercept(func() {
		debugPrint("Window close intercepted")
		pm.shutdown()
		pm.window.Close()
	})

	// Setup keyboard handling via KeyManager
	if dc, ok := (pm.window.Canvas()).(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			pm.keyManager.HandleKeyDown(ev)
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			pm.keyManager.HandleKeyUp(ev)
		})
	}
	pm.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		pm.keyManager.HandleTypedKey(ev)
	})
	pm.window.Canvas().SetOnTypedRune(func(r rune) {
		pm.keyManager.HandleTypedRune(r)
	})
}

// startWatcher reloads the view when the credentials file changes on disk
func (pm *PasswordManager) startWatcher() {
	if err := os.MkdirAll(filepath.Dir(pm.store.Path()), 0o700); err != nil {
		slog.Warn("cannot create store directory, external changes will not be noticed",
			"path", pm.store.Path(), "error", err)
		return
	}

	pm.storeWatcher = watcher.NewStoreWatcher(
		pm.store.Path(),
		constants.WatcherDebounce,
		fyne.Do,
		func() {
			debugPrint("Store changed on disk, reloading")
			pm.render()
		},
		debugPrint,
	)
	if err := pm.storeWatcher.Start(); err != nil {
		slog.Warn("store watcher not started", "error", err)
		pm.storeWatcher = nil
	}
}

func (pm *PasswordManager) shutdown() {
	if pm.storeWatcher != nil {
		debugPrint("Stopping StoreWatcher...")
		pm.storeWatcher.Stop()
	}
}

// render rebuilds the view state from the store and redraws both panels
func (pm *PasswordManager) render() {
	pm.renderSelected(pm.state.Selected)
}

func (pm *PasswordManager) renderSelected(selected string) {
	state, err := ui.BuildViewState(pm.store, selected, pm.config.UI.ServiceFilter.Current, pm.config.UI.Masked())
	if err != nil {
		slog.Warn("invalid service filter ignored", "pattern", pm.config.UI.ServiceFilter.Current, "error", err)
	}
	pm.state = state

	pm.syncing = true
	pm.serviceList.Refresh()
	if idx := state.IndexOf(state.Selected); idx >= 0 {
		pm.serviceList.Select(idx)
	} else {
		pm.serviceList.UnselectAll()
	}
	pm.syncing = false

	pm.details.Objects = []fyne.CanvasObject{
		ui.RenderDetails(state, ui.DetailActions{Copy: pm.copyToClipboard}),
	}
	pm.details.Refresh()

	if state.Filter != "" {
		pm.statusLabel.SetText(fmt.Sprintf("%d of %d (filter: %s)", len(state.Services), state.Total, state.Filter))
	} else {
		pm.statusLabel.SetText(fmt.Sprintf("%d services", state.Total))
	}
}

// selectService shows the accounts of the service at index
func (pm *PasswordManager) selectService(index int) {
	if index < 0 || index >= len(pm.state.Services) {
		return
	}
	service := pm.state.Services[index]
	debugPrint("Selected service: %s", service)

	pm.renderSelected(service)
	if len(pm.state.Accounts) == 0 {
		ui.ShowMessageDialog(pm.window, "Info", "No passwords found for this service.")
	}
}

func (pm *PasswordManager) copyToClipboard(label, value string) {
	pm.app.Clipboard().SetContent(value)
	debugPrint("Copied %s to clipboard", label)
	ui.ShowMessageDialog(pm.window, "Copied", label+" copied to clipboard.")
}

// Interface implementation for keymanager.PasswordManagerInterface

func (pm *PasswordManager) GetCursorIndex() int {
	return pm.state.IndexOf(pm.state.Selected)
}

func (pm *PasswordManager) SetCursorByIndex(index int) {
	if index == pm.GetCursorIndex() {
		return
	}
	pm.selectService(index)
	pm.serviceList.ScrollTo(index)
}

func (pm *PasswordManager) GetServiceCount() int {
	return len(pm.state.Services)
}

// Refresh reloads the store from disk
func (pm *PasswordManager) Refresh() {
	pm.render()
}

// ShowAddDialog opens the Add Password form, preset to the selected service
func (pm *PasswordManager) ShowAddDialog() {
	ui.ShowAddAccountDialog(pm.window, pm.keyManager, pm.store.Services(), pm.state.Selected, func(in ui.AccountInput) {
		pm.store.AddAccount(in.Service, in.Username, in.Password)
		slog.Info("account added", "service", in.Service, "username", in.Username)
		pm.renderSelected(in.Service)
		ui.ShowMessageDialog(pm.window, "Success", "Password added!")
		pm.window.Canvas().Focus(pm.listView)
	})
}

// ShowDeleteDialog asks which account to delete
func (pm *PasswordManager) ShowDeleteDialog() {
	ui.ShowDeleteAccountDialog(pm.window, pm.keyManager, pm.store.Services(), pm.state.Selected, pm.deleteAccount)
}

func (pm *PasswordManager) deleteAccount(service, username string) {
	removed := pm.store.DeleteAccount(service, username)
	if removed == 0 {
		ui.ShowMessageDialog(pm.window, "Info", "No passwords found for this service.")
		return
	}
	slog.Info("account deleted", "service", service, "username", username, "removed", removed)
	pm.render()
	ui.ShowMessageDialog(pm.window, "Success", "Password deleted!")
	pm.window.Canvas().Focus(pm.listView)
}

// ShowFilterDialog lets the user narrow the service list
func (pm *PasswordManager) ShowFilterDialog() {
	fd := ui.NewFilterDialog(pm.config.RankedFilters(), pm.store.Services(), pm.keyManager, debugPrint)
	fd.ShowDialog(pm.window, pm.config.UI.ServiceFilter.Current, func(pattern string) {
		pm.config.RememberFilter(pattern)
		if err := pm.configManager.Save(pm.config); err != nil {
			slog.Warn("filter history not saved", "error", err)
		}
		pm.render()
		pm.window.Canvas().Focus(pm.listView)
	})
}

// ShowQuitDialog asks for confirmation before closing
func (pm *PasswordManager) ShowQuitDialog() {
	qd := ui.NewQuitConfirmDialog(pm.keyManager, debugPrint)
	qd.ShowDialog(pm.window, func(confirmed bool) {
		if !confirmed {
			pm.window.Canvas().Focus(pm.listView)
			return
		}
		pm.shutdown()
		pm.app.Quit()
	})
}

// CopySelectedPassword copies the password of the first account of the
// selected service
func (pm *PasswordManager) CopySelectedPassword() {
	if len(pm.state.Accounts) == 0 {
		ui.ShowErrorDialog(pm.window, apperrors.NewUIError("copy", "select a service with at least one account", nil))
		return
	}
	pm.copyToClipboard("Password", pm.state.Accounts[0].Password)
}

// StartServiceSearch opens the type-to-find bar over the visible services
func (pm *PasswordManager) StartServiceSearch() {
	if pm.search.IsVisible() {
		return
	}
	pm.search.Show(pm.state.Services)
	pm.keyManager.PushHandler(keymanager.NewServiceSearchKeyHandler(pm, debugPrint))
	pm.window.Canvas().Focus(pm.listView)
}

// Interface implementation for keymanager.ServiceSearchInterface

func (pm *PasswordManager) AddSearchCharacter(r rune) {
	pm.search.AddCharacter(r)
}

func (pm *PasswordManager) RemoveLastSearchCharacter() {
	pm.search.RemoveLastCharacter()
}

func (pm *PasswordManager) NextSearchMatch() {
	pm.search.NextMatch()
}

func (pm *PasswordManager) PreviousSearchMatch() {
	pm.search.PreviousMatch()
}

func (pm *PasswordManager) AcceptSearch() {
	service := pm.endSearch()
	if idx := pm.state.IndexOf(service); idx >= 0 {
		pm.SetCursorByIndex(idx)
	}
}

func (pm *PasswordManager) CancelSearch() {
	pm.endSearch()
	if idx := pm.GetCursorIndex(); idx >= 0 {
		pm.serviceList.ScrollTo(idx)
	}
}

func (pm *PasswordManager) endSearch() string {
	pm.keyManager.PopHandler()
	return pm.search.Hide()
}

// CreateBackup archives the credentials file into the backup directory
func (pm *PasswordManager) CreateBackup() {
	path, err := pm.backups.Create(context.Background(), pm.store.Path())
	if err != nil {
		slog.Error("backup failed", "error", err)
		ui.ShowErrorDialog(pm.window, err)
		return
	}
	slog.Info("backup created", "path", path)
	ui.ShowMessageDialog(pm.window, "Backup", "Backup written to "+path)
}

// ShowRestoreDialog replaces the store with the contents of a chosen backup
func (pm *PasswordManager) ShowRestoreDialog() {
	archives, err := pm.backups.List()
	if err != nil {
		ui.ShowErrorDialog(pm.window, err)
		return
	}
	if len(archives) == 0 {
		ui.ShowMessageDialog(pm.window, "Restore", "No backups found in "+pm.backups.Dir())
		return
	}

	ui.ShowRestoreDialog(pm.window, pm.keyManager, archives, func(path string) {
		creds, err := backup.Restore(context.Background(), path, pm.store)
		if err != nil {
			slog.Error("restore failed", "archive", path, "error", err)
			ui.ShowErrorDialog(pm.window, err)
			return
		}
		slog.Info("backup restored", "archive", path, "services", len(creds))
		pm.render()
		ui.ShowMessageDialog(pm.window, "Restore", fmt.Sprintf("Restored %d services.", len(creds)))
	})
}
