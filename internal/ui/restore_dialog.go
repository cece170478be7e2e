package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pwm/internal/keymanager"
)

// ShowRestoreDialog lets the user pick one of archives (newest first) to
// restore. onRestore receives the full archive path after a second
// confirmation, since restoring replaces every stored credential.
func ShowRestoreDialog(parent fyne.Window, km *keymanager.KeyManager, archives []string, onRestore func(path string)) {
	if len(archives) == 0 {
		ShowMessageDialog(parent, "Restore", "No backups found.")
		return
	}

	byName := make(map[string]string, len(archives))
	names := make([]string, 0, len(archives))
	for _, a := range archives {
		name := filepath.Base(a)
		byName[name] = a
		names = append(names, name)
	}

	picker := widget.NewSelect(names, nil)
	picker.SetSelectedIndex(0)

	d := dialog.NewForm("Restore Backup", "Restore", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Archive", picker)},
		func(ok bool) {
			if !ok || picker.Selected == "" {
				return
			}
			path := byName[picker.Selected]
			confirm := dialog.NewConfirm("Restore Backup",
				"Replace all stored passwords with the contents of "+picker.Selected+"?",
				func(yes bool) {
					if yes {
						onRestore(path)
					}
				}, parent)
			trackModal(km, "RestoreConfirm", confirm)
			confirm.Show()
		}, parent)
	trackModal(km, "RestoreDialog", d)
	d.Show()
}
