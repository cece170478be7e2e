package ui

import (
	"fyne.io/fyne/v2/dialog"

	"pwm/internal/keymanager"
)

// trackModal blocks main screen shortcuts until d closes.
func trackModal(km *keymanager.KeyManager, name string, d dialog.Dialog) {
	if km == nil {
		return
	}
	km.PushHandler(keymanager.NewModalKeyHandler(name))
	d.SetOnClosed(func() { km.PopHandler() })
}
