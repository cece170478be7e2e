package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pwm/internal/keymanager"
)

// QuitConfirmDialog asks before closing the main window
type QuitConfirmDialog struct {
	keyManager *keymanager.KeyManager
	debugPrint func(format string, args ...interface{})
	dialog     dialog.Dialog
	callback   func(bool)
	parent     fyne.Window
	closed     bool // Prevent double-close/pop
	sink       *KeySink
}

// NewQuitConfirmDialog creates a new quit confirmation dialog
func NewQuitConfirmDialog(keyManager *keymanager.KeyManager, debugPrint func(format string, args ...interface{})) *QuitConfirmDialog {
	return &QuitConfirmDialog{
		keyManager: keyManager,
		debugPrint: debugPrint,
	}
}

// ShowDialog shows the quit confirmation dialog
func (qcd *QuitConfirmDialog) ShowDialog(parent fyne.Window, callback func(bool)) {
	qcd.callback = callback
	qcd.parent = parent

	qcd.keyManager.PushHandler(keymanager.NewQuitConfirmDialogKeyHandler(qcd, qcd.debugPrint))

	message := widget.NewLabel("Exit the password manager?")
	message.Alignment = fyne.TextAlignCenter

	qcd.sink = NewKeySink(message, qcd.keyManager)

	qcd.dialog = dialog.NewCustomConfirm(
		"Exit",
		"Yes",
		"No",
		qcd.sink,
		func(confirmed bool) { qcd.finish(confirmed, false) },
		parent,
	)
	qcd.dialog.Show()

	// Focus the sink so Y/N reach the key handler
	parent.Canvas().Focus(qcd.sink)
}

// ConfirmQuit confirms the quit action
func (qcd *QuitConfirmDialog) ConfirmQuit() {
	qcd.finish(true, true)
}

// CancelQuit cancels the quit action
func (qcd *QuitConfirmDialog) CancelQuit() {
	qcd.finish(false, true)
}

func (qcd *QuitConfirmDialog) finish(confirmed, hide bool) {
	if qcd.closed {
		return
	}
	qcd.closed = true
	qcd.debugPrint("QuitConfirmDialog: confirmed=%t", confirmed)

	qcd.keyManager.PopHandler()
	if hide && qcd.dialog != nil {
		qcd.dialog.Hide()
	}
	if qcd.callback != nil {
		qcd.callback(confirmed)
	}
}
