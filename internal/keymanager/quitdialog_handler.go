package keymanager

import (
	"fyne.io/fyne/v2"
)

// QuitDialogInterface defines the interface needed by QuitConfirmDialogKeyHandler
type QuitDialogInterface interface {
	ConfirmQuit()
	CancelQuit()
}

// QuitConfirmDialogKeyHandler handles keyboard events for the quit confirmation dialog
type QuitConfirmDialogKeyHandler struct {
	quitDialog QuitDialogInterface
	debugPrint func(format string, args ...interface{})
}

// NewQuitConfirmDialogKeyHandler creates a new quit confirmation dialog key handler
func NewQuitConfirmDialogKeyHandler(qd QuitDialogInterface, debugPrint func(format string, args ...interface{})) *QuitConfirmDialogKeyHandler {
	return &QuitConfirmDialogKeyHandler{
		quitDialog: qd,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (qh *QuitConfirmDialogKeyHandler) GetName() string {
	return "QuitConfirmDialog"
}

// OnKeyDown consumes key presses so they never reach the main screen
func (qh *QuitConfirmDialogKeyHandler) OnKeyDown(ev *fyne.KeyEvent) bool {
	return true
}

// OnKeyUp consumes key releases so they never reach the main screen
func (qh *QuitConfirmDialogKeyHandler) OnKeyUp(ev *fyne.KeyEvent) bool {
	return true
}

// OnTypedKey handles typed key events
func (qh *QuitConfirmDialogKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	switch ev.Name {
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeyY:
		qh.debugPrint("QuitConfirmDialog: confirming quit")
		qh.quitDialog.ConfirmQuit()

	case fyne.KeyEscape, fyne.KeyN:
		qh.debugPrint("QuitConfirmDialog: cancelling quit")
		qh.quitDialog.CancelQuit()

	default:
		qh.debugPrint("QuitConfirmDialog: Consuming key event: %s", ev.Name)
	}
	return true
}

// OnTypedRune consumes text input
func (qh *QuitConfirmDialogKeyHandler) OnTypedRune(r rune) bool {
	return true
}
