package keymanager

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// PasswordManagerInterface defines the interface needed by MainScreenKeyHandler
type PasswordManagerInterface interface {
	// Service cursor
	GetCursorIndex() int
	SetCursorByIndex(index int)
	GetServiceCount() int

	// Commands
	ShowAddDialog()
	ShowDeleteDialog()
	ShowFilterDialog()
	ShowQuitDialog()
	CopySelectedPassword()
	StartServiceSearch()
	Refresh()
}

// MainScreenKeyHandler handles keyboard events for the main window
type MainScreenKeyHandler struct {
	pm          PasswordManagerInterface
	ctrlPressed bool
	debugPrint  func(format string, args ...interface{})
}

// NewMainScreenKeyHandler creates a new main screen key handler
func NewMainScreenKeyHandler(pm PasswordManagerInterface, debugPrint func(format string, args ...interface{})) *MainScreenKeyHandler {
	return &MainScreenKeyHandler{
		pm:         pm,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (mh *MainScreenKeyHandler) GetName() string {
	return "MainScreen"
}

// OnKeyDown handles modifier tracking and Ctrl shortcuts
func (mh *MainScreenKeyHandler) OnKeyDown(ev *fyne.KeyEvent) bool {
	switch ev.Name {
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
		mh.ctrlPressed = true
		return true
	}

	if !mh.ctrlPressed {
		return false
	}

	switch ev.Name {
	case fyne.KeyN:
		mh.pm.ShowAddDialog()
	case fyne.KeyD:
		mh.pm.ShowDeleteDialog()
	case fyne.KeyF:
		mh.pm.ShowFilterDialog()
	case fyne.KeyQ:
		mh.pm.ShowQuitDialog()
	case fyne.KeyC:
		mh.pm.CopySelectedPassword()
	case fyne.KeyR:
		mh.pm.Refresh()
	default:
		return false
	}
	mh.debugPrint("MainScreen: Ctrl+%s", ev.Name)
	return true
}

// OnKeyUp handles modifier release
func (mh *MainScreenKeyHandler) OnKeyUp(ev *fyne.KeyEvent) bool {
	switch ev.Name {
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
		mh.ctrlPressed = false
		return true
	}
	return false
}

// OnTypedKey moves the service cursor
func (mh *MainScreenKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	count := mh.pm.GetServiceCount()
	if count == 0 {
		return false
	}
	current := mh.pm.GetCursorIndex()

	switch ev.Name {
	case fyne.KeyUp:
		if current > 0 {
			mh.pm.SetCursorByIndex(current - 1)
		} else if current < 0 {
			mh.pm.SetCursorByIndex(0)
		}
	case fyne.KeyDown:
		if current < count-1 {
			mh.pm.SetCursorByIndex(current + 1)
		}
	case fyne.KeyHome:
		mh.pm.SetCursorByIndex(0)
	case fyne.KeyEnd:
		mh.pm.SetCursorByIndex(count - 1)
	case fyne.KeyDelete:
		mh.pm.ShowDeleteDialog()
	default:
		return false
	}
	return true
}

// OnTypedRune opens the service search on '/'
func (mh *MainScreenKeyHandler) OnTypedRune(r rune) bool {
	if r == '/' && mh.pm.GetServiceCount() > 0 {
		mh.pm.StartServiceSearch()
		return true
	}
	return false
}
