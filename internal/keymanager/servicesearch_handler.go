package keymanager

import (
	"unicode"

	"fyne.io/fyne/v2"
)

// ServiceSearchInterface defines the interface needed by ServiceSearchKeyHandler
type ServiceSearchInterface interface {
	AddSearchCharacter(r rune)
	RemoveLastSearchCharacter()
	NextSearchMatch()
	PreviousSearchMatch()
	AcceptSearch()
	CancelSearch()
}

// ServiceSearchKeyHandler handles keyboard events while the service search is open
type ServiceSearchKeyHandler struct {
	search     ServiceSearchInterface
	debugPrint func(format string, args ...interface{})
}

// NewServiceSearchKeyHandler creates a new service search key handler
func NewServiceSearchKeyHandler(search ServiceSearchInterface, debugPrint func(format string, args ...interface{})) *ServiceSearchKeyHandler {
	return &ServiceSearchKeyHandler{
		search:     search,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (sh *ServiceSearchKeyHandler) GetName() string {
	return "ServiceSearch"
}

// OnKeyDown swallows key presses so main screen shortcuts stay inactive
func (sh *ServiceSearchKeyHandler) OnKeyDown(ev *fyne.KeyEvent) bool {
	return true
}

// OnKeyUp swallows key releases
func (sh *ServiceSearchKeyHandler) OnKeyUp(ev *fyne.KeyEvent) bool {
	return true
}

// OnTypedKey handles navigation and termination of the search
func (sh *ServiceSearchKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	sh.debugPrint("ServiceSearchKeyHandler: OnTypedKey %v", ev.Name)

	switch ev.Name {
	case fyne.KeyEscape:
		sh.search.CancelSearch()
	case fyne.KeyReturn, fyne.KeyEnter:
		sh.search.AcceptSearch()
	case fyne.KeyBackspace:
		sh.search.RemoveLastSearchCharacter()
	case fyne.KeyUp:
		sh.search.PreviousSearchMatch()
	case fyne.KeyDown, fyne.KeyTab:
		sh.search.NextSearchMatch()
	}
	return true
}

// OnTypedRune extends the search term with printable characters
func (sh *ServiceSearchKeyHandler) OnTypedRune(r rune) bool {
	if unicode.IsPrint(r) && !unicode.IsControl(r) {
		sh.search.AddSearchCharacter(r)
	}
	return true
}
