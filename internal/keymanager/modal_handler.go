package keymanager

import (
	"fyne.io/fyne/v2"
)

// ModalKeyHandler swallows window-level key input while a dialog with its
// own focused widgets is open, so main screen shortcuts cannot fire behind it.
type ModalKeyHandler struct {
	name string
}

func NewModalKeyHandler(name string) *ModalKeyHandler { return &ModalKeyHandler{name: name} }

func (m *ModalKeyHandler) GetName() string { return m.name }

func (m *ModalKeyHandler) OnKeyDown(_ *fyne.KeyEvent) bool  { return true }
func (m *ModalKeyHandler) OnKeyUp(_ *fyne.KeyEvent) bool    { return true }
func (m *ModalKeyHandler) OnTypedKey(_ *fyne.KeyEvent) bool { return true }
func (m *ModalKeyHandler) OnTypedRune(_ rune) bool          { return true }
