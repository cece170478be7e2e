package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"pwm/internal/keymanager"
)

// KeySink is a focusable wrapper that forwards every key event to a
// KeyManager, so the handler on top of the stack sees keys regardless of
// which child widget was clicked last.
type KeySink struct {
	widget.BaseWidget
	Content   fyne.CanvasObject
	km        *keymanager.KeyManager
	acceptTab bool
}

// KeySinkOption customizes KeySink behavior.
type KeySinkOption func(*KeySink)

// WithTabCapture toggles Tab key capture for focus traversal suppression.
func WithTabCapture(on bool) KeySinkOption {
	return func(k *KeySink) { k.acceptTab = on }
}

// NewKeySink wraps content. Tab is not captured unless requested.
func NewKeySink(content fyne.CanvasObject, km *keymanager.KeyManager, opts ...KeySinkOption) *KeySink {
	k := &KeySink{Content: content, km: km}
	for _, o := range opts {
		o(k)
	}
	k.ExtendBaseWidget(k)
	return k
}

func (k *KeySink) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(k.Content)
}

func (k *KeySink) FocusGained() {}
func (k *KeySink) FocusLost()   {}

func (k *KeySink) TypedKey(ev *fyne.KeyEvent) {
	if k.km != nil {
		k.km.HandleTypedKey(ev)
	}
}

func (k *KeySink) TypedRune(r rune) {
	if k.km != nil {
		k.km.HandleTypedRune(r)
	}
}

func (k *KeySink) KeyDown(ev *fyne.KeyEvent) {
	if k.km != nil {
		k.km.HandleKeyDown(ev)
	}
}

func (k *KeySink) KeyUp(ev *fyne.KeyEvent) {
	if k.km != nil {
		k.km.HandleKeyUp(ev)
	}
}

// AcceptsTab implements fyne.Tabbable.
func (k *KeySink) AcceptsTab() bool { return k.acceptTab }
