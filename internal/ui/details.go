package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pwm/internal/constants"
)

// DetailActions are the callbacks a details panel can trigger.
type DetailActions struct {
	Copy func(label, value string)
}

// RenderDetails builds the details panel for state.
func RenderDetails(state ViewState, actions DetailActions) fyne.CanvasObject {
	if state.Selected == "" {
		hint := widget.NewLabel("Select a service to see its accounts")
		hint.Alignment = fyne.TextAlignCenter
		return container.NewCenter(hint)
	}

	title := widget.NewLabelWithStyle("Details for "+state.Selected, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	rows := container.NewVBox()
	for _, acc := range state.Accounts {
		username, password := acc.Username, acc.Password

		userLabel := widget.NewLabel("Username: " + username)
		passLabel := widget.NewLabelWithStyle("Password: "+state.DisplayPassword(acc), fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})

		copyUser := widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), func() {
			if actions.Copy != nil {
				actions.Copy("Username", username)
			}
		})
		copyPass := widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), func() {
			if actions.Copy != nil {
				actions.Copy("Password", password)
			}
		})
		copyPass.Importance = widget.HighImportance

		row := container.NewHBox(userLabel, copyUser, passLabel, copyPass)
		rows.Add(widget.NewCard("", "", row))
	}

	count := widget.NewLabel(fmt.Sprintf("%d account(s)", len(state.Accounts)))
	return container.NewBorder(title, count, nil, nil, container.NewVScroll(rows))
}

// NewHeader creates the title bar shown above the panels.
func NewHeader(title string) fyne.CanvasObject {
	bg := canvas.NewRectangle(rgba(constants.HeaderBackgroundColor))
	text := canvas.NewText(title, rgba(constants.HeaderTextColor))
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.TextSize = theme.TextHeadingSize()
	text.Alignment = fyne.TextAlignCenter
	return container.NewStack(bg, container.NewPadded(text))
}

func rgba(c [4]uint8) color.Color {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}
