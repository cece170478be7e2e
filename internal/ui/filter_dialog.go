package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pwm/internal/config"
	"pwm/internal/constants"
	"pwm/internal/filter"
	"pwm/internal/keymanager"
)

// FilterDialog lets the user pick or type a service filter pattern
type FilterDialog struct {
	searchEntry  *widget.Entry
	historyList  *widget.List
	previewLabel *widget.Label
	entries      []config.FilterEntry
	services     []string
	dataBinding  binding.StringList
	keyManager   *keymanager.KeyManager
	debugPrint   func(format string, args ...interface{})
}

// NewFilterDialog creates a filter dialog over the given history and services
func NewFilterDialog(
	entries []config.FilterEntry,
	services []string,
	keyManager *keymanager.KeyManager,
	debugPrint func(format string, args ...interface{}),
) *FilterDialog {
	fd := &FilterDialog{
		entries:    entries,
		services:   services,
		keyManager: keyManager,
		debugPrint: debugPrint,
	}
	fd.createWidgets()
	return fd
}

func (fd *FilterDialog) createWidgets() {
	fd.searchEntry = widget.NewEntry()
	fd.searchEntry.SetPlaceHolder("Substring or glob (e.g. git*, {e,g}mail)")
	fd.searchEntry.OnChanged = fd.updatePreview

	fd.previewLabel = widget.NewLabel("")
	fd.previewLabel.TextStyle.Italic = true

	display := make([]string, len(fd.entries))
	for i, e := range fd.entries {
		display[i] = fmt.Sprintf("%s (used %d times)", e.Pattern, e.UseCount)
	}
	fd.dataBinding = binding.NewStringList()
	_ = fd.dataBinding.Set(display)

	fd.historyList = widget.NewListWithData(
		fd.dataBinding,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, obj fyne.CanvasObject) {
			str, _ := item.(binding.String).Get()
			obj.(*widget.Label).SetText(str)
		},
	)
	fd.historyList.OnSelected = func(id widget.ListItemID) {
		if id < len(fd.entries) {
			fd.searchEntry.SetText(fd.entries[id].Pattern)
		}
	}
}

// updatePreview shows how many services the pattern keeps
func (fd *FilterDialog) updatePreview(pattern string) {
	if pattern == "" {
		fd.previewLabel.SetText(fmt.Sprintf("All %d services shown", len(fd.services)))
		return
	}
	matched, err := filter.Apply(fd.services, pattern)
	if err != nil {
		fd.previewLabel.SetText("Invalid pattern")
		return
	}
	fd.previewLabel.SetText(fmt.Sprintf("Matches: %d of %d services", len(matched), len(fd.services)))
}

// ShowDialog shows the dialog. callback receives the chosen pattern; an empty
// pattern clears the filter. Cancelling does not call callback.
func (fd *FilterDialog) ShowDialog(parent fyne.Window, current string, callback func(pattern string)) {
	fd.searchEntry.SetText(current)
	fd.updatePreview(current)

	listScroll := container.NewVScroll(fd.historyList)
	listScroll.SetMinSize(fyne.NewSize(constants.FilterDialogWidth-40, constants.FilterDialogHeight-160))

	content := container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, widget.NewLabel("Pattern:"), nil, fd.searchEntry),
			fd.previewLabel,
			widget.NewLabelWithStyle("History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		nil, nil, nil,
		listScroll,
	)

	d := dialog.NewCustomConfirm("Filter Services", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			fd.debugPrint("FilterDialog: cancelled")
			return
		}
		pattern := fd.searchEntry.Text
		if err := filter.Validate(pattern); err != nil {
			ShowErrorDialog(parent, fmt.Errorf("invalid filter pattern %q: %w", pattern, err))
			return
		}
		fd.debugPrint("FilterDialog: applying %q", pattern)
		callback(pattern)
	}, parent)

	trackModal(fd.keyManager, "FilterDialog", d)
	d.Resize(fyne.NewSize(constants.FilterDialogWidth, constants.FilterDialogHeight))
	d.Show()
	parent.Canvas().Focus(fd.searchEntry)
}
