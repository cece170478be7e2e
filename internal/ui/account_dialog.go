package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pwm/internal/constants"
	"pwm/internal/keymanager"
)

// ShowAddAccountDialog opens the Add Password form. onSubmit runs only for
// complete input; otherwise an error is shown and the form stays open.
func ShowAddAccountDialog(parent fyne.Window, km *keymanager.KeyManager, services []string, preset string, onSubmit func(AccountInput)) {
	serviceEntry := widget.NewSelectEntry(services)
	serviceEntry.SetText(preset)
	serviceEntry.SetPlaceHolder("e.g. github")
	userEntry := widget.NewEntry()
	userEntry.SetPlaceHolder("username")
	passEntry := widget.NewPasswordEntry()
	passEntry.SetPlaceHolder("password")

	var d dialog.Dialog
	form := &widget.Form{
		Items: []*widget.FormItem{
			widget.NewFormItem("Service", serviceEntry),
			widget.NewFormItem("Username", userEntry),
			widget.NewFormItem("Password", passEntry),
		},
		SubmitText: "Add",
		CancelText: "Cancel",
	}
	form.OnSubmit = func() {
		in := AccountInput{
			Service:  serviceEntry.Text,
			Username: userEntry.Text,
			Password: passEntry.Text,
		}
		if err := ValidateAccountInput(in); err != nil {
			ShowErrorDialog(parent, err)
			return
		}
		d.Hide()
		onSubmit(in)
	}
	form.OnCancel = func() { d.Hide() }

	d = dialog.NewCustomWithoutButtons("Add Password", form, parent)
	d.Resize(fyne.NewSize(constants.AccountDialogWidth, constants.AccountDialogHeight))
	trackModal(km, "AddDialog", d)
	d.Show()
	parent.Canvas().Focus(serviceEntry)
}

// ShowDeleteAccountDialog prompts for the service and username to delete.
// The dialog closes without action when either field is blank.
func ShowDeleteAccountDialog(parent fyne.Window, km *keymanager.KeyManager, services []string, preset string, onSubmit func(service, username string)) {
	serviceEntry := widget.NewSelectEntry(services)
	serviceEntry.SetText(preset)
	userEntry := widget.NewEntry()

	d := dialog.NewForm(
		"Delete Password",
		"Delete",
		"Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Service", serviceEntry),
			widget.NewFormItem("Username", userEntry),
		},
		func(ok bool) {
			if !ok || serviceEntry.Text == "" || userEntry.Text == "" {
				return
			}
			onSubmit(serviceEntry.Text, userEntry.Text)
		},
		parent,
	)
	trackModal(km, "DeleteDialog", d)
	d.Show()
	parent.Canvas().Focus(serviceEntry)
}
