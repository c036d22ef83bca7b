package ui

import (
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showToastNotification shows an in-app toast for a finished file
func (ui *RootUI) showToastNotification(path string) {
	titleLabel := widget.NewLabel(ui.text(KeyDownloadCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(filepath.Base(path))
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toastPopup *widget.PopUp
	revealBtn := widget.NewButton(ui.text(KeyShowInFolder), func() {
		toastPopup.Hide()
		ui.onRevealClick()
	})
	revealBtn.Importance = widget.HighImportance

	openBtn := widget.NewButton(ui.text(KeyOpen), func() {
		toastPopup.Hide()
		if err := ui.open(path); err != nil {
			dialog.ShowError(err, ui.window)
		}
	})

	closeBtn := widget.NewButton(IconClose, func() { toastPopup.Hide() })
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
		container.NewHBox(revealBtn, openBtn),
	)
	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPopup.Resize(toastSize)
	toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
	toastPopup.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}
