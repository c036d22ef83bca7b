package ui

import (
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/model"
)

// SettingsDialog edits the stored defaults used to prefill the window
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	onSaved      func()
	dialog       *dialog.ConfirmDialog

	downloadDirEntry  *widget.Entry
	qualitySelect     *widget.Select
	videoFormatSelect *widget.Select
	audioFormatSelect *widget.Select
	languageSelect    *widget.Select
	autoRevealCheck   *widget.Check

	// language display name -> code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved may be nil.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, loc *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: loc,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	qualityOptions := []string{}
	for _, q := range sd.settings.GetQualityOptions() {
		qualityOptions = append(qualityOptions, string(q))
	}
	sd.qualitySelect = widget.NewSelect(qualityOptions, nil)
	sd.videoFormatSelect = widget.NewSelect(sd.settings.GetOutputFormatOptions(false), nil)
	sd.audioFormatSelect = widget.NewSelect(sd.settings.GetOutputFormatOptions(true), nil)

	sd.languageCodes = map[string]string{}
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	slices.Sort(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(text(KeyQuality), sd.qualitySelect),
		widget.NewFormItem(text(KeyModeVideo), sd.videoFormatSelect),
		widget.NewFormItem(text(KeyModeAudio), sd.audioFormatSelect),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.autoRevealCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.qualitySelect.SetSelected(string(sd.settings.GetQuality()))
	sd.videoFormatSelect.SetSelected(sd.settings.GetOutputFormat(false))
	sd.audioFormatSelect.SetSelected(sd.settings.GetOutputFormat(true))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save writes the non-empty fields; the setters reject values of the wrong kind
func (sd *SettingsDialog) save() {
	if sd.downloadDirEntry.Text != "" {
		sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	}
	if sd.qualitySelect.Selected != "" {
		sd.settings.SetQuality(model.Quality(sd.qualitySelect.Selected))
	}
	if sd.videoFormatSelect.Selected != "" {
		sd.settings.SetOutputFormat(false, sd.videoFormatSelect.Selected)
	}
	if sd.audioFormatSelect.Selected != "" {
		sd.settings.SetOutputFormat(true, sd.audioFormatSelect.Selected)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
}
