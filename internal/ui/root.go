package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/format"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// InfoSource answers metadata-only queries for the window
type InfoSource interface {
	Fetch(ctx context.Context, url string) (*model.VideoMetadata, error)
	Playlist(ctx context.Context, url string) (*model.Playlist, error)
}

// RootUI represents the main window. Fields below the widgets are touched on
// the UI thread only; background work reports back through fyne.Do.
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	downloader   download.Downloader
	info         InfoSource
	settings     *config.Settings
	localization *Localization
	reveal       func(path string) error
	open         func(path string) error

	urlEntry       *widget.Entry
	infoBtn        *widget.Button
	formatsBtn     *widget.Button
	infoLabel      *widget.Label
	noticeLabel    *widget.Label
	modeRadio      *widget.RadioGroup
	qualitySelect  *widget.Select
	formatSelect   *widget.Select
	dirEntry       *widget.Entry
	browseBtn      *widget.Button
	streamList     *widget.List
	selectionLabel *widget.Label
	clearBtn       *widget.Button
	downloadBtn    *widget.Button
	cancelBtn      *widget.Button
	revealBtn      *widget.Button
	progressBar    *widget.ProgressBar
	statusLabel    *widget.Label

	stage    model.Lifecycle
	metadata *model.VideoMetadata
	streams  []model.Stream
	selected *model.Stream
	lastFile string
	cancel   context.CancelFunc

	background sync.WaitGroup
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloader download.Downloader, info InfoSource) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		downloader:   downloader,
		info:         info,
		settings:     settings,
		localization: localization,
		reveal:       platform.OpenFileInManager,
		open:         platform.OpenFileWithDefaultApp,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

func (ui *RootUI) text(key string) string {
	return ui.localization.GetText(key)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.text(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }

	ui.infoBtn = widget.NewButton(ui.text(KeyGetInfo), ui.onGetInfo)
	ui.formatsBtn = widget.NewButton(ui.text(KeyLoadFormats), ui.onLoadFormats)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	urlRow := container.NewBorder(nil, nil, settingsBtn, container.NewHBox(ui.infoBtn, ui.formatsBtn), ui.urlEntry)

	ui.infoLabel = widget.NewLabel("")
	ui.infoLabel.Wrapping = fyne.TextWrapWord
	ui.infoLabel.Hide()

	ui.noticeLabel = widget.NewLabel("")
	ui.noticeLabel.Importance = widget.WarningImportance
	ui.noticeLabel.Wrapping = fyne.TextWrapWord
	ui.noticeLabel.Hide()

	// Request options
	audioOnly := ui.settings.GetAudioOnly()
	ui.modeRadio = widget.NewRadioGroup(ui.modeOptions(), nil)
	ui.modeRadio.Horizontal = true
	ui.modeRadio.Required = true
	ui.modeRadio.SetSelected(ui.modeOption(audioOnly))
	ui.modeRadio.OnChanged = ui.onModeChanged

	qualities := make([]string, 0, len(ui.settings.GetQualityOptions()))
	for _, q := range ui.settings.GetQualityOptions() {
		qualities = append(qualities, string(q))
	}
	ui.qualitySelect = widget.NewSelect(qualities, nil)
	ui.qualitySelect.SetSelected(string(ui.settings.GetQuality()))

	ui.formatSelect = widget.NewSelect(ui.settings.GetOutputFormatOptions(audioOnly), nil)
	ui.formatSelect.SetSelected(ui.settings.GetOutputFormat(audioOnly))
	ui.applyModeToQuality(audioOnly)

	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.browseBtn = widget.NewButton(ui.text(KeyBrowse), ui.onBrowseDirectory)

	optionsForm := widget.NewForm(
		widget.NewFormItem("", ui.modeRadio),
		widget.NewFormItem(ui.text(KeyQuality), ui.qualitySelect),
		widget.NewFormItem(ui.text(KeyOutputFormat), ui.formatSelect),
		widget.NewFormItem(ui.text(KeyDownloadDirectory), container.NewBorder(nil, nil, nil, ui.browseBtn, ui.dirEntry)),
	)

	// Stream list
	ui.streamList = widget.NewList(
		func() int { return len(ui.streams) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(ui.streams) {
				obj.(*widget.Label).SetText(streamRow(ui.streams[id]))
			}
		},
	)
	ui.streamList.OnSelected = ui.onStreamSelected

	ui.selectionLabel = widget.NewLabel(ui.text(KeyStreamsHint))
	ui.clearBtn = widget.NewButton(ui.text(KeyClearSelection), ui.clearSelection)
	ui.clearBtn.Importance = widget.LowImportance
	ui.clearBtn.Hide()

	listArea := container.NewGridWrap(fyne.NewSize(WindowWidth-40, StreamListMinHeight), ui.streamList)
	streamPanel := container.NewBorder(container.NewBorder(nil, nil, nil, ui.clearBtn, ui.selectionLabel), nil, nil, nil, listArea)

	// Actions and progress
	ui.downloadBtn = widget.NewButton(ui.text(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(ui.text(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()
	ui.revealBtn = widget.NewButton(IconFolder+" "+ui.text(KeyShowInFolder), ui.onRevealClick)
	ui.revealBtn.Hide()

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, ui.progressBar.Value*100)
	}
	ui.statusLabel = widget.NewLabel(ui.text(KeyReady))
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	actions := container.NewHBox(ui.downloadBtn, ui.cancelBtn, ui.revealBtn)
	bottom := container.NewVBox(widget.NewSeparator(), actions, ui.progressBar, ui.statusLabel)

	top := container.NewVBox(urlRow, ui.noticeLabel, ui.infoLabel, widget.NewSeparator(), optionsForm, widget.NewSeparator())
	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, streamPanel))

	log.Printf("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.text(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.text(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() { ui.onLanguageChange(langCode) })
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.text(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.text(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.text(KeyEnterURL))
	ui.infoBtn.SetText(ui.text(KeyGetInfo))
	ui.formatsBtn.SetText(ui.text(KeyLoadFormats))
	ui.browseBtn.SetText(ui.text(KeyBrowse))
	ui.downloadBtn.SetText(ui.text(KeyDownload))
	ui.cancelBtn.SetText(ui.text(KeyCancel))
	ui.revealBtn.SetText(IconFolder + " " + ui.text(KeyShowInFolder))
	ui.clearBtn.SetText(ui.text(KeyClearSelection))

	// radio options are display strings; keep the mode across the rename
	audioOnly := ui.isAudioOnly()
	onChanged := ui.modeRadio.OnChanged
	ui.modeRadio.OnChanged = nil
	ui.modeRadio.Options = ui.modeOptions()
	ui.modeRadio.SetSelected(ui.modeOption(audioOnly))
	ui.modeRadio.OnChanged = onChanged
	ui.modeRadio.Refresh()

	if ui.selected == nil {
		ui.selectionLabel.SetText(ui.text(KeyStreamsHint))
	} else {
		ui.selectionLabel.SetText(ui.text(KeySelectedStream) + ": " + streamRow(*ui.selected))
	}
	if ui.metadata != nil {
		ui.showInfo(ui.metadata)
	}
}

func (ui *RootUI) modeOptions() []string {
	return []string{IconVideo + " " + ui.text(KeyModeVideo), IconMusic + " " + ui.text(KeyModeAudio)}
}

func (ui *RootUI) modeOption(audioOnly bool) string {
	options := ui.modeOptions()
	if audioOnly {
		return options[1]
	}
	return options[0]
}

func (ui *RootUI) isAudioOnly() bool {
	return ui.modeRadio.Selected == ui.modeOption(true)
}

// validateURL is the entry validator; an empty entry is not an error yet
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return model.ValidateURL(model.CleanURL(input))
}

// currentURL returns the cleaned URL or a user-facing error
func (ui *RootUI) currentURL() (string, error) {
	raw := model.CleanURL(ui.urlEntry.Text)
	if raw == "" {
		return "", errors.New(ui.text(KeyPleaseEnterURL))
	}
	if err := model.ValidateURL(raw); err != nil {
		return "", fmt.Errorf("%s: %w", ui.text(KeyInvalidURL), err)
	}
	return raw, nil
}

func (ui *RootUI) onGetInfo() {
	ui.queryMetadata(KeyFetchingInfo, model.StageIdle, func(meta *model.VideoMetadata) {
		ui.showInfo(meta)
	})
}

func (ui *RootUI) onLoadFormats() {
	ui.queryMetadata(KeyLoadingFormats, model.StageSelecting, func(meta *model.VideoMetadata) {
		ui.showInfo(meta)
		ui.setStreams(meta)
	})
}

// setStage moves the window's request lifecycle. A finished request goes back
// to idle before the next one starts. The metadata buttons are disabled while
// work is in flight.
func (ui *RootUI) setStage(next model.Stage) bool {
	if ui.stage.Current().IsFinished() && next != model.StageIdle {
		ui.stage.Advance(model.StageIdle)
	}
	from := ui.stage.Current()
	if !ui.stage.Advance(next) {
		log.Printf("ignoring stage change %s -> %s", from, next)
		return false
	}

	if next.IsActive() {
		ui.infoBtn.Disable()
		ui.formatsBtn.Disable()
	} else {
		ui.infoBtn.Enable()
		ui.formatsBtn.Enable()
	}
	return true
}

// queryMetadata runs a metadata-only query in the background and hands the
// result to onDone on the UI thread, leaving the window in stage done
func (ui *RootUI) queryMetadata(statusKey string, done model.Stage, onDone func(*model.VideoMetadata)) {
	url, err := ui.currentURL()
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if !ui.setStage(model.StageFetchingMetadata) {
		return
	}

	ui.statusLabel.SetText(ui.text(statusKey))
	ui.noticeLabel.Hide()

	if platform.IsPlaylistURL(url) {
		ui.checkPlaylist(url)
	}

	ui.background.Add(1)
	go func() {
		defer ui.background.Done()
		meta, err := ui.info.Fetch(context.Background(), url)
		fyne.Do(func() {
			// a download started meanwhile owns the stage
			fetching := ui.stage.Current() == model.StageFetchingMetadata
			if err != nil {
				log.Printf("metadata query failed: %v", err)
				if fetching {
					ui.setStage(model.StageFailed)
					ui.statusLabel.SetText(err.Error())
				}
				dialog.ShowError(err, ui.window)
				return
			}
			if fetching {
				ui.setStage(done)
				ui.statusLabel.SetText(ui.text(KeyReady))
			}
			onDone(meta)
		})
	}()
}

// checkPlaylist tells the user what a playlist URL contains; only the single
// video it points at is ever downloaded
func (ui *RootUI) checkPlaylist(url string) {
	ui.background.Add(1)
	go func() {
		defer ui.background.Done()
		pl, err := ui.info.Playlist(context.Background(), url)
		if err != nil {
			log.Printf("playlist lookup failed: %v", err)
			return
		}
		fyne.Do(func() {
			ui.noticeLabel.SetText(fmt.Sprintf(ui.text(KeyPlaylistNotice), pl.Title, pl.Len()))
			ui.noticeLabel.Show()
		})
	}()
}

func (ui *RootUI) showInfo(meta *model.VideoMetadata) {
	ui.metadata = meta
	lines := []string{
		ui.text(KeyTitle) + ": " + meta.Title,
		ui.text(KeyUploader) + ": " + valueOr(meta.Uploader),
		ui.text(KeyDuration) + ": " + meta.DurationString() + MiddleDotSeparator +
			ui.text(KeyViews) + ": " + humanize.Comma(meta.ViewCount) + MiddleDotSeparator +
			ui.text(KeyUploadDate) + ": " + valueOr(meta.UploadDate),
	}
	ui.infoLabel.SetText(strings.Join(lines, "\n"))
	ui.infoLabel.Show()
}

// setStreams lists the streams of meta matching the current mode
func (ui *RootUI) setStreams(meta *model.VideoMetadata) {
	ui.metadata = meta
	ui.clearSelection()
	if ui.isAudioOnly() {
		ui.streams = meta.AudioStreams()
	} else {
		ui.streams = meta.VideoStreams()
	}
	ui.streamList.Refresh()
	if len(ui.streams) == 0 {
		ui.selectionLabel.SetText(ui.text(KeyNoStreams))
	}
}

func (ui *RootUI) onStreamSelected(id widget.ListItemID) {
	if id < 0 || id >= len(ui.streams) {
		return
	}
	s := ui.streams[id]
	ui.selected = &s
	ui.selectionLabel.SetText(ui.text(KeySelectedStream) + ": " + streamRow(s))
	ui.clearBtn.Show()
	ui.qualitySelect.Disable()
}

// clearSelection drops a hand-picked stream so the quality tier applies again
func (ui *RootUI) clearSelection() {
	ui.selected = nil
	ui.streamList.UnselectAll()
	ui.selectionLabel.SetText(ui.text(KeyStreamsHint))
	ui.clearBtn.Hide()
	ui.applyModeToQuality(ui.isAudioOnly())
}

// onModeChanged swaps the format choices and drops the stream selection,
// which belongs to the other mode's list
func (ui *RootUI) onModeChanged(string) {
	audioOnly := ui.isAudioOnly()
	ui.settings.SetAudioOnly(audioOnly)

	ui.formatSelect.Options = ui.settings.GetOutputFormatOptions(audioOnly)
	ui.formatSelect.SetSelected(ui.settings.GetOutputFormat(audioOnly))

	if ui.metadata != nil {
		ui.setStreams(ui.metadata)
	} else {
		ui.clearSelection()
	}
}

// applyModeToQuality disables the quality tier where it has no effect
func (ui *RootUI) applyModeToQuality(audioOnly bool) {
	if audioOnly {
		ui.qualitySelect.Disable()
	} else {
		ui.qualitySelect.Enable()
	}
}

func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
	}, ui.window)
}

// buildRequest stores the form as the new defaults and builds the request
// from them. A hand-picked stream bypasses the quality tiers.
func (ui *RootUI) buildRequest() (model.DownloadRequest, model.FormatCandidate, error) {
	url, err := ui.currentURL()
	if err != nil {
		return model.DownloadRequest{}, nil, err
	}

	audioOnly := ui.isAudioOnly()
	ui.settings.SetAudioOnly(audioOnly)
	if q := ui.qualitySelect.Selected; q != "" {
		ui.settings.SetQuality(model.Quality(q))
	}
	ui.settings.SetOutputFormat(audioOnly, ui.formatSelect.Selected)
	if dir := strings.TrimSpace(ui.dirEntry.Text); dir != "" {
		ui.settings.SetDownloadDirectory(dir)
	}

	req := ui.settings.NewRequest(url)
	if err := req.Validate(); err != nil {
		return model.DownloadRequest{}, nil, err
	}

	var candidates model.FormatCandidate
	if ui.selected != nil {
		candidates = format.Explicit(*ui.selected)
	}
	return req, candidates, nil
}

// onDownloadClick starts one download; the button stays disabled until it ends
func (ui *RootUI) onDownloadClick() {
	if ui.cancel != nil {
		return
	}

	req, candidates, err := ui.buildRequest()
	if err != nil {
		ui.statusLabel.SetText(err.Error())
		dialog.ShowError(err, ui.window)
		return
	}

	if !ui.setStage(model.StageDownloading) {
		return
	}
	ui.dirEntry.SetText(req.OutputDir)

	ctx, cancel := context.WithCancel(context.Background())
	ui.cancel = cancel
	ui.setBusy(true)
	ui.revealBtn.Hide()
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(ui.text(KeyDownloadStarted))
	log.Printf("download requested: %s (quality=%s audio=%t format=%s)", req.URL, req.Quality, req.AudioOnly, req.EffectiveFormat())

	ui.background.Add(1)
	go func() {
		defer ui.background.Done()
		outcome, err := ui.downloader.Download(ctx, req, candidates, ui.observer())
		fyne.Do(func() {
			cancel()
			ui.finishDownload(outcome, err)
		})
	}()
}

func (ui *RootUI) onCancelClick() {
	if ui.cancel == nil {
		return
	}
	ui.cancelBtn.Disable()
	ui.cancel()
}

func (ui *RootUI) finishDownload(outcome model.DownloadOutcome, err error) {
	ui.cancel = nil
	ui.setBusy(false)
	if err == nil {
		ui.setStage(model.StageDone)
	} else {
		ui.setStage(model.StageFailed)
	}

	switch {
	case err == nil:
		ui.lastFile = outcome.FilePath
		ui.progressBar.SetValue(1)
		ui.statusLabel.SetText(IconCheck + " " + ui.text(KeyDownloadCompleted) + ": " + outcome.FilePath)
		ui.revealBtn.Show()
		ui.sendCompletionNotification(outcome.FilePath)
		if ui.settings.GetAutoRevealOnComplete() {
			ui.onRevealClick()
		}
	case model.IsKind(err, model.KindCancelled):
		ui.progressBar.SetValue(0)
		ui.statusLabel.SetText(ui.text(KeyDownloadCancelled))
	default:
		reason := outcome.FailureReason()
		if reason == "" {
			reason = err.Error()
		}
		log.Printf("download failed: %s", reason)
		ui.statusLabel.SetText(ui.text(KeyDownloadFailed) + ": " + reason)
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) setBusy(busy bool) {
	if busy {
		ui.downloadBtn.Disable()
		ui.cancelBtn.Enable()
		ui.modeRadio.Disable()
		return
	}
	ui.downloadBtn.Enable()
	ui.cancelBtn.Disable()
	ui.modeRadio.Enable()
}

func (ui *RootUI) onRevealClick() {
	if ui.lastFile == "" {
		return
	}
	if err := ui.reveal(ui.lastFile); err != nil {
		log.Printf("reveal %s: %v", ui.lastFile, err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.text(KeyErrorOpeningDir), err), ui.window)
	}
}

func (ui *RootUI) sendCompletionNotification(path string) {
	ui.app.SendNotification(fyne.NewNotification(ui.text(KeyDownloadCompleted), filepath.Base(path)))
	ui.showToastNotification(path)
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, ui.onSettingsSaved).Show()
}

// onSettingsSaved pulls stored preferences back into the form
func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.qualitySelect.SetSelected(string(ui.settings.GetQuality()))
	ui.formatSelect.SetSelected(ui.settings.GetOutputFormat(ui.isAudioOnly()))
	ui.refreshUITexts()
	ui.createMenu()
}

// observer forwards download events to the window. The outcome itself is
// handled when Download returns.
func (ui *RootUI) observer() download.Observer {
	return download.ObserverFuncs{
		Stage: func(stage model.Stage) {
			if stage != model.StageDownloading {
				return
			}
			fyne.Do(func() { ui.statusLabel.SetText(ui.text(KeyDownloadStarted)) })
		},
		Progress: func(pr model.Progress) {
			fyne.Do(func() {
				ui.progressBar.SetValue(progressFraction(pr))
				ui.statusLabel.SetText(progressStatus(pr))
			})
		},
	}
}
