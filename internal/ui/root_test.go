package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/model"
)

const testURL = "https://www.youtube.com/watch?v=abc123"

type fakeInfo struct {
	mu      sync.Mutex
	fetches int
}

func (f *fakeInfo) Fetch(ctx context.Context, url string) (*model.VideoMetadata, error) {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	return &model.VideoMetadata{
		ID:              "abc123",
		Title:           "Sample Clip",
		Uploader:        "Someone",
		DurationSeconds: 65,
		ViewCount:       4200,
		Streams: []model.Stream{
			{FormatID: "18", Ext: "mp4", Height: 360, VCodec: "avc1", ACodec: "mp4a", HasVideo: true, HasAudio: true},
			{FormatID: "137", Ext: "mp4", Height: 1080, VCodec: "avc1.640028", HasVideo: true},
			{FormatID: "140", Ext: "m4a", ACodec: "mp4a.40.2", AudioBitrate: 128, HasAudio: true},
		},
	}, nil
}

func (f *fakeInfo) Playlist(ctx context.Context, url string) (*model.Playlist, error) {
	return &model.Playlist{ID: "PL1", Title: "Mix", Entries: make([]model.PlaylistEntry, 3)}, nil
}

type fakeDownloader struct {
	mu         sync.Mutex
	calls      int
	req        model.DownloadRequest
	candidates model.FormatCandidate
	err        error
	block      bool
	started    chan struct{}
}

func (f *fakeDownloader) Download(ctx context.Context, req model.DownloadRequest, candidates model.FormatCandidate, obs download.Observer) (model.DownloadOutcome, error) {
	f.mu.Lock()
	f.calls++
	f.req = req
	f.candidates = candidates
	f.mu.Unlock()

	if f.block {
		close(f.started)
		<-ctx.Done()
		err := model.NewError(model.KindCancelled, "download", "cancelled", ctx.Err())
		return model.DownloadOutcome{Err: err}, err
	}
	if f.err != nil {
		return model.DownloadOutcome{Err: f.err}, f.err
	}
	obs.OnStage(model.StageDownloading)
	obs.OnProgress(model.Progress{Downloaded: 50, Total: 100, Percent: 50, Stream: 1})
	return model.DownloadOutcome{Success: true, FilePath: filepath.Join(req.OutputDir, "Sample Clip.mp4")}, nil
}

func newTestUI(t *testing.T, dl *fakeDownloader) (*RootUI, *fakeInfo) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	w := a.NewWindow("test")
	info := &fakeInfo{}
	ui := NewRootUI(w, a, dl, info)
	ui.reveal = func(string) error { return nil }
	ui.open = func(string) error { return nil }
	ui.dirEntry.SetText(t.TempDir())
	return ui, info
}

func TestDownload_UsesFormValues(t *testing.T) {
	dl := &fakeDownloader{}
	ui, _ := newTestUI(t, dl)

	ui.urlEntry.SetText(testURL)
	ui.qualitySelect.SetSelected(string(model.Quality720))
	ui.formatSelect.SetSelected("mkv")
	test.Tap(ui.downloadBtn)
	ui.background.Wait()

	if dl.calls != 1 {
		t.Fatalf("expected one download, got %d", dl.calls)
	}
	if dl.req.Quality != model.Quality720 || dl.req.OutputFormat != "mkv" || dl.req.AudioOnly {
		t.Errorf("unexpected request %+v", dl.req)
	}
	if dl.candidates != nil {
		t.Errorf("quality tiers should be left to the downloader, got %v", dl.candidates)
	}
	if !strings.Contains(ui.statusLabel.Text, "Download completed") {
		t.Errorf("unexpected status %q", ui.statusLabel.Text)
	}
	if ui.progressBar.Value != 1 {
		t.Errorf("progress should be full, got %v", ui.progressBar.Value)
	}
	if !ui.revealBtn.Visible() || ui.downloadBtn.Disabled() {
		t.Error("reveal should show and download should re-enable after success")
	}
	if ui.settings.GetQuality() != model.Quality720 {
		t.Error("form values should be stored as defaults")
	}
}

func TestDownload_InvalidURLNeverStarts(t *testing.T) {
	dl := &fakeDownloader{}
	ui, _ := newTestUI(t, dl)

	for _, raw := range []string{"", "ftp://example.com/video"} {
		ui.urlEntry.SetText(raw)
		test.Tap(ui.downloadBtn)
	}
	ui.background.Wait()

	if dl.calls != 0 {
		t.Errorf("invalid input must not reach the downloader, got %d calls", dl.calls)
	}
	if ui.validateURL("ftp://example.com/video") == nil {
		t.Error("validator should reject non-http schemes")
	}
	if ui.validateURL("") != nil {
		t.Error("an empty entry is not an error yet")
	}
}

func TestStreamSelection(t *testing.T) {
	dl := &fakeDownloader{}
	ui, info := newTestUI(t, dl)

	ui.urlEntry.SetText(testURL)
	test.Tap(ui.formatsBtn)
	ui.background.Wait()

	if info.fetches != 1 {
		t.Fatalf("expected one metadata query, got %d", info.fetches)
	}
	if len(ui.streams) != 2 {
		t.Fatalf("video mode should list the two video streams, got %d", len(ui.streams))
	}
	if !strings.Contains(ui.infoLabel.Text, "Sample Clip") {
		t.Errorf("info panel should show the title, got %q", ui.infoLabel.Text)
	}

	// listed in metadata order: 18, 137
	ui.streamList.Select(1)
	if ui.selected == nil || ui.selected.FormatID != "137" {
		t.Fatalf("expected stream 137 selected, got %+v", ui.selected)
	}

	test.Tap(ui.downloadBtn)
	ui.background.Wait()
	if got := strings.Join(dl.candidates, ","); got != "137+bestaudio" {
		t.Errorf("selected stream should bypass the tiers, got %q", got)
	}
}

func TestModeChangeClearsSelection(t *testing.T) {
	dl := &fakeDownloader{}
	ui, _ := newTestUI(t, dl)

	ui.urlEntry.SetText(testURL)
	test.Tap(ui.formatsBtn)
	ui.background.Wait()
	ui.streamList.Select(0)

	ui.modeRadio.SetSelected(ui.modeOption(true))

	if ui.selected != nil {
		t.Error("changing the mode must drop the selection")
	}
	if len(ui.streams) != 1 || ui.streams[0].FormatID != "140" {
		t.Errorf("audio mode should list the audio stream, got %+v", ui.streams)
	}
	if ui.formatSelect.Selected != model.DefaultAudioFormat {
		t.Errorf("format should switch to the audio default, got %q", ui.formatSelect.Selected)
	}
	if !ui.settings.GetAudioOnly() {
		t.Error("mode should be remembered")
	}
}

func TestDownload_ErrorReEnables(t *testing.T) {
	dl := &fakeDownloader{err: model.Errorf(model.KindMissingDependency, "ffmpeg", "FFmpeg not found")}
	ui, _ := newTestUI(t, dl)

	ui.urlEntry.SetText(testURL)
	test.Tap(ui.downloadBtn)
	ui.background.Wait()

	if !strings.Contains(ui.statusLabel.Text, "FFmpeg not found") {
		t.Errorf("status should carry the error, got %q", ui.statusLabel.Text)
	}
	if ui.downloadBtn.Disabled() || ui.revealBtn.Visible() {
		t.Error("download should be available again and reveal hidden")
	}
}

func TestDownload_Cancel(t *testing.T) {
	dl := &fakeDownloader{block: true, started: make(chan struct{})}
	ui, _ := newTestUI(t, dl)

	ui.urlEntry.SetText(testURL)
	test.Tap(ui.downloadBtn)
	<-dl.started

	if !ui.downloadBtn.Disabled() {
		t.Error("download button must be disabled while a download runs")
	}
	test.Tap(ui.downloadBtn)

	test.Tap(ui.cancelBtn)
	ui.background.Wait()

	if dl.calls != 1 {
		t.Errorf("a second submission must be ignored, got %d calls", dl.calls)
	}
	if ui.statusLabel.Text != "Download cancelled" {
		t.Errorf("unexpected status %q", ui.statusLabel.Text)
	}
	if ui.downloadBtn.Disabled() {
		t.Error("download should re-enable after cancel")
	}
}

func TestStageFollowsRequest(t *testing.T) {
	dl := &fakeDownloader{block: true, started: make(chan struct{})}
	ui, info := newTestUI(t, dl)

	ui.urlEntry.SetText(testURL)
	test.Tap(ui.formatsBtn)
	ui.background.Wait()
	if ui.stage.Current() != model.StageSelecting {
		t.Fatalf("loaded formats should leave the window selecting, got %s", ui.stage.Current())
	}

	test.Tap(ui.downloadBtn)
	<-dl.started
	if ui.stage.Current() != model.StageDownloading {
		t.Errorf("expected downloading, got %s", ui.stage.Current())
	}
	if !ui.infoBtn.Disabled() || !ui.formatsBtn.Disabled() {
		t.Error("metadata buttons must be disabled while downloading")
	}
	ui.onGetInfo()
	if info.fetches != 1 {
		t.Errorf("no metadata query may start during a download, got %d", info.fetches)
	}

	test.Tap(ui.cancelBtn)
	ui.background.Wait()
	if ui.stage.Current() != model.StageFailed {
		t.Errorf("a cancelled download ends failed, got %s", ui.stage.Current())
	}
	if ui.infoBtn.Disabled() {
		t.Error("metadata buttons should be available again")
	}

	test.Tap(ui.infoBtn)
	ui.background.Wait()
	if info.fetches != 2 || ui.stage.Current() != model.StageIdle {
		t.Errorf("a new query should start from idle, got %d fetches in %s", info.fetches, ui.stage.Current())
	}
}

func TestPlaylistNotice(t *testing.T) {
	ui, _ := newTestUI(t, &fakeDownloader{})

	ui.urlEntry.SetText(testURL + "&list=PL1")
	test.Tap(ui.infoBtn)
	ui.background.Wait()

	if !ui.noticeLabel.Visible() || !strings.Contains(ui.noticeLabel.Text, `"Mix" has 3 videos`) {
		t.Errorf("unexpected notice %q", ui.noticeLabel.Text)
	}
}

func TestLanguageChangeKeepsMode(t *testing.T) {
	ui, _ := newTestUI(t, &fakeDownloader{})
	ui.modeRadio.SetSelected(ui.modeOption(true))

	ui.onLanguageChange("ru")

	if ui.downloadBtn.Text != "Скачать" {
		t.Errorf("button text not translated: %q", ui.downloadBtn.Text)
	}
	if !ui.isAudioOnly() {
		t.Error("mode must survive a language change")
	}
	if ui.settings.GetLanguage() != "ru" {
		t.Error("language should be stored")
	}
}

func TestStreamRow(t *testing.T) {
	s := model.Stream{FormatID: "137", Ext: "mp4", Height: 1080, VCodec: "avc1", HasVideo: true, ApproxSize: 50_000_000}
	if got := streamRow(s); got != "137 · Video Only · 1080p · mp4 · avc1 · 50 MB" {
		t.Errorf("unexpected row %q", got)
	}
}

func TestProgressFraction(t *testing.T) {
	if got := progressFraction(model.Progress{Downloaded: 25, Total: 100, Percent: 90}); got != 0.25 {
		t.Errorf("cumulative bytes should win, got %v", got)
	}
	if got := progressFraction(model.Progress{Percent: 40}); got != 0.4 {
		t.Errorf("percent fallback, got %v", got)
	}
	if got := progressFraction(model.Progress{Downloaded: 120, Total: 100}); got != 1 {
		t.Errorf("fraction should be capped, got %v", got)
	}
}

func TestLocalizationFallback(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("system should map to en, got %s", l.GetCurrentLanguage())
	}
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "en" {
		t.Error("unknown languages are ignored")
	}
	if l.GetText("no_such_key") != "no_such_key" {
		t.Error("missing keys fall back to the key")
	}
	for lang := range l.GetAvailableLanguages() {
		if len(l.texts[lang]) != len(l.texts["en"]) {
			t.Errorf("%s has %d texts, en has %d", lang, len(l.texts[lang]), len(l.texts["en"]))
		}
	}
}
