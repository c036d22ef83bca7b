package config

import (
	"path/filepath"
	"slices"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyQuality            = "quality"
	KeyVideoFormat        = "video_format"
	KeyAudioFormat        = "audio_format"
	KeyAudioOnly          = "audio_only"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultQuality            = model.QualityBest
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(".", model.DefaultOutputDir)
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, strings.TrimSpace(dir))
}

// GetQuality returns the stored quality tier. Unknown stored values fall
// back to the default.
func (s *Settings) GetQuality() model.Quality {
	q, err := model.ParseQuality(s.app.Preferences().String(KeyQuality))
	if err != nil {
		s.SetQuality(DefaultQuality)
		return DefaultQuality
	}
	return q
}

// SetQuality sets the quality tier
func (s *Settings) SetQuality(q model.Quality) {
	s.app.Preferences().SetString(KeyQuality, string(q))
}

// GetQualityOptions returns available quality tiers
func (s *Settings) GetQualityOptions() []model.Quality {
	return slices.Clone(model.Qualities)
}

// GetOutputFormat returns the stored container for the given mode
func (s *Settings) GetOutputFormat(audioOnly bool) string {
	key, options, def := formatKey(audioOnly)
	f := s.app.Preferences().String(key)
	if !slices.Contains(options, f) {
		return def
	}
	return f
}

// SetOutputFormat stores the container for the given mode. Values outside the
// mode's format family are ignored.
func (s *Settings) SetOutputFormat(audioOnly bool, f string) {
	key, options, _ := formatKey(audioOnly)
	f = strings.ToLower(f)
	if !slices.Contains(options, f) {
		return
	}
	s.app.Preferences().SetString(key, f)
}

// GetOutputFormatOptions returns the containers available for a mode
func (s *Settings) GetOutputFormatOptions(audioOnly bool) []string {
	_, options, _ := formatKey(audioOnly)
	return slices.Clone(options)
}

func formatKey(audioOnly bool) (string, []string, string) {
	if audioOnly {
		return KeyAudioFormat, model.AudioFormats, model.DefaultAudioFormat
	}
	return KeyVideoFormat, model.VideoFormats, model.DefaultVideoFormat
}

// GetAudioOnly returns whether audio-only mode was last selected
func (s *Settings) GetAudioOnly() bool {
	return s.app.Preferences().BoolWithFallback(KeyAudioOnly, false)
}

// SetAudioOnly stores the download mode
func (s *Settings) SetAudioOnly(audioOnly bool) {
	s.app.Preferences().SetBool(KeyAudioOnly, audioOnly)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal the file after a download
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the file after a download
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// NewRequest builds a download request for url from the stored preferences
func (s *Settings) NewRequest(url string) model.DownloadRequest {
	audioOnly := s.GetAudioOnly()
	return model.DownloadRequest{
		URL:          model.CleanURL(url),
		Quality:      s.GetQuality(),
		AudioOnly:    audioOnly,
		OutputFormat: s.GetOutputFormat(audioOnly),
		OutputDir:    s.GetDownloadDirectory(),
	}
}
