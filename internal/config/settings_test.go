package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytfetch/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestQuality(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if q := settings.GetQuality(); q != DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", DefaultQuality, q)
	}

	settings.SetQuality(model.Quality720)
	if q := settings.GetQuality(); q != model.Quality720 {
		t.Errorf("Expected quality 720, got %s", q)
	}

	// Unknown stored values fall back to the default
	app.Preferences().SetString(KeyQuality, "medium")
	if q := settings.GetQuality(); q != DefaultQuality {
		t.Errorf("Expected fallback to %s, got %s", DefaultQuality, q)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		audioOnly bool
		set       string
		expected  string
	}{
		{"video default", false, "", model.DefaultVideoFormat},
		{"audio default", true, "", model.DefaultAudioFormat},
		{"video container", false, "mkv", "mkv"},
		{"audio container", true, "FLAC", "flac"},
		{"audio format in video mode ignored", false, "mp3", model.DefaultVideoFormat},
		{"video format in audio mode ignored", true, "webm", model.DefaultAudioFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := NewSettings(test.NewApp())
			if tt.set != "" {
				settings.SetOutputFormat(tt.audioOnly, tt.set)
			}
			if got := settings.GetOutputFormat(tt.audioOnly); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestOutputFormatsAreKeptPerMode(t *testing.T) {
	settings := NewSettings(test.NewApp())
	settings.SetOutputFormat(false, "webm")
	settings.SetOutputFormat(true, "m4a")

	if settings.GetOutputFormat(false) != "webm" || settings.GetOutputFormat(true) != "m4a" {
		t.Error("video and audio formats should be stored independently")
	}
}

func TestAudioOnly(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if settings.GetAudioOnly() {
		t.Error("audio-only should default to false")
	}
	settings.SetAudioOnly(true)
	if !settings.GetAudioOnly() {
		t.Error("audio-only should persist")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("en")
	if retrievedLang := settings.GetLanguage(); retrievedLang != "en" {
		t.Errorf("Expected language 'en', got %s", retrievedLang)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestNewRequest(t *testing.T) {
	settings := NewSettings(test.NewApp())
	settings.SetDownloadDirectory("/music")
	settings.SetQuality(model.Quality480)
	settings.SetAudioOnly(true)
	settings.SetOutputFormat(true, "ogg")

	req := settings.NewRequest(" https://www.youtube.com/watch?v=x\n")

	if req.URL != "https://www.youtube.com/watch?v=x" {
		t.Errorf("URL should be cleaned, got %q", req.URL)
	}
	if req.Quality != model.Quality480 || !req.AudioOnly || req.OutputFormat != "ogg" || req.OutputDir != "/music" {
		t.Errorf("unexpected request %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("request built from settings should be valid: %v", err)
	}
}
