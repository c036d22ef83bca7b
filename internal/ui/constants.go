package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
	IconVideo    = "🎬"
	IconMusic    = "🎵"
	IconCheck    = "✓"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%.0f%%"
)

// Window and panel sizing
const (
	WindowWidth  float32 = 820
	WindowHeight float32 = 680

	StreamListMinHeight float32 = 220
	SettingsDialogW     float32 = 500
	SettingsDialogH     float32 = 360
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)
