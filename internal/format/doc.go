package format

// Package format maps a quality tier to the ordered format-selection
// expressions handed to yt-dlp. The expressions are treated as opaque tokens.
