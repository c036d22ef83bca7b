package platform

// Package platform contains OS integration and external tooling glue:
// filesystem helpers (staging, writable checks, reveal in file manager),
// parsing of yt-dlp JSON output and playlist enumeration.
