// Package media finds the FFmpeg toolchain on the host and inspects the
// tracks of downloaded files with ffprobe.
package media
