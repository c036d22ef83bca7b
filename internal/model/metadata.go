package model

import (
	"cmp"
	"fmt"
	"slices"
)

// StreamKind describes which tracks a stream carries
type StreamKind string

const (
	KindVideoAudio StreamKind = "Video+Audio"
	KindVideoOnly  StreamKind = "Video Only"
	KindAudioOnly  StreamKind = "Audio Only"
)

// Stream is one downloadable track exposed for a video
type Stream struct {
	FormatID     string
	Ext          string
	Resolution   string
	Width        int
	Height       int
	FPS          float64
	VCodec       string
	ACodec       string
	ApproxSize   int64   // bytes, 0 if unknown
	AudioBitrate float64 // kbps, 0 if unknown
	Note         string
	HasVideo     bool
	HasAudio     bool
}

// Kind returns the stream kind
func (s *Stream) Kind() StreamKind {
	switch {
	case s.HasVideo && s.HasAudio:
		return KindVideoAudio
	case s.HasVideo:
		return KindVideoOnly
	default:
		return KindAudioOnly
	}
}

// Codec returns the codec users care about for this kind of stream
func (s *Stream) Codec() string {
	if s.Kind() == KindAudioOnly {
		return s.ACodec
	}
	return s.VCodec
}

// QualityLabel returns "1080p 60fps", "128kbps" or "Unknown"
func (s *Stream) QualityLabel() string {
	switch {
	case s.Height > 0 && s.FPS > 0:
		return fmt.Sprintf("%dp %gfps", s.Height, s.FPS)
	case s.Height > 0:
		return fmt.Sprintf("%dp", s.Height)
	case s.AudioBitrate > 0:
		return fmt.Sprintf("%gkbps", s.AudioBitrate)
	default:
		return "Unknown"
	}
}

// VideoMetadata is the result of one metadata-only query
type VideoMetadata struct {
	ID              string
	Title           string
	Uploader        string
	DurationSeconds int
	ViewCount       int64
	UploadDate      string
	Description     string
	WebpageURL      string
	Streams         []Stream
}

// DurationString formats the duration as m:ss or h:mm:ss
func (m *VideoMetadata) DurationString() string {
	return FormatDuration(m.DurationSeconds)
}

// VideoStreams returns streams carrying video, in sorted order
func (m *VideoMetadata) VideoStreams() []Stream {
	var out []Stream
	for _, s := range m.Streams {
		if s.HasVideo {
			out = append(out, s)
		}
	}
	return out
}

// AudioStreams returns audio-only streams, in sorted order
func (m *VideoMetadata) AudioStreams() []Stream {
	var out []Stream
	for _, s := range m.Streams {
		if s.Kind() == KindAudioOnly {
			out = append(out, s)
		}
	}
	return out
}

// SortStreams orders streams combined first, then video-only, then
// audio-only, each group by descending height
func SortStreams(streams []Stream) {
	priority := map[StreamKind]int{KindVideoAudio: 0, KindVideoOnly: 1, KindAudioOnly: 2}
	slices.SortStableFunc(streams, func(a, b Stream) int {
		if c := cmp.Compare(priority[a.Kind()], priority[b.Kind()]); c != 0 {
			return c
		}
		return cmp.Compare(b.Height, a.Height)
	})
}

// FormatDuration formats seconds as m:ss, or h:mm:ss past an hour
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
