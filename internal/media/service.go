package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ytget/ytfetch/internal/model"
)

// Executable and I/O constants
const (
	FFmpegCommand      = "ffmpeg"
	FFprobeCommand     = "ffprobe"
	FFprobeLogLevel    = "error"
	FFprobeShowEntries = "stream=index,codec_type,codec_name:format=duration"
	FFprobeOutput      = "json"
)

// Environment override for the FFmpeg location
const FFmpegEnvVar = "YTFETCH_FFMPEG"

// Codec types reported by ffprobe
const (
	CodecTypeVideo = "video"
	CodecTypeAudio = "audio"
)

// InstallHint is shown when FFmpeg cannot be found
const InstallHint = "install FFmpeg (https://ffmpeg.org/download.html, `brew install ffmpeg`, `apt install ffmpeg`, `choco install ffmpeg`) and make sure it is on PATH"

// TrackInfo is one track reported by ffprobe
type TrackInfo struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
}

// Report summarizes the tracks of a media file
type Report struct {
	Path     string
	Tracks   []TrackInfo
	Duration float64 // seconds, 0 if unknown
}

// HasVideo reports whether a video track is present
func (r *Report) HasVideo() bool {
	return r.has(CodecTypeVideo)
}

// HasAudio reports whether an audio track is present
func (r *Report) HasAudio() bool {
	return r.has(CodecTypeAudio)
}

func (r *Report) has(codecType string) bool {
	for _, t := range r.Tracks {
		if t.CodecType == codecType {
			return true
		}
	}
	return false
}

// Kind maps the report onto a stream kind
func (r *Report) Kind() model.StreamKind {
	switch {
	case r.HasVideo() && r.HasAudio():
		return model.KindVideoAudio
	case r.HasVideo():
		return model.KindVideoOnly
	default:
		return model.KindAudioOnly
	}
}

// Summary renders "video (h264) + audio (aac)"
func (r *Report) Summary() string {
	parts := make([]string, 0, len(r.Tracks))
	for _, t := range r.Tracks {
		if t.CodecType != CodecTypeVideo && t.CodecType != CodecTypeAudio {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", t.CodecType, t.CodecName))
	}
	if len(parts) == 0 {
		return "no audio or video tracks"
	}
	return strings.Join(parts, " + ")
}

// Runner executes a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Service resolves FFmpeg binaries and runs ffprobe
type Service struct {
	lookPath func(string) (string, error)
	run      Runner
	getenv   func(string) string
}

// NewService creates a service using PATH lookup and os/exec
func NewService() *Service {
	return &Service{
		lookPath: exec.LookPath,
		run:      execRunner,
		getenv:   os.Getenv,
	}
}

// NewServiceWith creates a service with custom lookup and runner
func NewServiceWith(lookPath func(string) (string, error), run Runner) *Service {
	return &Service{
		lookPath: lookPath,
		run:      run,
		getenv:   func(string) string { return "" },
	}
}

// FFmpegPath returns the path of the ffmpeg binary or a MissingDependency error
func (s *Service) FFmpegPath() (string, error) {
	if p := strings.TrimSpace(s.getenv(FFmpegEnvVar)); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		log.Printf("%s points to %q which does not exist, falling back to PATH", FFmpegEnvVar, p)
	}

	p, err := s.lookPath(FFmpegCommand)
	if err != nil {
		return "", model.NewError(model.KindMissingDependency, "ffmpeg", "FFmpeg not found: "+InstallHint, err)
	}
	return p, nil
}

// FFprobePath returns the ffprobe binary, preferring the one next to ffmpeg
func (s *Service) FFprobePath() (string, error) {
	if ff, err := s.FFmpegPath(); err == nil {
		sibling := filepath.Join(filepath.Dir(ff), FFprobeCommand+filepath.Ext(ff))
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}

	p, err := s.lookPath(FFprobeCommand)
	if err != nil {
		return "", model.NewError(model.KindMissingDependency, "ffprobe", "ffprobe not found: "+InstallHint, err)
	}
	return p, nil
}

// Inspect lists the tracks of a media file with ffprobe
func (s *Service) Inspect(ctx context.Context, path string) (*Report, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, model.NewError(model.KindIOFailure, "inspect", fmt.Sprintf("file does not exist: %s", path), err)
	}

	probe, err := s.FFprobePath()
	if err != nil {
		return nil, err
	}

	out, err := s.run(ctx, probe, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutput, path)
	if err != nil {
		return nil, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	report, err := parseProbeOutput(out)
	if err != nil {
		return nil, err
	}
	report.Path = path
	return report, nil
}

type probeOutput struct {
	Streams []TrackInfo `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseProbeOutput(out []byte) (*Report, error) {
	var po probeOutput
	if err := json.Unmarshal(out, &po); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	report := &Report{Tracks: po.Streams}
	if d := strings.TrimSpace(po.Format.Duration); d != "" {
		duration, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		report.Duration = duration
	}
	return report, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}
