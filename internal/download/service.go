package download

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/ytfetch/internal/format"
	"github.com/ytget/ytfetch/internal/media"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Output naming
const (
	OutputTemplate  = "%(title)s.%(ext)s"
	RequestIDPrefix = "req-"
)

// YTDLPInstallHint is shown when the yt-dlp binary cannot be found
const YTDLPInstallHint = "install yt-dlp (https://github.com/yt-dlp/yt-dlp#installation) or run with --install-ytdlp"

// Service downloads one request at a time through an Engine
type Service struct {
	engine Engine
	ffmpeg FFmpegLocator
	newID  func() string
}

// NewService creates a new download service
func NewService(engine Engine, ffmpeg FFmpegLocator) *Service {
	return &Service{
		engine: engine,
		ffmpeg: ffmpeg,
		newID:  generateRequestID,
	}
}

// Download fetches req trying each candidate expression in order. Only a
// FormatUnavailable failure moves on to the next candidate. An empty
// candidate list means the request's quality tier decides.
//
// The returned outcome is also delivered to obs.OnFinish; err equals
// outcome.Err.
func (s *Service) Download(ctx context.Context, req model.DownloadRequest, candidates model.FormatCandidate, obs Observer) (model.DownloadOutcome, error) {
	gate := newProgressGate(obs)
	outcome := model.DownloadOutcome{StartedAt: time.Now()}

	finish := func(filePath, candidate string, err error) (model.DownloadOutcome, error) {
		outcome.EndedAt = time.Now()
		outcome.Success = err == nil
		outcome.FilePath = filePath
		outcome.Candidate = candidate
		outcome.Err = err
		gate.finish(outcome)
		return outcome, err
	}

	if err := req.Validate(); err != nil {
		return finish("", "", err)
	}
	if len(candidates) == 0 {
		candidates = format.Select(req.Quality, req.AudioOnly)
	}

	id := s.newID()
	log.Printf("[%s] download %s candidates=%v", id, req.URL, []string(candidates))

	outputDir := req.OutputDir

	var (
		ffmpegPath string
		staging    string
	)
	defer func() {
		if staging != "" {
			if n, _ := platform.CountFiles(staging); n > 0 {
				log.Printf("[%s] discarding %d leftover files", id, n)
			}
			if err := os.RemoveAll(staging); err != nil {
				log.Printf("[%s] failed to remove staging dir %s: %v", id, staging, err)
			}
		}
	}()

	for i, expr := range candidates {
		if ctx.Err() != nil {
			return finish("", "", model.NewError(model.KindCancelled, "download", "cancelled", ctx.Err()))
		}

		// FFmpeg is resolved before anything touches the output directory
		if needsFFmpeg(req, expr) && ffmpegPath == "" {
			p, err := s.ffmpeg.FFmpegPath()
			if err != nil {
				log.Printf("[%s] candidate %q needs FFmpeg: %v", id, expr, err)
				return finish("", "", Classify("download", err))
			}
			ffmpegPath = p
		}

		if staging == "" {
			if err := platform.EnsureWritableDir(outputDir); err != nil {
				return finish("", "", model.NewError(model.KindIOFailure, "download", err.Error(), err))
			}
			dir, err := platform.NewStagingDir(outputDir, id)
			if err != nil {
				return finish("", "", model.NewError(model.KindIOFailure, "download", err.Error(), err))
			}
			staging = dir
			gate.stage(model.StageDownloading)
		} else if err := resetDir(staging); err != nil {
			return finish("", "", model.NewError(model.KindIOFailure, "download", err.Error(), err))
		}

		job := s.buildJob(req, expr, staging, ffmpegPath)
		log.Printf("[%s] trying candidate %d/%d: %s", id, i+1, len(candidates), expr)

		reported, err := s.engine.Download(ctx, job, gate.progress)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("[%s] cancelled", id)
				return finish("", expr, model.NewError(model.KindCancelled, "download", "cancelled", ctx.Err()))
			}

			classified := Classify("download", err)
			if model.IsKind(classified, model.KindFormatUnavailable) {
				log.Printf("[%s] format %q not available, trying next", id, expr)
				continue
			}
			if model.IsKind(classified, model.KindMissingDependency) && !mentionsFFmpeg(err) {
				classified = model.NewError(model.KindMissingDependency, "download", "yt-dlp not found: "+YTDLPInstallHint, err)
			}
			log.Printf("[%s] candidate %q failed: %v", id, expr, err)
			return finish("", expr, classified)
		}

		produced, err := platform.FindOutputFile(staging, reported)
		if err != nil {
			return finish("", expr, model.NewError(model.KindIOFailure, "download", err.Error(), err))
		}
		final, err := platform.MoveIntoDir(produced, outputDir)
		if err != nil {
			return finish("", expr, model.NewError(model.KindIOFailure, "download", err.Error(), err))
		}

		log.Printf("[%s] saved %s using %q", id, final, expr)
		return finish(final, expr, nil)
	}

	return finish("", candidates.Last(), model.Errorf(model.KindFormatUnavailable, "download",
		"no requested format is available for this video (tried %d)", len(candidates)))
}

// buildJob turns one candidate into engine options
func (s *Service) buildJob(req model.DownloadRequest, expr, staging, ffmpegPath string) Job {
	container := req.EffectiveFormat()
	job := Job{
		URL:            req.URL,
		Format:         expr,
		OutputTemplate: filepath.Join(staging, OutputTemplate),
		AudioOnly:      req.AudioOnly,
		FFmpegLocation: ffmpegPath,
	}

	if req.AudioOnly {
		job.AudioFormat = container
		job.AudioQuality = model.DefaultAudioQuality
		return job
	}

	// streams are merged into mp4 first; other containers are re-encoded
	// since a plain copy fails when the codecs do not fit the container
	job.MergeFormat = model.DefaultVideoFormat
	if container != model.DefaultVideoFormat {
		job.RecodeFormat = container
	}
	return job
}

// needsFFmpeg reports whether an expression cannot be fulfilled without FFmpeg:
// merging, audio extraction or container conversion
func needsFFmpeg(req model.DownloadRequest, expr string) bool {
	if req.AudioOnly {
		return true
	}
	if model.NeedsMerge(expr) {
		return true
	}
	return req.EffectiveFormat() != model.DefaultVideoFormat
}

func mentionsFFmpeg(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), media.FFmpegCommand)
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear staging directory: %w", err)
	}
	return os.MkdirAll(dir, platform.DefaultDirPermissions)
}

// generateRequestID generates a unique request ID using UUID v7 so IDs sort by time
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RequestIDPrefix+"%d", time.Now().UnixNano())
	}
	return id.String()
}
