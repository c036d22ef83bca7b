package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytfetch/internal/platform"
)

// FinalPathTemplate makes yt-dlp print the file path once post-processing
// has moved the file into place
const FinalPathTemplate = "after_move:filepath"

// ProgressInterval is how often go-ytdlp reports progress
const ProgressInterval = 500 * time.Millisecond

// EngineError carries the yt-dlp failure together with its stderr output
type EngineError struct {
	Err    error
	Stderr string
}

// Error implements the error interface
func (e *EngineError) Error() string {
	msg := lastErrorLine(e.Stderr)
	if msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, msg)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Err
}

// lastErrorLine picks the last "ERROR:" line, or the last non-empty line
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
		if last == "" {
			last = line
		}
	}
	return last
}

// YTDLPEngine runs yt-dlp through go-ytdlp
type YTDLPEngine struct{}

// NewYTDLPEngine creates the production engine
func NewYTDLPEngine() *YTDLPEngine {
	return &YTDLPEngine{}
}

// Download runs one yt-dlp download for the job's format expression and
// returns the final file path yt-dlp reported
func (e *YTDLPEngine) Download(ctx context.Context, job Job, onProgress func(Update)) (string, error) {
	dl := ytdlp.New().
		NoPlaylist().
		NoWarnings().
		ForceOverwrites().
		NoSimulate().
		Print(FinalPathTemplate).
		Format(job.Format).
		Output(job.OutputTemplate)

	if job.FFmpegLocation != "" {
		dl = dl.FFmpegLocation(job.FFmpegLocation)
	}

	if job.AudioOnly {
		dl = dl.ExtractAudio().
			AudioFormat(job.AudioFormat).
			AudioQuality(job.AudioQuality)
	} else {
		if job.MergeFormat != "" {
			dl = dl.MergeOutputFormat(job.MergeFormat)
		}
		if job.RecodeFormat != "" {
			dl = dl.RecodeVideo(job.RecodeFormat)
		}
	}

	if onProgress != nil {
		// --print implies --quiet, which would hide progress lines
		dl = dl.Progress()
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			onProgress(toUpdate(&update))
		})
	}

	res, err := dl.Run(ctx, job.URL)
	if err != nil {
		return "", engineError(res, err)
	}
	return platform.PrintedPath(res.Stdout), nil
}

// Probe runs a metadata-only query and returns the extracted video info
func (e *YTDLPEngine) Probe(ctx context.Context, url string) (*ytdlp.ExtractedInfo, error) {
	res, err := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		NoWarnings().
		Run(ctx, url)
	if err != nil {
		return nil, engineError(res, err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, errors.New("yt-dlp returned no video information")
	}
	return infos[0], nil
}

// EnsureInstalled lets go-ytdlp download a yt-dlp binary when none is found
func EnsureInstalled(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

func engineError(res *ytdlp.Result, err error) error {
	stderr := ""
	if res != nil {
		stderr = res.Stderr
	}
	return &EngineError{Err: err, Stderr: stderr}
}

// toUpdate converts a go-ytdlp progress report
func toUpdate(update *ytdlp.ProgressUpdate) Update {
	u := Update{
		Downloaded: int64(update.DownloadedBytes),
		Total:      int64(update.TotalBytes),
		ETA:        update.ETA(),
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			u.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if update.Info != nil && update.Info.Title != nil {
		u.Title = *update.Info.Title
	}
	return u
}
