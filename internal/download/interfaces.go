package download

import (
	"context"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytfetch/internal/model"
)

// Job is a single yt-dlp invocation for one format expression
type Job struct {
	URL            string
	Format         string
	OutputTemplate string // absolute template inside the staging directory
	AudioOnly      bool
	AudioFormat    string
	AudioQuality   string
	MergeFormat    string
	RecodeFormat   string // empty when the merged mp4 is kept
	FFmpegLocation string
}

// Update is a raw progress report for the stream currently being fetched
type Update struct {
	Downloaded int64
	Total      int64
	Speed      float64
	ETA        time.Duration
	Title      string
}

// Engine runs the extraction tool
type Engine interface {
	Download(ctx context.Context, job Job, onProgress func(Update)) (string, error)
	Probe(ctx context.Context, url string) (*ytdlp.ExtractedInfo, error)
}

// FFmpegLocator resolves the FFmpeg binary
type FFmpegLocator interface {
	FFmpegPath() (string, error)
}

// Observer receives the events of one request. OnFinish is called exactly once.
type Observer interface {
	OnStage(stage model.Stage)
	OnProgress(p model.Progress)
	OnFinish(outcome model.DownloadOutcome)
}

// Downloader defines the interface for the download service
type Downloader interface {
	Download(ctx context.Context, req model.DownloadRequest, candidates model.FormatCandidate, obs Observer) (model.DownloadOutcome, error)
}
