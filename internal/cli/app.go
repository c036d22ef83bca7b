package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/format"
	"github.com/ytget/ytfetch/internal/media"
	"github.com/ytget/ytfetch/internal/model"
)

// MetadataSource answers metadata-only queries
type MetadataSource interface {
	Fetch(ctx context.Context, url string) (*model.VideoMetadata, error)
	Playlist(ctx context.Context, url string) (*model.Playlist, error)
}

// Inspector reports the tracks of a finished file
type Inspector interface {
	Inspect(ctx context.Context, path string) (*media.Report, error)
}

// App wires the command to its collaborators. Nothing here is global: the
// entry point builds one App per process, tests build their own.
type App struct {
	Printer    *Printer
	In         io.Reader
	LogOutput  io.Writer // receives log output with --verbose
	IsTerminal bool      // stdin is interactive; confirmations are asked only then
	Downloader download.Downloader
	Metadata   MetadataSource
	Inspector  Inspector
	Install    func(ctx context.Context) error
	Version    string
}

// Options holds the parsed flags
type Options struct {
	URL          string
	OutputDir    string
	Quality      string
	AudioOnly    bool
	Format       string
	Info         bool
	ListFormats  bool
	Interactive  bool
	Yes          bool
	Playlist     bool
	Verify       bool
	NoColor      bool
	Verbose      bool
	InstallYTDLP bool
}

// NewRootCommand builds the ytfetch command
func NewRootCommand(app *App) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "ytfetch [flags] URL",
		Short: "Download videos or audio with yt-dlp",
		Long: `Download a video or its audio track with yt-dlp.

High quality video (1080p and above) comes as separate video and audio
streams; FFmpeg is required to merge them. Use -i to pick a stream from
everything the video offers.`,
		Example: `  ytfetch "https://www.youtube.com/watch?v=VIDEO_ID"
  ytfetch -i "https://www.youtube.com/watch?v=VIDEO_ID"
  ytfetch -q 1080 -o downloads "https://www.youtube.com/watch?v=VIDEO_ID"
  ytfetch --audio-only --format mp3 "https://www.youtube.com/watch?v=VIDEO_ID"
  ytfetch --info "https://www.youtube.com/watch?v=VIDEO_ID"
  ytfetch --list-formats -q 720 "https://www.youtube.com/watch?v=VIDEO_ID"`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return model.Errorf(model.KindInvalidInput, "args", "expected exactly one URL, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.URL = args[0]
			if opts.NoColor {
				app.Printer.color = false
			}
			app.configureLogging(opts.Verbose)
			return app.Run(cmd.Context(), *opts)
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return model.NewError(model.KindInvalidInput, "flags", err.Error(), err)
	})

	f := cmd.Flags()
	f.StringVarP(&opts.OutputDir, "output", "o", model.DefaultOutputDir, "output directory")
	f.StringVarP(&opts.Quality, "quality", "q", string(model.QualityBest), "video quality: "+qualityChoices())
	f.BoolVar(&opts.AudioOnly, "audio-only", false, "download audio only")
	f.StringVar(&opts.Format, "format", "", "output format (video: mp4, webm, mkv, avi; audio: mp3, m4a, wav, flac, ogg)")
	f.BoolVar(&opts.Info, "info", false, "show video information without downloading")
	f.BoolVar(&opts.ListFormats, "list-formats", false, "list all available formats for the video")
	f.BoolVarP(&opts.Interactive, "interactive", "i", false, "choose the stream from the available formats")
	f.BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	f.BoolVar(&opts.Playlist, "playlist", false, "list the entries of a playlist URL without downloading")
	f.BoolVar(&opts.Verify, "verify", false, "inspect the downloaded file with ffprobe")
	f.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostic details to stderr")
	f.BoolVar(&opts.InstallYTDLP, "install-ytdlp", false, "download a yt-dlp binary if none is installed")

	return cmd
}

func qualityChoices() string {
	names := make([]string, len(model.Qualities))
	for i, q := range model.Qualities {
		names[i] = string(q)
	}
	return fmt.Sprint(names)
}

func (a *App) configureLogging(verbose bool) {
	if verbose && a.LogOutput != nil {
		log.SetOutput(a.LogOutput)
		return
	}
	log.SetOutput(io.Discard)
}

// Run executes one invocation
func (a *App) Run(ctx context.Context, opts Options) error {
	p := a.Printer

	// Everything the user typed is checked before any network call
	quality, err := model.ParseQuality(opts.Quality)
	if err != nil {
		return err
	}
	url := model.CleanURL(opts.URL)
	if err := model.ValidateURL(url); err != nil {
		return err
	}

	if opts.InstallYTDLP && a.Install != nil {
		p.Heading("Checking yt-dlp installation...")
		if err := a.Install(ctx); err != nil {
			return model.NewError(model.KindMissingDependency, "install", err.Error(), err)
		}
	}

	switch {
	case opts.Playlist:
		pl, err := a.Metadata.Playlist(ctx, url)
		if err != nil {
			return err
		}
		PrintPlaylist(p, pl)
		return nil

	case opts.Info:
		meta, err := a.Metadata.Fetch(ctx, url)
		if err != nil {
			return err
		}
		PrintInfo(p, meta)
		return nil

	case opts.ListFormats:
		meta, err := a.Metadata.Fetch(ctx, url)
		if err != nil {
			return err
		}
		PrintFormats(p, meta, quality, opts.AudioOnly)
		return nil
	}

	req := model.DownloadRequest{
		URL:          url,
		Quality:      quality,
		AudioOnly:    opts.AudioOnly,
		OutputFormat: opts.Format,
		OutputDir:    opts.OutputDir,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	return a.download(ctx, req, opts)
}

func (a *App) download(ctx context.Context, req model.DownloadRequest, opts Options) error {
	p := a.Printer
	confirm := a.IsTerminal && !opts.Yes
	in := bufio.NewReader(a.In)

	var (
		meta       *model.VideoMetadata
		stream     *model.Stream
		candidates model.FormatCandidate
		err        error
	)

	line := newProgressLine(p)

	if opts.Interactive || confirm {
		line.OnStage(model.StageFetchingMetadata)
		meta, err = a.Metadata.Fetch(ctx, req.URL)
		if err != nil {
			line.OnStage(model.StageFailed)
			return err
		}
	}

	if opts.Interactive {
		line.OnStage(model.StageSelecting)
		stream = ChooseStream(p, in, meta)
		if stream == nil {
			line.OnStage(model.StageIdle)
			p.Warn("Download cancelled by user.")
			return nil
		}
		candidates = format.Explicit(*stream)
		applyStream(&req, *stream)
		p.Println()
	}

	if confirm {
		PrintPreview(p, meta, req, stream)
		if !Confirm(p, in, "Do you want to proceed with the download?") {
			line.OnStage(model.StageIdle)
			p.Warn("Download cancelled by user.")
			return nil
		}
	}

	outcome, err := a.Downloader.Download(ctx, req, candidates, line)
	if err != nil {
		if model.IsKind(err, model.KindCancelled) {
			p.Warn("Download cancelled.")
		}
		return err
	}

	p.Success("Downloaded to %s", outcome.FilePath)

	if opts.Verify && a.Inspector != nil {
		report, err := a.Inspector.Inspect(ctx, outcome.FilePath)
		if err != nil {
			p.Warn("Could not verify the file: %v", err)
			return nil
		}
		p.Field("Tracks", report.Summary())
		switch {
		case req.AudioOnly && report.Kind() != model.KindAudioOnly:
			p.Warn("Expected an audio-only file.")
		case !req.AudioOnly && report.Kind() != model.KindVideoAudio:
			p.Warn("Expected both a video and an audio track.")
		}
	}
	return nil
}

// applyStream switches the request to the mode of a stream picked by hand
func applyStream(req *model.DownloadRequest, s model.Stream) {
	if s.Kind() != model.KindAudioOnly {
		if req.AudioOnly {
			req.AudioOnly = false
			req.OutputFormat = ""
		}
		return
	}
	if !req.AudioOnly {
		req.AudioOnly = true
		req.OutputFormat = ""
	}
	if req.OutputFormat == "" && slices.Contains(model.AudioFormats, s.Ext) {
		req.OutputFormat = s.Ext
	}
}

// ExitCode maps a command error onto the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return model.KindCancelled.ExitCode()
	}
	return model.KindOf(err).ExitCode()
}
