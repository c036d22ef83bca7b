package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ytget/ytfetch/internal/format"
	"github.com/ytget/ytfetch/internal/model"
)

// Listing limits
const (
	MaxVideoRows       = 15
	MaxAudioRows       = 5
	DescriptionExcerpt = 200
	SelectedMarker     = " ← SELECTED"
	separatorWidth     = 50
)

// PrintInfo renders the --info output
func PrintInfo(p *Printer, meta *model.VideoMetadata) {
	p.Heading("Video Information:")
	p.Field("Title", meta.Title)
	p.Field("Uploader", valueOr(meta.Uploader, "Unknown"))
	p.Field("Duration", meta.DurationString())
	p.Field("View Count", humanize.Comma(meta.ViewCount))
	p.Field("Upload Date", valueOr(meta.UploadDate, "Unknown"))
	p.Field("Description", excerpt(meta.Description, DescriptionExcerpt))
}

// PrintFormats renders the --list-formats output. The row the quality tier
// would pick is marked.
func PrintFormats(p *Printer, meta *model.VideoMetadata, quality model.Quality, audioOnly bool) {
	p.Heading("Available formats for: " + meta.Title)
	p.Heading(strings.Repeat("=", separatorWidth))
	if audioOnly {
		p.Warn("Mode: Audio Only")
	} else {
		p.Warn("Selected Quality: %s", quality)
	}
	p.Println()

	video := meta.VideoStreams()
	audio := meta.AudioStreams()

	if len(video) == 0 && len(audio) == 0 {
		p.Warn("No downloadable streams listed.")
		return
	}

	if !audioOnly && len(video) > 0 {
		p.Section("VIDEO FORMATS:")
		for _, s := range video[:min(len(video), MaxVideoRows)] {
			row := "  " + videoRow(s)
			if format.WouldSelect(s, quality, audioOnly) {
				p.Highlight(row + SelectedMarker)
			} else {
				p.Println(row)
			}
		}
	}

	if len(audio) > 0 {
		p.Println()
		p.Section("AUDIO FORMATS:")
		for i, s := range audio[:min(len(audio), MaxAudioRows)] {
			row := "  " + audioRow(s)
			if audioOnly && i == 0 {
				p.Highlight(row + SelectedMarker)
			} else {
				p.Println(row)
			}
		}
	}
}

// PrintPreview renders what a download is about to fetch
func PrintPreview(p *Printer, meta *model.VideoMetadata, req model.DownloadRequest, stream *model.Stream) {
	p.Heading("Download Preview:")
	p.Field("Title", meta.Title)
	p.Field("Uploader", valueOr(meta.Uploader, "Unknown"))
	p.Field("Duration", meta.DurationString())
	if stream != nil {
		p.Field("Stream", streamLabel(*stream))
	} else {
		p.Field("Quality", qualityLabel(req.Quality))
	}
	mode := "Video + Audio"
	if req.AudioOnly {
		mode = "Audio Only"
	}
	p.Field("Mode", mode)
	p.Field("Format", req.EffectiveFormat())
	p.Field("Output Directory", req.OutputDir)
	p.Println()
}

// PrintPlaylist renders the --playlist output
func PrintPlaylist(p *Printer, pl *model.Playlist) {
	p.Heading(fmt.Sprintf("Playlist: %s (%d videos)", pl.Title, pl.Len()))
	p.Heading(strings.Repeat("=", separatorWidth))
	for _, e := range pl.Entries {
		p.Printf("%s %s\n     %s\n", p.Number(e.Index), e.Title, e.URL)
	}
}

// ChooseStream lists every stream numbered, plus a cancel entry, and reads
// the user's choice. It returns nil when the user cancels or input ends.
func ChooseStream(p *Printer, in io.Reader, meta *model.VideoMetadata) *model.Stream {
	p.Heading("Video: " + meta.Title)
	p.Heading("Uploader: " + valueOr(meta.Uploader, "Unknown"))
	p.Heading("Duration: " + meta.DurationString())
	p.Heading(strings.Repeat("=", separatorWidth+10))

	options := append(meta.VideoStreams(), meta.AudioStreams()...)
	if len(options) == 0 {
		p.Warn("No downloadable streams listed.")
		return nil
	}

	n := 1
	if video := meta.VideoStreams(); len(video) > 0 {
		p.Section("VIDEO OPTIONS:")
		for _, s := range video {
			p.Printf("  %s %s\n", p.Number(n), streamLabel(s))
			n++
		}
	}
	if audio := meta.AudioStreams(); len(audio) > 0 {
		p.Println()
		p.Section("AUDIO OPTIONS:")
		for _, s := range audio {
			p.Printf("  %s %s\n", p.Number(n), streamLabel(s))
			n++
		}
	}

	cancel := len(options) + 1
	p.Printf("\n%s Cancel download\n", p.Number(cancel))

	reader := bufio.NewReader(in)
	for {
		p.Println()
		p.Prompt(fmt.Sprintf("Select an option (1-%d): ", cancel))

		line, err := reader.ReadString('\n')
		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case convErr != nil && err != nil:
			// input closed without a usable answer
			p.Println()
			return nil
		case convErr != nil:
			p.Error("Please enter a valid number.")
		case choice == cancel:
			return nil
		case choice >= 1 && choice <= len(options):
			selected := options[choice-1]
			p.Success("Selected: %s", streamLabel(selected))
			return &selected
		default:
			p.Error("Invalid option. Please choose between 1 and %d.", cancel)
		}
		if err != nil {
			return nil
		}
	}
}

// Confirm asks a yes/no question; only "y" and "yes" count as yes
func Confirm(p *Printer, in io.Reader, question string) bool {
	p.Prompt(question + " (y/n): ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func videoRow(s model.Stream) string {
	height := "unknown"
	if s.Height > 0 {
		height = fmt.Sprintf("%dp", s.Height)
	}
	fps := ""
	if s.FPS > 0 {
		fps = fmt.Sprintf(" %gfps", s.FPS)
	}
	return fmt.Sprintf("%s: %s %s %s%s [%s]%s", s.FormatID, height, s.Ext, s.Codec(), fps, s.Kind(), sizeSuffix(s))
}

func audioRow(s model.Stream) string {
	abr := ""
	if s.AudioBitrate > 0 {
		abr = fmt.Sprintf(" %gkbps", s.AudioBitrate)
	}
	return fmt.Sprintf("%s: %s %s%s%s", s.FormatID, s.Ext, s.Codec(), abr, sizeSuffix(s))
}

// streamLabel is the one-line description used by the chooser and preview
func streamLabel(s model.Stream) string {
	switch s.Kind() {
	case model.KindAudioOnly:
		return fmt.Sprintf("Audio %s %s %s%s", s.Ext, s.Codec(), s.QualityLabel(), sizeSuffix(s))
	default:
		return fmt.Sprintf("%s %s %s [%s]%s", s.QualityLabel(), s.Ext, truncate(s.Codec(), 10), s.Kind(), sizeSuffix(s))
	}
}

func sizeSuffix(s model.Stream) string {
	if s.ApproxSize <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", humanize.Bytes(uint64(s.ApproxSize)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "(none)"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func qualityLabel(q model.Quality) string {
	if d := q.Description(); d != "" {
		return fmt.Sprintf("%s - %s", q, d)
	}
	return string(q)
}
