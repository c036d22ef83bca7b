package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/ytget/ytfetch/internal/model"
)

// stageHeadings are printed when a request enters the stage
var stageHeadings = map[model.Stage]string{
	model.StageFetchingMetadata: "Fetching video information...",
	model.StageDownloading:      "Starting download...",
}

// progressLine renders download events as a single rewritten terminal line
type progressLine struct {
	p       *Printer
	mu      sync.Mutex
	life    model.Lifecycle
	width   int
	printed bool
}

func newProgressLine(p *Printer) *progressLine {
	return &progressLine{p: p}
}

// OnStage implements download.Observer. The command also reports the
// metadata and selection stages that come before the download.
func (l *progressLine) OnStage(stage model.Stage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.life.Advance(stage) {
		return
	}
	if heading, ok := stageHeadings[stage]; ok {
		l.p.Heading(heading)
	}
}

// OnProgress implements download.Observer
func (l *progressLine) OnProgress(pr model.Progress) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := formatProgress(pr)
	// pad to erase leftovers of a longer previous line
	if pad := l.width - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	l.width = len(line)
	l.p.Status(line)
	l.printed = true
}

// OnFinish implements download.Observer
func (l *progressLine) OnFinish(model.DownloadOutcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.printed {
		l.p.Println()
	}
}

func formatProgress(pr model.Progress) string {
	var b strings.Builder
	b.WriteString("Downloading...")
	if pr.Stream > 1 {
		fmt.Fprintf(&b, " [stream %d]", pr.Stream)
	}
	if pr.Total > 0 {
		fmt.Fprintf(&b, " %5.1f%% %s / %s", pr.Percent,
			humanize.Bytes(uint64(pr.Downloaded)), humanize.Bytes(uint64(pr.Total)))
	} else {
		fmt.Fprintf(&b, " %s", humanize.Bytes(uint64(pr.Downloaded)))
	}
	if pr.Speed > 0 {
		fmt.Fprintf(&b, " at %s/s", humanize.Bytes(uint64(pr.Speed)))
	}
	if pr.ETA > 0 {
		fmt.Fprintf(&b, " ETA %s", pr.GetETAString())
	}
	return b.String()
}
