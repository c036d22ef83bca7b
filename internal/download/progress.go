package download

import (
	"log"
	"sync"

	"github.com/ytget/ytfetch/internal/model"
)

// progressGate sits between the engine and an Observer. It folds per-stream
// byte counters into request-wide cumulative counts so the observer never
// sees bytes go backwards, forwards only stage moves the lifecycle allows,
// and delivers OnFinish once.
type progressGate struct {
	obs Observer

	mu        sync.Mutex
	life      model.Lifecycle
	base      int64 // bytes of streams already completed
	baseTotal int64
	lastBytes int64
	lastTotal int64
	stream    int
	emitted   int64
	title     string
}

func newProgressGate(obs Observer) *progressGate {
	if obs == nil {
		obs = nopObserver{}
	}
	return &progressGate{obs: obs, stream: 1}
}

func (g *progressGate) stage(s model.Stage) {
	g.mu.Lock()
	defer g.mu.Unlock()
	from := g.life.Current()
	if !g.life.Advance(s) {
		log.Printf("dropping stage change %s -> %s", from, s)
		return
	}
	g.obs.OnStage(s)
}

func (g *progressGate) progress(u Update) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.life.Current() != model.StageDownloading {
		return
	}

	// A counter going backwards means yt-dlp moved on to the next stream
	// (video then audio for a merge) or to another candidate.
	if u.Downloaded < g.lastBytes {
		g.base += g.lastBytes
		g.baseTotal += max(g.lastTotal, g.lastBytes)
		g.stream++
	}
	g.lastBytes = u.Downloaded
	g.lastTotal = u.Total

	cumulative := max(g.base+u.Downloaded, g.emitted)
	g.emitted = cumulative

	if u.Title != "" {
		g.title = u.Title
	}

	p := model.Progress{
		Downloaded: cumulative,
		Stream:     g.stream,
		Speed:      u.Speed,
		ETA:        u.ETA,
		Title:      g.title,
	}
	if u.Total > 0 {
		p.Total = max(g.baseTotal+u.Total, cumulative)
		p.Percent = min(float64(u.Downloaded)/float64(u.Total)*100, 100)
	}
	g.obs.OnProgress(p)
}

// finish delivers the terminal event. Later calls are ignored.
func (g *progressGate) finish(outcome model.DownloadOutcome) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := model.StageFailed
	if outcome.Success {
		next = model.StageDone
	}
	if !g.life.Advance(next) {
		return false
	}
	g.obs.OnStage(next)
	g.obs.OnFinish(outcome)
	return true
}

type nopObserver struct{}

func (nopObserver) OnStage(model.Stage)            {}
func (nopObserver) OnProgress(model.Progress)      {}
func (nopObserver) OnFinish(model.DownloadOutcome) {}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Stage    func(model.Stage)
	Progress func(model.Progress)
	Finish   func(model.DownloadOutcome)
}

// OnStage implements Observer
func (o ObserverFuncs) OnStage(s model.Stage) {
	if o.Stage != nil {
		o.Stage(s)
	}
}

// OnProgress implements Observer
func (o ObserverFuncs) OnProgress(p model.Progress) {
	if o.Progress != nil {
		o.Progress(p)
	}
}

// OnFinish implements Observer
func (o ObserverFuncs) OnFinish(out model.DownloadOutcome) {
	if o.Finish != nil {
		o.Finish(out)
	}
}
