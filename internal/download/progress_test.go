package download

import (
	"testing"

	"github.com/ytget/ytfetch/internal/model"
)

func TestProgressGate_FinishOnce(t *testing.T) {
	rec := &recorder{}
	g := newProgressGate(rec)
	g.stage(model.StageDownloading)

	if !g.finish(model.DownloadOutcome{Success: true}) {
		t.Fatal("first finish should be delivered")
	}
	if g.finish(model.DownloadOutcome{Success: false}) {
		t.Error("second finish should be ignored")
	}
	g.progress(Update{Downloaded: 5, Total: 10})
	g.stage(model.StageDownloading)

	if len(rec.finishes) != 1 || !rec.finishes[0].Success {
		t.Errorf("expected one successful finish, got %+v", rec.finishes)
	}
	if len(rec.progress) != 0 {
		t.Errorf("progress after finish must be dropped, got %d", len(rec.progress))
	}
	if len(rec.stages) != 2 || rec.stages[0] != model.StageDownloading || rec.stages[1] != model.StageDone {
		t.Errorf("unexpected stages %v", rec.stages)
	}
}

func TestProgressGate_FollowsLifecycle(t *testing.T) {
	rec := &recorder{}
	g := newProgressGate(rec)

	g.progress(Update{Downloaded: 5, Total: 10})
	if len(rec.progress) != 0 {
		t.Error("progress before the download stage must be dropped")
	}
	if g.finish(model.DownloadOutcome{Success: true}) {
		t.Error("success cannot be reported before downloading")
	}
	g.stage(model.StageSelecting)
	if len(rec.stages) != 0 {
		t.Errorf("selecting is not reachable from idle, got %v", rec.stages)
	}

	if !g.finish(model.DownloadOutcome{}) {
		t.Error("an idle request may fail")
	}
	if len(rec.stages) != 1 || rec.stages[0] != model.StageFailed || len(rec.finishes) != 1 {
		t.Errorf("expected a single failure, got stages %v finishes %d", rec.stages, len(rec.finishes))
	}
}

func TestProgressGate_Percent(t *testing.T) {
	tests := []struct {
		name        string
		update      Update
		wantPercent float64
		wantTotal   int64
	}{
		{"half", Update{Downloaded: 50, Total: 100}, 50, 100},
		{"unknown total", Update{Downloaded: 50}, 0, 0},
		{"overshoot", Update{Downloaded: 150, Total: 100}, 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			g := newProgressGate(rec)
			g.stage(model.StageDownloading)
			g.progress(tt.update)

			p := rec.progress[0]
			if p.Percent != tt.wantPercent || p.Total != tt.wantTotal {
				t.Errorf("got percent %v total %d, expected %v %d", p.Percent, p.Total, tt.wantPercent, tt.wantTotal)
			}
		})
	}
}

func TestProgressGate_KeepsTitle(t *testing.T) {
	rec := &recorder{}
	g := newProgressGate(rec)
	g.stage(model.StageDownloading)
	g.progress(Update{Downloaded: 1, Title: "Clip"})
	g.progress(Update{Downloaded: 2})

	if rec.progress[1].Title != "Clip" {
		t.Errorf("title should persist, got %q", rec.progress[1].Title)
	}
}

func TestProgressGate_NilObserver(t *testing.T) {
	g := newProgressGate(nil)
	g.stage(model.StageDownloading)
	g.progress(Update{Downloaded: 1})
	g.finish(model.DownloadOutcome{})
}
