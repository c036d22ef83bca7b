package format

import (
	"fmt"

	"github.com/ytget/ytfetch/internal/model"
)

// Fallback expressions. Each one matches as long as the video exposes any stream.
const (
	FallbackBest  = "best/bestvideo*/bestaudio"
	FallbackWorst = "worst/worstvideo*/worstaudio"
	BestAudio     = "bestaudio/best"
	bestMerged    = "bestvideo+bestaudio"
	bestCombined  = "best"
)

// Select returns the candidate expressions for a tier, most preferred first.
// The tier must already be valid; see model.ParseQuality.
func Select(quality model.Quality, audioOnly bool) model.FormatCandidate {
	if audioOnly {
		return model.FormatCandidate{BestAudio}
	}

	if quality == model.QualityWorst {
		return model.FormatCandidate{FallbackWorst}
	}

	if height, ok := quality.Height(); ok {
		return model.FormatCandidate{
			fmt.Sprintf("bestvideo[height<=%d]+bestaudio", height),
			fmt.Sprintf("best[height<=%d]", height),
			FallbackBest,
		}
	}

	return model.FormatCandidate{bestMerged, bestCombined, FallbackBest}
}

// Explicit builds a single-entry candidate for a stream the user picked.
// Video-only streams get the best audio merged in.
func Explicit(stream model.Stream) model.FormatCandidate {
	if stream.Kind() == model.KindVideoOnly {
		return model.FormatCandidate{stream.FormatID + "+bestaudio"}
	}
	return model.FormatCandidate{stream.FormatID}
}

// WouldSelect reports whether a listed stream is the one the tier targets.
// Used to mark rows in format listings.
func WouldSelect(stream model.Stream, quality model.Quality, audioOnly bool) bool {
	if audioOnly {
		return false
	}
	if quality == "" || quality == model.QualityBest {
		return stream.Kind() == model.KindVideoAudio && stream.Height > 0
	}
	height, ok := quality.Height()
	if !ok || stream.Height == 0 {
		return false
	}
	return stream.Height == height && stream.HasVideo
}
