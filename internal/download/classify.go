package download

import (
	"context"
	"errors"
	"strings"

	"github.com/ytget/ytfetch/internal/model"
)

// Marker substrings found in yt-dlp error output, matched case-insensitively.
// Order matters: the first kind whose marker matches wins.
var classifyMarkers = []struct {
	kind    model.ErrorKind
	markers []string
}{
	{model.KindFormatUnavailable, []string{
		"requested format is not available",
		"requested format not available",
	}},
	{model.KindMissingDependency, []string{
		"ffmpeg not found",
		"ffprobe and ffmpeg not found",
		"ffmpeg is not installed",
		"executable file not found",
	}},
	{model.KindInvalidInput, []string{
		"unsupported url",
		"is not a valid url",
		"incomplete youtube id",
	}},
	{model.KindResourceUnavailable, []string{
		"private video",
		"video unavailable",
		"this video is unavailable",
		"content unavailable",
		"has been removed",
		"has been terminated",
		"available in your country",
		"blocked it in your country",
		"sign in to confirm",
		"members-only",
		"members only",
		"join this channel",
		"age-restricted",
		"this live event will begin",
		"premieres in",
		"http error 404",
		"http error 403",
		"http error 410",
	}},
	{model.KindNetworkFailure, []string{
		"unable to download webpage",
		"unable to download api page",
		"getaddrinfo",
		"name or service not known",
		"temporary failure in name resolution",
		"network is unreachable",
		"connection reset",
		"connection refused",
		"remote end closed connection",
		"timed out",
		"http error 429",
		"http error 500",
		"http error 502",
		"http error 503",
		"http error 504",
		"ssl:",
	}},
	{model.KindIOFailure, []string{
		"no space left on device",
		"permission denied",
		"read-only file system",
		"unable to open for writing",
	}},
}

// Classify maps an engine failure onto the error taxonomy.
// Errors that are already classified are returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var classified *model.Error
	if errors.As(err, &classified) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return model.NewError(model.KindCancelled, op, "cancelled", err)
	}

	text := err.Error()
	var ee *EngineError
	if errors.As(err, &ee) {
		text = ee.Stderr + "\n" + ee.Err.Error()
	}

	kind := classifyText(text)
	return model.NewError(kind, op, err.Error(), err)
}

func classifyText(text string) model.ErrorKind {
	lower := strings.ToLower(text)
	for _, group := range classifyMarkers {
		for _, marker := range group.markers {
			if strings.Contains(lower, marker) {
				return group.kind
			}
		}
	}
	return model.KindUnknown
}
