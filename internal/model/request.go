package model

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Quality is a user-facing quality tier
type Quality string

const (
	QualityBest  Quality = "best"
	QualityWorst Quality = "worst"
	Quality4K    Quality = "4k"
	Quality2160  Quality = "2160"
	Quality1440  Quality = "1440"
	Quality1080  Quality = "1080"
	Quality720   Quality = "720"
	Quality480   Quality = "480"
	Quality360   Quality = "360"
)

// Qualities lists every accepted tier in display order
var Qualities = []Quality{
	QualityBest, QualityWorst, Quality4K, Quality2160, Quality1440,
	Quality1080, Quality720, Quality480, Quality360,
}

// QualityDescriptions holds the help text shown next to each tier
var QualityDescriptions = map[Quality]string{
	QualityBest:  "Best quality available",
	Quality4K:    "4K Ultra HD (2160p)",
	Quality2160:  "4K Ultra HD (2160p)",
	Quality1440:  "2K Quad HD (1440p)",
	Quality1080:  "Full HD (1080p)",
	Quality720:   "HD Ready (720p)",
	Quality480:   "Standard Definition (480p)",
	Quality360:   "Low Quality (360p)",
	QualityWorst: "Lowest quality available",
}

// ParseQuality normalizes s and checks it against the enumerated tiers
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if q == "" {
		return QualityBest, nil
	}
	if !slices.Contains(Qualities, q) {
		return "", Errorf(KindInvalidInput, "validate", "unknown quality %q (choose from %s)", s, qualityList())
	}
	return q, nil
}

// Height returns the resolution ceiling for numeric tiers. The second value is
// false for best and worst.
func (q Quality) Height() (int, bool) {
	if q == Quality4K {
		return 2160, true
	}
	h, err := strconv.Atoi(string(q))
	if err != nil {
		return 0, false
	}
	return h, true
}

// Description returns the help text of the tier, or "" for unknown values
func (q Quality) Description() string {
	return QualityDescriptions[q]
}

// Valid reports whether q belongs to the enumerated set
func (q Quality) Valid() bool {
	return slices.Contains(Qualities, q)
}

func qualityList() string {
	names := make([]string, len(Qualities))
	for i, q := range Qualities {
		names[i] = string(q)
	}
	return strings.Join(names, ", ")
}

// Supported output containers/encodings
var (
	VideoFormats = []string{"mp4", "webm", "mkv", "avi"}
	AudioFormats = []string{"mp3", "m4a", "wav", "flac", "ogg"}
)

// Defaults applied when the request leaves OutputFormat empty
const (
	DefaultVideoFormat  = "mp4"
	DefaultAudioFormat  = "mp3"
	DefaultAudioQuality = "192"
	DefaultOutputDir    = "downloads"
)

// DownloadRequest is everything one invocation needs to fetch a file
type DownloadRequest struct {
	URL          string
	Quality      Quality
	AudioOnly    bool
	OutputFormat string // empty means the default for the mode
	OutputDir    string
}

// Validate checks the request before anything touches the network
func (r *DownloadRequest) Validate() error {
	if err := ValidateURL(r.URL); err != nil {
		return err
	}
	if !r.Quality.Valid() {
		return Errorf(KindInvalidInput, "validate", "unknown quality %q (choose from %s)", r.Quality, qualityList())
	}
	if r.OutputFormat != "" {
		f := strings.ToLower(r.OutputFormat)
		if r.AudioOnly && !slices.Contains(AudioFormats, f) {
			return Errorf(KindInvalidInput, "validate", "format %q is not an audio format (choose from %s)",
				r.OutputFormat, strings.Join(AudioFormats, ", "))
		}
		if !r.AudioOnly && !slices.Contains(VideoFormats, f) {
			return Errorf(KindInvalidInput, "validate", "format %q is not a video format (choose from %s)",
				r.OutputFormat, strings.Join(VideoFormats, ", "))
		}
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return Errorf(KindInvalidInput, "validate", "output directory is empty")
	}
	return nil
}

// EffectiveFormat returns the output format with the mode default applied
func (r *DownloadRequest) EffectiveFormat() string {
	if r.OutputFormat != "" {
		return strings.ToLower(r.OutputFormat)
	}
	if r.AudioOnly {
		return DefaultAudioFormat
	}
	return DefaultVideoFormat
}

// ValidateURL accepts non-empty http(s) URLs with a host
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Errorf(KindInvalidInput, "validate", "URL is empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return NewError(KindInvalidInput, "validate", "invalid URL", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Errorf(KindInvalidInput, "validate", "URL must start with http:// or https://")
	}
	if parsed.Host == "" {
		return Errorf(KindInvalidInput, "validate", "URL has no host")
	}
	return nil
}

// CleanURL strips whitespace and control characters pasted along with a URL
func CleanURL(raw string) string {
	clean := strings.ReplaceAll(raw, "\n", "")
	clean = strings.ReplaceAll(clean, "\r", "")
	clean = strings.ReplaceAll(clean, "\t", " ")
	return strings.TrimSpace(clean)
}
