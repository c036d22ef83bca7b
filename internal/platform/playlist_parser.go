package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/ytdlp/v2/client"

	"github.com/ytget/ytfetch/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 30 * time.Second
)

// HTTP client settings for playlist enumeration
const (
	PlaylistHTTPRetries = 3
	PlaylistUserAgent   = "ytfetch/1.0"
)

// URL parameters
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate    = "https://www.youtube.com/watch?v=%s"
	YouTubePlaylistURLTemplate = "https://www.youtube.com/playlist?list=%s"
)

// Default values
const (
	DefaultPlaylistTitle = "Untitled Playlist"
	DefaultDuration      = "Unknown"
	MinPrefixLength      = 10
	MaxTitleLength       = 50
	TitleTruncateSuffix  = "..."
)

// PlaylistItemsFetcher lists the items of a playlist by ID
type PlaylistItemsFetcher func(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error)

// PlaylistParserService enumerates YouTube playlists without downloading
type PlaylistParserService struct {
	timeout time.Duration
	fetch   PlaylistItemsFetcher
}

// NewPlaylistParserService creates a parser backed by the ytdlp library
func NewPlaylistParserService() *PlaylistParserService {
	p := &PlaylistParserService{timeout: DefaultPlaylistParseTimeout}
	p.fetch = p.fetchWithLibrary
	return p
}

// NewPlaylistParserServiceWith creates a parser with a custom item source
func NewPlaylistParserServiceWith(fetch PlaylistItemsFetcher) *PlaylistParserService {
	return &PlaylistParserService{timeout: DefaultPlaylistParseTimeout, fetch: fetch}
}

// SetTimeout sets the timeout for playlist parsing
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether url carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// ParsePlaylist lists the entries of a playlist URL
func (p *PlaylistParserService) ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	if !IsPlaylistURL(url) {
		return nil, model.Errorf(model.KindInvalidInput, "playlist", "invalid playlist URL format: %s", url)
	}

	playlistID, err := extractPlaylistID(url)
	if err != nil {
		return nil, model.NewError(model.KindInvalidInput, "playlist", err.Error(), err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.fetch(ctx, playlistID)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, model.NewError(model.KindNetworkFailure, "playlist", "timed out listing playlist", err)
		}
		return nil, model.NewError(model.KindResourceUnavailable, "playlist", fmt.Sprintf("failed to get playlist items: %v", err), err)
	}

	for i := range entries {
		entries[i].Index = i + 1
		if entries[i].URL == "" {
			entries[i].URL = fmt.Sprintf(YouTubeVideoURLTemplate, entries[i].VideoID)
		}
		if entries[i].Duration == "" {
			entries[i].Duration = DefaultDuration
		}
	}

	return &model.Playlist{
		ID:      playlistID,
		Title:   extractPlaylistTitle(entries),
		URL:     fmt.Sprintf(YouTubePlaylistURLTemplate, playlistID),
		Entries: entries,
	}, nil
}

func (p *PlaylistParserService) fetchWithLibrary(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	c := client.NewWith(client.Config{
		Timeout:   p.timeout,
		Retries:   PlaylistHTTPRetries,
		UserAgent: PlaylistUserAgent,
	})
	d := ytdlp.New().WithHTTPClient(c.HTTPClient)

	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
		})
	}
	return entries, nil
}

// extractPlaylistID extracts the playlist ID from a YouTube playlist URL.
// Supported forms:
// - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
// - https://www.youtube.com/playlist?list=PLAYLIST_ID
func extractPlaylistID(url string) (string, error) {
	parts := strings.SplitN(url, PlaylistURLParam, 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	playlistID, _, _ := strings.Cut(parts[1], PlaylistParamSeparator)
	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return playlistID, nil
}

// extractPlaylistTitle derives a title from the entries: the common prefix
// of the first two titles when it is long enough, else the first title
func extractPlaylistTitle(entries []model.PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistTitle
	}

	if len(entries) > 1 {
		prefix := strings.TrimSpace(findCommonPrefix(entries[0].Title, entries[1].Title))
		if len(prefix) > MinPrefixLength {
			return prefix
		}
	}

	title := []rune(entries[0].Title)
	if len(title) > MaxTitleLength {
		return string(title[:MaxTitleLength]) + TitleTruncateSuffix
	}
	return string(title)
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
