package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytfetch/internal/model"
)

// Codec value yt-dlp reports for an absent track
const NoCodec = "none"

// TypePlaylist is the _type yt-dlp reports for playlist results
const TypePlaylist = "playlist"

// VideoFromInfo turns yt-dlp's extracted info into VideoMetadata.
// Formats carrying neither audio nor video (storyboards) are dropped.
func VideoFromInfo(info *ytdlp.ExtractedInfo) (*model.VideoMetadata, error) {
	if info == nil {
		return nil, errors.New("yt-dlp returned no video information")
	}
	if string(info.Type) == TypePlaylist {
		return nil, model.Errorf(model.KindInvalidInput, "parse", "URL points to a playlist, not a single video")
	}

	title := deref(info.Title)
	if info.ID == "" && title == "" {
		return nil, fmt.Errorf("yt-dlp output has no video id or title")
	}

	uploader := deref(info.Uploader)
	if uploader == "" {
		uploader = deref(info.Channel)
	}

	meta := &model.VideoMetadata{
		ID:              info.ID,
		Title:           title,
		Uploader:        uploader,
		DurationSeconds: int(number(info.Duration)),
		ViewCount:       int64(number(info.ViewCount)),
		UploadDate:      formatUploadDate(deref(info.UploadDate)),
		Description:     deref(info.Description),
		WebpageURL:      deref(info.WebpageURL),
	}

	for _, f := range info.Formats {
		if f == nil {
			continue
		}
		s, ok := toStream(f)
		if !ok {
			continue
		}
		meta.Streams = append(meta.Streams, s)
	}
	model.SortStreams(meta.Streams)

	return meta, nil
}

func toStream(f *ytdlp.ExtractedFormat) (model.Stream, bool) {
	vcodec, acodec := deref(f.VCodec), deref(f.ACodec)
	formatID := deref(f.FormatID)
	hasVideo := hasCodec(vcodec)
	hasAudio := hasCodec(acodec)
	if !hasVideo && !hasAudio || formatID == "" {
		return model.Stream{}, false
	}

	size := int64(number(f.FileSize))
	if size <= 0 {
		size = int64(number(f.FileSizeApprox))
	}

	width, height := int(number(f.Width)), int(number(f.Height))
	resolution := deref(f.Resolution)
	if resolution == "" && width > 0 && height > 0 {
		resolution = fmt.Sprintf("%dx%d", width, height)
	}
	if !hasVideo {
		resolution = "audio only"
	}

	return model.Stream{
		FormatID:     formatID,
		Ext:          deref(f.Extension),
		Resolution:   resolution,
		Width:        width,
		Height:       height,
		FPS:          number(f.FPS),
		VCodec:       vcodec,
		ACodec:       acodec,
		ApproxSize:   size,
		AudioBitrate: number(f.ABR),
		Note:         deref(f.FormatNote),
		HasVideo:     hasVideo,
		HasAudio:     hasAudio,
	}, true
}

// yt-dlp leaves most fields unset depending on the site
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func number[T ~int | ~int64 | ~float64](p *T) float64 {
	if p == nil {
		return 0
	}
	return float64(*p)
}

func hasCodec(codec string) bool {
	c := strings.TrimSpace(codec)
	return c != "" && c != NoCodec
}

// formatUploadDate turns YYYYMMDD into YYYY-MM-DD, leaving other input as is
func formatUploadDate(d string) string {
	if len(d) != 8 || !isDigits(d) {
		return d
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:]
}
