package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ytget/ytfetch/internal/model"
)

// streamRow is the list label of a stream: id, kind, quality, ext, codec, size
func streamRow(s model.Stream) string {
	parts := []string{s.FormatID, string(s.Kind()), s.QualityLabel(), s.Ext}
	if codec := s.Codec(); codec != "" {
		parts = append(parts, codec)
	}
	if s.ApproxSize > 0 {
		parts = append(parts, humanize.Bytes(uint64(s.ApproxSize)))
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// progressFraction prefers the cumulative byte counts so the bar does not
// jump back when a second stream starts
func progressFraction(pr model.Progress) float64 {
	if pr.Total > 0 {
		return min(float64(pr.Downloaded)/float64(pr.Total), 1)
	}
	return min(pr.Percent/100, 1)
}

func progressStatus(pr model.Progress) string {
	parts := []string{}
	if pr.Title != "" {
		parts = append(parts, pr.Title)
	}
	if pr.Total > 0 {
		parts = append(parts, fmt.Sprintf("%s / %s", humanize.Bytes(uint64(pr.Downloaded)), humanize.Bytes(uint64(pr.Total))))
	} else {
		parts = append(parts, humanize.Bytes(uint64(pr.Downloaded)))
	}
	if pr.Speed > 0 {
		parts = append(parts, humanize.Bytes(uint64(pr.Speed))+"/s")
	}
	parts = append(parts, "ETA "+pr.GetETAString())
	return strings.Join(parts, MiddleDotSeparator)
}

func valueOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return DashPlaceholder
	}
	return s
}
