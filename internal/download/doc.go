package download

// Package download implements the extraction client built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It walks the format candidates in
// order, classifies yt-dlp failures, stages output until it is complete and
// reports progress to an Observer.
