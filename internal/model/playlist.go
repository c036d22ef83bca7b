package model

// PlaylistEntry is one video listed in a playlist
type PlaylistEntry struct {
	Index    int
	VideoID  string
	Title    string
	URL      string
	Duration string
}

// Playlist is the listing returned for a playlist URL
type Playlist struct {
	ID      string
	Title   string
	URL     string
	Entries []PlaylistEntry
}

// Len returns the number of entries
func (p *Playlist) Len() int {
	return len(p.Entries)
}
