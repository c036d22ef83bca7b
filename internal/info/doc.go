// Package info answers metadata-only questions about a URL: title,
// uploader, duration and the list of available streams. It never writes
// to the output directory.
package info
