// Package ui contains the Fyne desktop window. It collects one request at a
// time (URL, mode, quality, output format, directory, optionally a stream
// picked from the format list), runs it on a background goroutine and
// marshals progress back with fyne.Do. All strings go through Localization.
package ui
