// Package cli implements the terminal front end: the cobra command, colored
// output, the interactive stream chooser and the progress line.
package cli
