// Package model defines shared data structures.
package model

// Quote is a single passage to type, with its attribution.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Work   string `json:"work"`
	Year   int    `json:"year"`
}

// Quote sources understood by the CLI and config file.
const (
	SourceFile    = "file"
	SourceLibrary = "library"
)

// Config defines play settings.
type Config struct {
	QuotesPath  string
	LibraryPath string
	Source      string
	Debug       bool
	LogFile     string
}
