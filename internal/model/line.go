package model

// LogLine is one raw input line as delivered by a source.
type LogLine struct {
	Number int    // 1-based position in the stream
	Text   string // exact content with the trailing newline stripped
}
