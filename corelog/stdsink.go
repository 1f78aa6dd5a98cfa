package corelog

import "log"

// StdSink logs through the standard library "log" package. A core.Node
// constructed with a nil sink does not fall back to it; it logs nothing.
type StdSink struct {
	Prefix string // e.g. "[node-A] "
}

func (s StdSink) Error(kind, detail string) {
	log.Printf("%sverification failed: %s: %s", s.Prefix, kind, detail)
}

func (s StdSink) Info(format string, args ...any) {
	log.Printf(s.Prefix+format, args...)
}
