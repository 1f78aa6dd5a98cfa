// Package corelog is the configurable logging sink the core depends on.
// The source used a process-wide Python logger; core.Node instead holds a
// Sink injected at construction so verification and block-acceptance
// failures can be reported without the core importing a concrete logging
// library.
package corelog

// Sink is the only logging capability the core needs: report a rejection
// (by kind and a human-readable detail) and report informational progress.
type Sink interface {
	Error(kind, detail string)
	Info(format string, args ...any)
}

// Nop discards everything. Useful in tests that only care about return
// values, not log output.
type Nop struct{}

func (Nop) Error(string, string) {}
func (Nop) Info(string, ...any)  {}
