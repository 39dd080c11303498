package journal

// Interface defines the journal contract for dependency injection and testing.
type Interface interface {
	BeginSession(mode string) (string, error)
	Record(e Entry) error
	EndSession(id string) error
	Totals(sessionID string) (Totals, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
