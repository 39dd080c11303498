package journal

import (
	"fmt"
	"sync"
)

// Mock is an in-memory journal for tests.
type Mock struct {
	mu       sync.Mutex
	sessions []string
	ended    map[string]bool
	entries  []Entry
	err      error
	closed   bool
}

// NewMock creates an empty mock journal.
func NewMock() *Mock {
	return &Mock{ended: make(map[string]bool)}
}

func (m *Mock) BeginSession(_ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	id := fmt.Sprintf("session-%d", len(m.sessions)+1)
	m.sessions = append(m.sessions, id)
	return id, nil
}

func (m *Mock) Record(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *Mock) EndSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ended[id] = true
	return nil
}

func (m *Mock) Totals(sessionID string) (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t Totals
	for _, e := range m.entries {
		if e.SessionID != sessionID {
			continue
		}
		if e.Action == "album" {
			t.Moved++
		} else {
			t.Trashed++
		}
	}
	return t, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

func (m *Mock) IsEnded(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended[id]
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
