// Package session implements the media queue and shortcut dispatch state
// machine. Machine.Apply is pure: it never performs I/O, it returns the
// effects the caller must carry out and feed back as events.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrNoMoreMedia is reported when a fetch returns no items.
var ErrNoMoreMedia = errors.New("no more media")

// Mode selects how the queue is filled and consumed.
type Mode int

const (
	// Sequential walks a fixed list of picked items once, then ends.
	Sequential Mode = iota
	// RandomRefill draws random items from a cache and refetches when it
	// empties. It never ends on its own.
	RandomRefill
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case RandomRefill:
		return "random"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "sequential" or "random".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq":
		return Sequential, nil
	case "random", "random-refill":
		return RandomRefill, nil
	default:
		return Sequential, fmt.Errorf("unknown session mode %q", s)
	}
}

// State is the machine's current state.
type State int

const (
	Idle State = iota
	Loading
	Displaying
	Dispatching
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Displaying:
		return "displaying"
	case Dispatching:
		return "dispatching"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Rand is the random source used to pick items in RandomRefill mode.
type Rand interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns the process-wide random source.
func DefaultRand() Rand { return globalRand{} }

// User-facing notices.
const (
	msgTrashed       = "Çöp kutusuna taşındı."
	msgMovedToAlbum  = "\"%s\" albümüne taşındı."
	msgCompleted     = "Tüm seçilen fotoğraflar düzenlendi!"
	msgNoMoreMedia   = "Gösterilecek medya bulunamadı."
	msgNothingPicked = "Hiç medya seçilmedi."
)
