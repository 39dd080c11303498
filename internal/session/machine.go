package session

import (
	"fmt"
	"slices"

	"github.com/llehouerou/phototriage/internal/errmsg"
	"github.com/llehouerou/phototriage/internal/media"
	"github.com/llehouerou/phototriage/internal/shortcut"
)

// Machine is the session state. It is a value: Apply returns a new Machine
// and never mutates the receiver or any slice it shares with it.
type Machine struct {
	mode     Mode
	rand     Rand
	bindings map[string]shortcut.Binding // read-only snapshot

	state   State
	queue   []media.Item // Sequential: fixed list. RandomRefill: remaining cache.
	index   int          // Sequential cursor
	current media.Item
	pending shortcut.Binding // binding in flight while Dispatching
	applied int
}

// New creates an idle machine. bindings is owned by the machine from now
// on; pass a snapshot. A nil rand uses DefaultRand.
func New(mode Mode, bindings map[string]shortcut.Binding, rand Rand) Machine {
	if rand == nil {
		rand = DefaultRand()
	}
	return Machine{
		mode:     mode,
		rand:     rand,
		bindings: bindings,
		state:    Idle,
	}
}

// Mode returns the session mode.
func (m Machine) Mode() Mode { return m.mode }

// State returns the current state.
func (m Machine) State() State { return m.state }

// Current returns the current item, if one is current.
func (m Machine) Current() (media.Item, bool) {
	if m.state != Displaying && m.state != Dispatching {
		return media.Item{}, false
	}
	return m.current, true
}

// Index returns the Sequential cursor.
func (m Machine) Index() int { return m.index }

// Len returns the queue length in Sequential mode and the remaining cache
// size in RandomRefill mode.
func (m Machine) Len() int { return len(m.queue) }

// Applied returns the number of successful dispatches.
func (m Machine) Applied() int { return m.applied }

// Binds reports whether key would be consumed by the session: an item is
// current and the key is bound. Keys for which it returns false belong to
// the application.
func (m Machine) Binds(key string) bool {
	if m.state != Displaying && m.state != Dispatching {
		return false
	}
	_, ok := m.bindings[key]
	return ok
}

// Apply feeds one event into the machine.
func (m Machine) Apply(ev Event) (Machine, []Effect) {
	switch ev := ev.(type) {
	case Start:
		return m.start(ev)
	case Fetched:
		return m.fetched(ev)
	case KeyPressed:
		return m.keyPressed(ev)
	case Dispatched:
		return m.dispatched(ev)
	default:
		return m, nil
	}
}

func (m Machine) start(ev Start) (Machine, []Effect) {
	if m.state != Idle {
		return m, nil
	}
	if m.mode == Sequential {
		if len(ev.IDs) == 0 {
			m.state = Ended
			return m, []Effect{
				Notify{Kind: NoticeError, Message: msgNothingPicked, Err: ErrNoMoreMedia},
				End{Applied: m.applied},
			}
		}
		m.state = Loading
		return m, []Effect{Fetch{IDs: slices.Clone(ev.IDs)}}
	}
	m.state = Loading
	return m, []Effect{Fetch{}}
}

func (m Machine) fetched(ev Fetched) (Machine, []Effect) {
	if m.state != Loading {
		return m, nil
	}

	var notice Notify
	switch {
	case ev.Err != nil:
		op := errmsg.OpMediaLoad
		if m.mode == RandomRefill {
			op = errmsg.OpRandomLoad
		}
		notice = Notify{Kind: NoticeError, Message: errmsg.User(op, ev.Err), Err: ev.Err}
	case len(ev.Items) == 0:
		notice = Notify{Kind: NoticeError, Message: msgNoMoreMedia, Err: ErrNoMoreMedia}
	default:
		if m.mode == Sequential {
			m.queue = ev.Items
			m.index = 0
			return m.showIndex()
		}
		m.queue = ev.Items
		return m.pick()
	}

	if m.mode == Sequential {
		m.state = Ended
		return m, []Effect{notice, End{Applied: m.applied}}
	}
	m.state = Idle
	return m, []Effect{notice}
}

func (m Machine) keyPressed(ev KeyPressed) (Machine, []Effect) {
	if m.state != Displaying {
		return m, nil
	}
	b, ok := m.bindings[ev.Key]
	if !ok {
		return m, nil
	}
	m.state = Dispatching
	m.pending = b
	return m, []Effect{Dispatch{Item: m.current, Binding: b}}
}

func (m Machine) dispatched(ev Dispatched) (Machine, []Effect) {
	if m.state != Dispatching {
		return m, nil
	}
	b := m.pending
	m.pending = shortcut.Binding{}
	if ev.Err != nil {
		m.state = Displaying
		return m, []Effect{Notify{
			Kind:    NoticeError,
			Message: errmsg.User(errmsg.OpAction, ev.Err),
			Err:     ev.Err,
		}}
	}

	m.applied++
	success := Notify{Kind: NoticeSuccess, Message: successMessage(b)}

	var next []Effect
	if m.mode == Sequential {
		m.index++
		if m.index >= len(m.queue) {
			m.state = Ended
			m.current = media.Item{}
			return m, []Effect{
				success,
				Notify{Kind: NoticeCompleted, Message: msgCompleted},
				End{Applied: m.applied},
			}
		}
		m, next = m.showIndex()
	} else {
		if len(m.queue) == 0 {
			m.state = Loading
			m.current = media.Item{}
			return m, []Effect{success, Fetch{}}
		}
		m, next = m.pick()
	}
	return m, append([]Effect{success}, next...)
}

func successMessage(b shortcut.Binding) string {
	if b.Action == shortcut.ActionAlbum {
		return fmt.Sprintf(msgMovedToAlbum, b.AlbumName)
	}
	return msgTrashed
}

func (m Machine) showIndex() (Machine, []Effect) {
	m.state = Displaying
	m.current = m.queue[m.index]
	return m, []Effect{Show{Item: m.current, Position: m.index + 1, Total: len(m.queue)}}
}

// pick draws a random item from the cache and removes it. The cache is
// rebuilt rather than edited in place.
func (m Machine) pick() (Machine, []Effect) {
	i := m.rand.IntN(len(m.queue))
	m.current = m.queue[i]
	m.queue = slices.Concat(m.queue[:i], m.queue[i+1:])
	m.state = Displaying
	return m, []Effect{Show{Item: m.current}}
}
