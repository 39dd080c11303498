package session

import (
	"fmt"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/media"
	"github.com/llehouerou/phototriage/internal/shortcut"
)

// Event is an input to Machine.Apply.
type Event interface{ event() }

// Start begins a session. IDs are the picked media ids in Sequential mode
// and are ignored in RandomRefill mode.
type Start struct{ IDs []string }

// Fetched reports the result of a Fetch effect.
type Fetched struct {
	Items []media.Item
	Err   error
}

// KeyPressed reports a raw key label from the terminal.
type KeyPressed struct{ Key string }

// Dispatched reports the result of a Dispatch effect.
type Dispatched struct{ Err error }

func (Start) event()      {}
func (Fetched) event()    {}
func (KeyPressed) event() {}
func (Dispatched) event() {}

// Effect is an instruction returned by Machine.Apply for the caller to carry out.
type Effect interface{ effect() }

// Fetch asks for media. IDs is nil in RandomRefill mode.
type Fetch struct{ IDs []string }

// Dispatch asks for Binding to be applied to Item. Exactly one Dispatch is
// outstanding at a time.
type Dispatch struct {
	Item    media.Item
	Binding shortcut.Binding
}

// Request returns the backend payload for the dispatch.
func (d Dispatch) Request() api.ActionRequest {
	return d.Binding.ActionRequest(d.Item.ID)
}

// Show makes Item the displayed item. Position is 1-based; Position and
// Total are zero in RandomRefill mode.
type Show struct {
	Item     media.Item
	Position int
	Total    int
}

// Progress returns "İlerleme: i / n", or empty when there is no fixed total.
func (s Show) Progress() string {
	if s.Total == 0 {
		return ""
	}
	return fmt.Sprintf("İlerleme: %d / %d", s.Position, s.Total)
}

// NoticeKind classifies a Notify effect.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
	NoticeCompleted
)

// Notify asks for a transient status message. Err is set for NoticeError.
type Notify struct {
	Kind    NoticeKind
	Message string
	Err     error
}

// End reports that a Sequential session finished and no further input
// will be honored. Applied counts successful dispatches.
type End struct{ Applied int }

func (Fetch) effect()    {}
func (Dispatch) effect() {}
func (Show) effect()     {}
func (Notify) effect()   {}
func (End) effect()      {}
