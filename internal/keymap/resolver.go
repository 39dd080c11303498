package keymap

import "slices"

// Resolver maps key strings to the actions of one view context.
type Resolver struct {
	context  string
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys
}

// NewResolver creates a resolver for a view context. Global bindings are
// included; a view binding wins over a global one on the same key.
func NewResolver(context string) *Resolver {
	r := &Resolver{
		context:  context,
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range ForContext(context) {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
			if !slices.Contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
	}
	return r
}

// Context returns the view context the resolver was built for.
func (r *Resolver) Context() string {
	return r.context
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Unusable reports whether a triage shortcut on key would lock the user in
// a session: ctrl+c quits before shortcuts are consulted, and a shortcut on
// the leave key hides it while an item is shown.
func Unusable(key string) bool {
	switch sessionKeys.Resolve(key) {
	case ActionQuit, ActionLeaveSession:
		return true
	}
	return false
}

var sessionKeys = NewResolver(ContextSession)
