// internal/app/app_test.go
package app

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/journal"
	"github.com/llehouerou/phototriage/internal/media"
	"github.com/llehouerou/phototriage/internal/notify"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/shortcut"
)

// cmdTimeout bounds how long a command may take before it is treated as a
// timer and dropped.
const cmdTimeout = 30 * time.Millisecond

type fakeBackend struct {
	mu       sync.Mutex
	settings api.Settings
	loadErr  error
	saved    []api.ShortcutRequest
	deleted  []int64
	nextID   int64
}

func (b *fakeBackend) Settings(context.Context) (*api.Settings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	s := api.Settings{
		Albums:    slices.Clone(b.settings.Albums),
		Shortcuts: slices.Clone(b.settings.Shortcuts),
	}
	return &s, nil
}

func (b *fakeBackend) SaveShortcut(_ context.Context, req api.ShortcutRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = append(b.saved, req)
	b.nextID++
	b.settings.Shortcuts = append(b.settings.Shortcuts, api.Shortcut{
		ID:        100 + b.nextID,
		Key:       req.Key,
		Action:    req.Action,
		AlbumID:   req.AlbumID,
		AlbumName: req.AlbumName,
	})
	return nil
}

func (b *fakeBackend) DeleteShortcut(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, id)
	b.settings.Shortcuts = slices.DeleteFunc(b.settings.Shortcuts, func(s api.Shortcut) bool {
		return s.ID == id
	})
	return nil
}

type fakeMedia struct {
	mu        sync.Mutex
	items     map[string]media.Item
	random    [][]media.Item
	randomErr error
	actErr    error
	acts      []api.ActionRequest
	preview   []byte
}

func (f *fakeMedia) RandomMedia(context.Context) ([]media.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.randomErr != nil {
		return nil, f.randomErr
	}
	if len(f.random) == 0 {
		return nil, nil
	}
	batch := f.random[0]
	f.random = f.random[1:]
	return batch, nil
}

func (f *fakeMedia) GetMedia(_ context.Context, ids []string) ([]media.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []media.Item
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeMedia) Act(_ context.Context, req api.ActionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.actErr != nil {
		return f.actErr
	}
	f.acts = append(f.acts, req)
	return nil
}

func (f *fakeMedia) Preview(context.Context, string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.preview == nil {
		return nil, errors.New("no preview")
	}
	return f.preview, nil
}

func (f *fakeMedia) Acts() []api.ActionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.acts)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (n *recordingNotifier) Notify(notif notify.Notification) (uint32, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notif)
	return uint32(len(n.sent)), nil
}

func (n *recordingNotifier) Close(uint32) error { return nil }

func (n *recordingNotifier) Sent() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.sent)
}

type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

type testEnv struct {
	backend  *fakeBackend
	media    *fakeMedia
	journal  *journal.Mock
	notifier *recordingNotifier
}

func strPtr(s string) *string { return &s }

func newTestEnv() *testEnv {
	return &testEnv{
		backend: &fakeBackend{settings: api.Settings{
			Albums: []api.Album{
				{ID: "alb1", Title: "Tatil", IsWriteable: true},
				{ID: "alb2", Title: "Paylaşılan", IsWriteable: false},
			},
			Shortcuts: []api.Shortcut{
				{ID: 1, Key: "x", Action: "trash"},
				{ID: 2, Key: "y", Action: "album", AlbumID: strPtr("alb1"), AlbumName: strPtr("Tatil")},
			},
		}},
		media: &fakeMedia{items: map[string]media.Item{
			"a": {ID: "a", MimeType: "image/jpeg", BaseURL: "https://img/a", Filename: "a.jpg"},
			"b": {ID: "b", MimeType: "video/mp4", BaseURL: "https://img/b", Filename: "b.mp4"},
		}},
		journal:  journal.NewMock(),
		notifier: &recordingNotifier{},
	}
}

func (e *testEnv) model(t *testing.T, opts Options) Model {
	t.Helper()
	opts.ToastDuration = time.Hour
	m := New(Deps{
		Media:    e.media,
		Registry: shortcut.NewRegistry(e.backend),
		Journal:  e.journal,
		Notifier: e.notifier,
		Rand:     fixedRand{},
	}, opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return run(t, m, m.Init())
}

// update feeds msg to m and runs the resulting commands to completion.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	return run(t, result, cmd)
}

// run executes cmd and feeds every message it produces back into m.
// Commands that do not finish within cmdTimeout are timers and are dropped.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		m = update(t, m, msg)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var msgs []tea.Msg
		for _, c := range msg {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	default:
		return []tea.Msg{msg}
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, key(k))
	}
	return m
}

func currentID(m Model) string {
	item, ok := m.machine.Current()
	if !ok {
		return ""
	}
	return item.ID
}

func TestUpdate_WindowSizeMsg_ResizesComponents(t *testing.T) {
	m := newTestEnv().model(t, Options{})

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
	assert.Equal(t, 100, m.list.Width())
	assert.Equal(t, 27, m.list.Height())
	assert.Equal(t, 27, m.mediaView.Height())
}

func TestInit_LoadsShortcuts(t *testing.T) {
	m := newTestEnv().model(t, Options{})

	assert.Equal(t, ViewSettings, m.ActiveView())
	assert.Equal(t, 2, m.list.Len())
	assert.False(t, m.offline)
}

func TestInit_SettingsFailureShowsNotice(t *testing.T) {
	env := newTestEnv()
	env.backend.loadErr = &api.LoadError{What: "settings", Status: 500}

	m := env.model(t, Options{})

	assert.True(t, m.offline)
	assert.Equal(t, "Ayarlar yüklenemedi.", m.toast.Message())
	assert.Zero(t, m.list.Len())
}

func TestSequentialSession_AppliesEachItemAndCompletes(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})

	require.Equal(t, ViewSession, m.ActiveView())
	require.Equal(t, session.Displaying, m.machine.State())
	assert.Equal(t, "a", currentID(m))
	require.NotNil(t, m.counts)

	m = press(t, m, "x")
	assert.Equal(t, "b", currentID(m))
	assert.Equal(t, "Çöp kutusuna taşındı.", m.toast.Message())
	assert.Equal(t, 1, m.counts.Trashed)

	m = press(t, m, "y")
	assert.Equal(t, session.Ended, m.machine.State())
	assert.Equal(t, "Tüm seçilen fotoğraflar düzenlendi!", m.toast.Message())
	assert.Equal(t, 1, m.counts.Moved)

	acts := env.media.Acts()
	require.Len(t, acts, 2)
	assert.Equal(t, "a", acts[0].MediaID)
	assert.Equal(t, "trash", acts[0].Action)
	assert.Nil(t, acts[0].AlbumID)
	assert.Equal(t, "b", acts[1].MediaID)
	require.NotNil(t, acts[1].AlbumID)
	assert.Equal(t, "alb1", *acts[1].AlbumID)

	entries := env.journal.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "session-1", entries[0].SessionID)
	assert.Equal(t, "Tatil", entries[1].AlbumName)
	assert.True(t, env.journal.IsEnded("session-1"))

	sent := env.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Tüm seçilen fotoğraflar düzenlendi!", sent[0].Title)

	// Nothing is sent once the session has ended.
	m = press(t, m, "x")
	assert.Len(t, env.media.Acts(), 2)
	assert.Equal(t, session.Ended, m.machine.State())
}

func TestSession_KeysIgnoredWhileDispatching(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})

	next, dispatch := m.Update(key("x"))
	m = next.(Model)
	require.NotNil(t, dispatch)
	assert.Equal(t, session.Dispatching, m.machine.State())

	next, cmd := m.Update(key("y"))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, session.Dispatching, m.machine.State())

	m = run(t, m, dispatch)
	assert.Len(t, env.media.Acts(), 1)
	assert.Equal(t, "b", currentID(m))
}

func TestSession_DispatchFailureKeepsItem(t *testing.T) {
	env := newTestEnv()
	env.media.actErr = &api.ActionError{Op: "action", Status: 502}
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})

	m = press(t, m, "x")

	assert.Equal(t, session.Displaying, m.machine.State())
	assert.Equal(t, "a", currentID(m))
	assert.Equal(t, "İşlem başarısız.", m.toast.Message())
	assert.Empty(t, env.journal.Entries())
}

func TestSession_BackendErrorMessageShown(t *testing.T) {
	env := newTestEnv()
	env.media.actErr = &api.ActionError{Op: "action", Status: 400, Message: "Albüm dolu"}
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a"}})

	m = press(t, m, "y")

	assert.Equal(t, "Albüm dolu", m.toast.Message())
}

func TestSession_UnboundKeyIgnored(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a"}})

	m = press(t, m, "z")

	assert.Equal(t, session.Displaying, m.machine.State())
	assert.Empty(t, env.media.Acts())
}

func TestSession_JournalFailureIsReported(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})
	env.journal.SetError(errors.New("disk full"))

	m = press(t, m, "x")

	assert.Equal(t, "b", currentID(m))
	assert.Equal(t, "Günlüğe yazılamadı.", m.toast.Message())
}

func TestSession_WithoutJournal(t *testing.T) {
	env := newTestEnv()
	m := New(Deps{
		Media:    env.media,
		Registry: shortcut.NewRegistry(env.backend),
	}, Options{Mode: session.Sequential, IDs: []string{"a"}, ToastDuration: time.Hour})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = run(t, m, m.Init())

	m = press(t, m, "x")

	assert.Equal(t, session.Ended, m.machine.State())
	assert.Nil(t, m.counts)
}

func TestRandomSession_RetryAfterFailedLoad(t *testing.T) {
	env := newTestEnv()
	env.media.randomErr = &api.LoadError{What: "random media", Status: 503}
	m := env.model(t, Options{Mode: session.RandomRefill})

	m = press(t, m, "enter")
	require.Equal(t, ViewSession, m.ActiveView())
	assert.Equal(t, session.Idle, m.machine.State())
	assert.Equal(t, "Rastgele medya alınamadı.", m.toast.Message())

	env.media.mu.Lock()
	env.media.randomErr = nil
	env.media.random = [][]media.Item{{env.media.items["a"], env.media.items["b"]}}
	env.media.mu.Unlock()

	m = press(t, m, "r")
	assert.Equal(t, session.Displaying, m.machine.State())
	assert.Equal(t, "a", currentID(m))

	m = press(t, m, "x")
	assert.Equal(t, "b", currentID(m))
	assert.Zero(t, m.machine.Len())
}

func TestLeaveSession_LateReplyRecordedButNotApplied(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})

	next, dispatch := m.Update(key("x"))
	m = next.(Model)
	require.NotNil(t, dispatch)

	m = press(t, m, "esc")
	assert.Equal(t, ViewSettings, m.ActiveView())
	assert.True(t, env.journal.IsEnded("session-1"))

	m = run(t, m, dispatch)
	assert.Equal(t, ViewSettings, m.ActiveView())
	assert.Equal(t, session.Idle, m.machine.State())
	assert.Len(t, env.media.Acts(), 1)

	entries := env.journal.Entries()
	require.Len(t, entries, 1, "an action applied by the backend must be journaled")
	assert.Equal(t, "session-1", entries[0].SessionID)
	assert.Equal(t, "a", entries[0].MediaID)
	assert.Equal(t, "trash", entries[0].Action)
}

func TestLeaveSession_LateFailureNotRecorded(t *testing.T) {
	env := newTestEnv()
	env.media.actErr = errors.New("boom")
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})

	next, dispatch := m.Update(key("x"))
	m = next.(Model)
	m = press(t, m, "esc")

	m = run(t, m, dispatch)
	assert.Equal(t, ViewSettings, m.ActiveView())
	assert.Empty(t, env.journal.Entries())
}

func TestLateReply_DoesNotTouchNewSession(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a", "b"}})

	next, dispatch := m.Update(key("x"))
	m = next.(Model)
	m = press(t, m, "esc")
	m = press(t, m, "enter")
	require.Equal(t, ViewSession, m.ActiveView())
	require.Equal(t, "a", currentID(m))

	m = run(t, m, dispatch)
	assert.Equal(t, "a", currentID(m), "the new session keeps its item")
	assert.Equal(t, session.Displaying, m.machine.State())

	entries := env.journal.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "session-1", entries[0].SessionID)
	require.NotNil(t, m.counts)
	assert.Zero(t, m.counts.Trashed)
}

func TestSession_SnapshotIgnoresLaterChanges(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{Mode: session.Sequential, IDs: []string{"a"}})

	// A reload while the session runs does not rebind its keys.
	env.backend.mu.Lock()
	env.backend.settings.Shortcuts = nil
	env.backend.mu.Unlock()
	m = run(t, m, m.loadSettingsCmd(false))

	m = press(t, m, "x")
	assert.Len(t, env.media.Acts(), 1)
}

func TestSettings_DeleteAsksFirst(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{})

	m = press(t, m, "d")
	require.Equal(t, PopupConfirm, m.popups.ActivePopup())
	assert.Empty(t, env.backend.deleted)

	m = press(t, m, "y")
	assert.Equal(t, PopupNone, m.popups.ActivePopup())
	assert.Equal(t, []int64{1}, env.backend.deleted)
	assert.Equal(t, "Kısayol silindi.", m.toast.Message())
	assert.Equal(t, 1, m.list.Len())
}

func TestSettings_DeleteCanceled(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{})

	m = press(t, m, "d", "n")

	assert.Equal(t, PopupNone, m.popups.ActivePopup())
	assert.Empty(t, env.backend.deleted)
	assert.Equal(t, 2, m.list.Len())
}

func TestSettings_NewShortcut(t *testing.T) {
	env := newTestEnv()
	m := env.model(t, Options{})

	m = press(t, m, "n")
	require.Equal(t, PopupShortcutForm, m.popups.ActivePopup())

	// enter starts key capture, z is captured, enter saves.
	m = press(t, m, "enter", "z", "enter")

	assert.Equal(t, PopupNone, m.popups.ActivePopup())
	require.Len(t, env.backend.saved, 1)
	assert.Equal(t, "z", env.backend.saved[0].Key)
	assert.Equal(t, "trash", env.backend.saved[0].Action)
	assert.Equal(t, "Kısayol başarıyla kaydedildi.", m.toast.Message())
	assert.Equal(t, 3, m.list.Len())
}

func TestSettings_QuitEndsProgram(t *testing.T) {
	m := newTestEnv().model(t, Options{})

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSettings_HelpPopup(t *testing.T) {
	m := newTestEnv().model(t, Options{})

	m = press(t, m, "?")
	assert.Equal(t, PopupHelp, m.popups.ActivePopup())

	// Keys go to the popup while it is open.
	m = press(t, m, "q")
	assert.Equal(t, PopupNone, m.popups.ActivePopup())
}
