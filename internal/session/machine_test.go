package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/media"
	"github.com/llehouerou/phototriage/internal/shortcut"
)

// seqRand returns the queued values in order, then 0.
type seqRand struct {
	values []int
	calls  []int // n of each call
}

func (r *seqRand) IntN(n int) int {
	r.calls = append(r.calls, n)
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

func testBindings() map[string]shortcut.Binding {
	return map[string]shortcut.Binding{
		"a": {ID: 1, Key: "a", Action: shortcut.ActionTrash},
		"s": {ID: 2, Key: "s", Action: shortcut.ActionAlbum, AlbumID: "42", AlbumName: "Trips"},
	}
}

func items(ids ...string) []media.Item {
	result := make([]media.Item, 0, len(ids))
	for _, id := range ids {
		result = append(result, media.Item{ID: id, MimeType: "image/jpeg", BaseURL: "https://x/" + id, Filename: id + ".jpg"})
	}
	return result
}

func effectsOf[T Effect](effects []Effect) []T {
	var result []T
	for _, e := range effects {
		if v, ok := e.(T); ok {
			result = append(result, v)
		}
	}
	return result
}

func currentID(t *testing.T, m Machine) string {
	t.Helper()
	item, ok := m.Current()
	require.True(t, ok, "expected a current item in state %s", m.State())
	return item.ID
}

// startSequential runs Start and a successful Fetched.
func startSequential(t *testing.T, ids ...string) Machine {
	t.Helper()
	m := New(Sequential, testBindings(), nil)
	m, effects := m.Apply(Start{IDs: ids})
	require.Equal(t, Loading, m.State())
	require.Equal(t, []Effect{Fetch{IDs: ids}}, effects)
	m, _ = m.Apply(Fetched{Items: items(ids...)})
	require.Equal(t, Displaying, m.State())
	return m
}

func TestMachine_SequentialExample(t *testing.T) {
	m := startSequential(t, "item1", "item2")
	assert.Equal(t, "item1", currentID(t, m))

	// a on item1 -> trash request.
	m, effects := m.Apply(KeyPressed{Key: "a"})
	assert.Equal(t, Dispatching, m.State())
	dispatches := effectsOf[Dispatch](effects)
	require.Len(t, dispatches, 1)
	assert.Equal(t, api.ActionRequest{MediaID: "item1", Action: "trash"}, dispatches[0].Request())

	m, effects = m.Apply(Dispatched{})
	assert.Equal(t, Displaying, m.State())
	assert.Equal(t, "item2", currentID(t, m))
	notices := effectsOf[Notify](effects)
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeSuccess, notices[0].Kind)
	assert.Equal(t, "Çöp kutusuna taşındı.", notices[0].Message)
	shows := effectsOf[Show](effects)
	require.Len(t, shows, 1)
	assert.Equal(t, "İlerleme: 2 / 2", shows[0].Progress())

	// s on item2 -> album request, then Ended.
	m, effects = m.Apply(KeyPressed{Key: "s"})
	dispatches = effectsOf[Dispatch](effects)
	require.Len(t, dispatches, 1)
	req := dispatches[0].Request()
	assert.Equal(t, "item2", req.MediaID)
	assert.Equal(t, "album", req.Action)
	require.NotNil(t, req.AlbumID)
	assert.Equal(t, "42", *req.AlbumID)

	m, effects = m.Apply(Dispatched{})
	assert.Equal(t, Ended, m.State())
	_, ok := m.Current()
	assert.False(t, ok)

	notices = effectsOf[Notify](effects)
	require.Len(t, notices, 2)
	assert.Equal(t, `"Trips" albümüne taşındı.`, notices[0].Message)
	assert.Equal(t, NoticeCompleted, notices[1].Kind)
	assert.Equal(t, "Tüm seçilen fotoğraflar düzenlendi!", notices[1].Message)
	ends := effectsOf[End](effects)
	require.Len(t, ends, 1)
	assert.Equal(t, 2, ends[0].Applied)
}

func TestMachine_SequentialNoRequestsAfterEnded(t *testing.T) {
	m := startSequential(t, "only")
	m, _ = m.Apply(KeyPressed{Key: "a"})
	m, _ = m.Apply(Dispatched{})
	require.Equal(t, Ended, m.State())

	for _, ev := range []Event{
		KeyPressed{Key: "a"},
		KeyPressed{Key: "s"},
		Dispatched{},
		Fetched{Items: items("x")},
		Start{IDs: []string{"y"}},
	} {
		next, effects := m.Apply(ev)
		assert.Empty(t, effects, "event %#v", ev)
		assert.Equal(t, Ended, next.State())
	}
}

func TestMachine_SequentialAdvancesByOne(t *testing.T) {
	ids := []string{"i0", "i1", "i2", "i3", "i4"}
	m := startSequential(t, ids...)

	for want := range ids {
		assert.Equal(t, want, m.Index())
		assert.Equal(t, ids[want], currentID(t, m))
		m, _ = m.Apply(KeyPressed{Key: "a"})
		m, _ = m.Apply(Dispatched{})
	}
	assert.Equal(t, len(ids), m.Index())
	assert.Equal(t, Ended, m.State())
	assert.Equal(t, len(ids), m.Applied())
}

func TestMachine_UnboundKeysChangeNothing(t *testing.T) {
	m := startSequential(t, "i0", "i1")

	for _, key := range []string{"x", "A", "ctrl+a", "enter", " ", ""} {
		next, effects := m.Apply(KeyPressed{Key: key})
		assert.Empty(t, effects, "key %q", key)
		assert.Equal(t, Displaying, next.State())
		assert.Equal(t, 0, next.Index())
		assert.False(t, m.Binds(key))
	}
	assert.True(t, m.Binds("a"))
	assert.True(t, m.Binds("s"))
}

func TestMachine_FailedDispatchKeepsItem(t *testing.T) {
	m := startSequential(t, "i0", "i1")
	m, _ = m.Apply(KeyPressed{Key: "s"})

	actErr := &api.ActionError{Op: "action", Status: 403, Message: "Albüme yazma izni yok."}
	m, effects := m.Apply(Dispatched{Err: actErr})

	assert.Equal(t, Displaying, m.State())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, "i0", currentID(t, m))
	assert.Zero(t, m.Applied())
	require.Len(t, effects, 1)
	notice, ok := effects[0].(Notify)
	require.True(t, ok)
	assert.Equal(t, NoticeError, notice.Kind)
	assert.Equal(t, "Albüme yazma izni yok.", notice.Message)
	assert.ErrorIs(t, notice.Err, actErr)

	// Retry with a different key.
	m, effects = m.Apply(KeyPressed{Key: "a"})
	require.Len(t, effectsOf[Dispatch](effects), 1)
	assert.Equal(t, "i0", effectsOf[Dispatch](effects)[0].Item.ID)
	m, _ = m.Apply(Dispatched{})
	assert.Equal(t, "i1", currentID(t, m))
}

func TestMachine_FailedDispatchDefaultMessage(t *testing.T) {
	m := startSequential(t, "i0")
	m, _ = m.Apply(KeyPressed{Key: "a"})
	_, effects := m.Apply(Dispatched{Err: errors.New("connection reset")})

	notices := effectsOf[Notify](effects)
	require.Len(t, notices, 1)
	assert.Equal(t, "İşlem başarısız.", notices[0].Message)
}

func TestMachine_KeysDroppedWhileDispatching(t *testing.T) {
	m := startSequential(t, "i0", "i1", "i2")
	m, _ = m.Apply(KeyPressed{Key: "a"})
	require.Equal(t, Dispatching, m.State())

	for _, key := range []string{"a", "s", "a"} {
		var effects []Effect
		m, effects = m.Apply(KeyPressed{Key: key})
		assert.Empty(t, effects)
		assert.Equal(t, Dispatching, m.State())
		assert.True(t, m.Binds(key), "bound keys are consumed while dispatching")
	}

	m, _ = m.Apply(Dispatched{})
	assert.Equal(t, 1, m.Index(), "only one advance for one dispatch")
}

func TestMachine_SequentialFetchFailureEnds(t *testing.T) {
	m := New(Sequential, testBindings(), nil)
	m, _ = m.Apply(Start{IDs: []string{"a"}})
	m, effects := m.Apply(Fetched{Err: &api.LoadError{What: "selected media", Status: 500}})

	assert.Equal(t, Ended, m.State())
	notices := effectsOf[Notify](effects)
	require.Len(t, notices, 1)
	assert.Equal(t, "Seçilen medya bilgileri alınamadı.", notices[0].Message)
	assert.Len(t, effectsOf[End](effects), 1)
}

func TestMachine_SequentialEmptyFetchEnds(t *testing.T) {
	m := New(Sequential, testBindings(), nil)
	m, _ = m.Apply(Start{IDs: []string{"gone"}})
	m, effects := m.Apply(Fetched{})

	assert.Equal(t, Ended, m.State())
	notices := effectsOf[Notify](effects)
	require.Len(t, notices, 1)
	assert.ErrorIs(t, notices[0].Err, ErrNoMoreMedia)
	assert.Empty(t, effectsOf[Show](effects))
}

func TestMachine_SequentialStartWithoutIDs(t *testing.T) {
	m := New(Sequential, testBindings(), nil)
	m, effects := m.Apply(Start{})

	assert.Equal(t, Ended, m.State())
	assert.Empty(t, effectsOf[Fetch](effects))
	assert.Len(t, effectsOf[End](effects), 1)
}

func TestMachine_StartCopiesIDs(t *testing.T) {
	ids := []string{"a", "b"}
	m := New(Sequential, testBindings(), nil)
	_, effects := m.Apply(Start{IDs: ids})
	ids[0] = "changed"

	fetches := effectsOf[Fetch](effects)
	require.Len(t, fetches, 1)
	assert.Equal(t, []string{"a", "b"}, fetches[0].IDs)
}

func TestMachine_RandomEmptyFetch(t *testing.T) {
	m := New(RandomRefill, testBindings(), &seqRand{})
	m, effects := m.Apply(Start{})
	require.Equal(t, []Effect{Fetch{}}, effects)

	m, effects = m.Apply(Fetched{Items: []media.Item{}})

	assert.Equal(t, Idle, m.State())
	assert.NotEqual(t, Displaying, m.State())
	assert.Empty(t, effectsOf[Show](effects))
	notices := effectsOf[Notify](effects)
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
	assert.ErrorIs(t, notices[0].Err, ErrNoMoreMedia)

	// A later start retries.
	m, effects = m.Apply(Start{})
	assert.Equal(t, Loading, m.State())
	assert.Equal(t, []Effect{Fetch{}}, effects)
}

func TestMachine_RandomFetchFailureLeavesIdle(t *testing.T) {
	m := New(RandomRefill, testBindings(), &seqRand{})
	m, _ = m.Apply(Start{})
	m, effects := m.Apply(Fetched{Err: errors.New("dial tcp: refused")})

	assert.Equal(t, Idle, m.State())
	assert.Empty(t, effectsOf[End](effects))
	notices := effectsOf[Notify](effects)
	require.Len(t, notices, 1)
	assert.Equal(t, "Rastgele medya alınamadı.", notices[0].Message)
}

func TestMachine_RandomPickRemovesFromCache(t *testing.T) {
	r := &seqRand{values: []int{1, 1, 0}}
	m := New(RandomRefill, testBindings(), r)
	m, _ = m.Apply(Start{})

	fetched := items("r0", "r1", "r2")
	m, effects := m.Apply(Fetched{Items: fetched})

	// IntN(3) -> 1: r1 shown, cache [r0 r2].
	assert.Equal(t, "r1", currentID(t, m))
	assert.Equal(t, 2, m.Len())
	shows := effectsOf[Show](effects)
	require.Len(t, shows, 1)
	assert.Empty(t, shows[0].Progress())

	// IntN(2) -> 1: r2 shown, cache [r0].
	m, _ = m.Apply(KeyPressed{Key: "a"})
	m, _ = m.Apply(Dispatched{})
	assert.Equal(t, "r2", currentID(t, m))
	assert.Equal(t, 1, m.Len())

	// IntN(1) -> 0: r0 shown, cache empty.
	m, _ = m.Apply(KeyPressed{Key: "a"})
	m, _ = m.Apply(Dispatched{})
	assert.Equal(t, "r0", currentID(t, m))
	assert.Equal(t, 0, m.Len())

	assert.Equal(t, []int{3, 2, 1}, r.calls)
	assert.Equal(t, []string{"r0", "r1", "r2"}, []string{fetched[0].ID, fetched[1].ID, fetched[2].ID},
		"the fetched slice must not be modified")
}

func TestMachine_RandomRefillsOnlyWhenEmpty(t *testing.T) {
	m := New(RandomRefill, testBindings(), &seqRand{})
	m, _ = m.Apply(Start{})
	m, _ = m.Apply(Fetched{Items: items("r0", "r1")})

	m, effects := m.Apply(KeyPressed{Key: "a"})
	require.Len(t, effectsOf[Dispatch](effects), 1)
	m, effects = m.Apply(Dispatched{})
	assert.Empty(t, effectsOf[Fetch](effects), "cache not empty yet")
	assert.Equal(t, Displaying, m.State())

	m, _ = m.Apply(KeyPressed{Key: "s"})
	m, effects = m.Apply(Dispatched{})
	assert.Equal(t, Loading, m.State())
	assert.Equal(t, []Effect{Notify{Kind: NoticeSuccess, Message: `"Trips" albümüne taşındı.`}, Fetch{}}, effects)
	_, ok := m.Current()
	assert.False(t, ok)

	// Random mode never ends: a new batch continues the session.
	m, _ = m.Apply(Fetched{Items: items("r2")})
	assert.Equal(t, "r2", currentID(t, m))
	assert.Equal(t, 2, m.Applied())
}

func TestMachine_RandomNeverRepeatsWithinCache(t *testing.T) {
	// Always pick the last element.
	r := randFunc(func(n int) int { return n - 1 })
	m := New(RandomRefill, testBindings(), r)
	m, _ = m.Apply(Start{})
	m, _ = m.Apply(Fetched{Items: items("a", "b", "c", "d")})

	seen := map[string]bool{}
	for m.State() == Displaying {
		id := currentID(t, m)
		assert.False(t, seen[id], "item %s shown twice", id)
		seen[id] = true
		m, _ = m.Apply(KeyPressed{Key: "a"})
		m, _ = m.Apply(Dispatched{})
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, Loading, m.State())
}

type randFunc func(n int) int

func (f randFunc) IntN(n int) int { return f(n) }

func TestMachine_StaleEventsIgnored(t *testing.T) {
	m := New(Sequential, testBindings(), nil)

	next, effects := m.Apply(Fetched{Items: items("x")})
	assert.Equal(t, Idle, next.State())
	assert.Empty(t, effects)

	next, effects = m.Apply(Dispatched{})
	assert.Equal(t, Idle, next.State())
	assert.Empty(t, effects)

	next, effects = m.Apply(KeyPressed{Key: "a"})
	assert.Equal(t, Idle, next.State())
	assert.Empty(t, effects)
	assert.False(t, m.Binds("a"))

	loading, _ := m.Apply(Start{IDs: []string{"x"}})
	next, effects = loading.Apply(Start{IDs: []string{"y"}})
	assert.Equal(t, Loading, next.State())
	assert.Empty(t, effects)
	next, effects = loading.Apply(KeyPressed{Key: "a"})
	assert.Equal(t, Loading, next.State())
	assert.Empty(t, effects)
}

func TestMachine_ApplyDoesNotMutateReceiver(t *testing.T) {
	m := startSequential(t, "i0", "i1")
	before := m

	_, _ = m.Apply(KeyPressed{Key: "a"})
	assert.Equal(t, Displaying, m.State())
	assert.Equal(t, before, m)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"sequential", Sequential, false},
		{"Sequential", Sequential, false},
		{"random", RandomRefill, false},
		{" random-refill ", RandomRefill, false},
		{"shuffle", Sequential, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Mode {
	t.Helper()
	m, err := ParseMode(s)
	require.NoError(t, err)
	return m
}
