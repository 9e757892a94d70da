package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type debCall struct {
	path      string
	coalesced int
}

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []debCall
	)

	d := newDebouncer(50*time.Millisecond, func(path string, coalesced int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, debCall{path: path, coalesced: coalesced})
	})
	defer d.stop()

	d.trigger("a/package.json")
	d.trigger("b/package.json")
	d.trigger("c/package.json")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(calls) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []debCall{{path: "c/package.json", coalesced: 3}}, calls)
}

func TestDebouncer_FlushWithoutEventsIsNoOp(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []debCall
	)

	d := newDebouncer(time.Hour, func(path string, coalesced int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, debCall{path: path, coalesced: coalesced})
	})
	defer d.stop()

	d.trigger("pkg/package.json")
	d.flush()

	// A second flush, as fired by a timer that lost the race against
	// trigger, must not report an empty run.
	d.flush()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []debCall{{path: "pkg/package.json", coalesced: 1}}, calls)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var (
		mu    sync.Mutex
		fired bool
	)

	d := newDebouncer(30*time.Millisecond, func(string, int) {
		mu.Lock()
		defer mu.Unlock()
		fired = true
	})

	d.trigger("pkg/package.json")
	d.stop()

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"manifest write", fsnotify.Event{Name: "pkg/package.json", Op: fsnotify.Write}, true},
		{"manifest create", fsnotify.Event{Name: "pkg/package.json", Op: fsnotify.Create}, true},
		{"manifest remove", fsnotify.Event{Name: "pkg/package.json", Op: fsnotify.Remove}, true},
		{"other file", fsnotify.Event{Name: "pkg/index.js", Op: fsnotify.Write}, false},
		{"lockfile", fsnotify.Event{Name: "pkg/package-lock.json", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "pkg/package.json", Op: fsnotify.Chmod}, false},
		{"zero op", fsnotify.Event{Name: "pkg/package.json"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRelevant(tt.event))
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 500*time.Millisecond, opts.Debounce)
	assert.NotNil(t, opts.Out)
}
