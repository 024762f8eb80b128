package input

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facekey/internal/action"
)

// recordingBackend records every call and detects overlapping injections.
type recordingBackend struct {
	mu       sync.Mutex
	calls    []string
	inFlight int32
	overlaps int32
	delay    time.Duration
	fail     error
	panicMsg string
	closed   bool
}

func (r *recordingBackend) record(call string) error {
	if atomic.AddInt32(&r.inFlight, 1) > 1 {
		atomic.AddInt32(&r.overlaps, 1)
	}
	defer atomic.AddInt32(&r.inFlight, -1)

	// Split the call in two halves so an interleaving would be visible in
	// the log as two consecutive starts.
	r.append("begin " + call)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.panicMsg != "" {
		panic(r.panicMsg)
	}
	r.append("end " + call)
	return r.fail
}

func (r *recordingBackend) append(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recordingBackend) log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingBackend) Text(text string) error { return r.record("text " + text) }
func (r *recordingBackend) Key(k action.KeyCode, d action.Direction) error {
	return r.record(fmt.Sprintf("key %s %s", k, d))
}
func (r *recordingBackend) Raw(code uint16, d action.Direction) error {
	return r.record(fmt.Sprintf("raw %d %s", code, d))
}
func (r *recordingBackend) Button(b action.MouseButton, d action.Direction) error {
	return r.record(fmt.Sprintf("button %s %s", b, d))
}
func (r *recordingBackend) MoveMouse(x, y int32, c action.Coordinate) error {
	return r.record(fmt.Sprintf("move %d %d %s", x, y, c))
}
func (r *recordingBackend) Scroll(n int32, a action.Axis) error {
	return r.record(fmt.Sprintf("scroll %d %s", n, a))
}
func (r *recordingBackend) Close() error {
	r.closed = true
	return nil
}

func newTestExecutor(b Backend) (*Executor, *int32) {
	var opens int32
	e := NewExecutor(func() (Backend, error) {
		atomic.AddInt32(&opens, 1)
		return b, nil
	}, WithLogger(zerolog.Nop()))
	return e, &opens
}

func TestExecuteDispatchesOnKind(t *testing.T) {
	b := &recordingBackend{}
	e, _ := newTestExecutor(b)

	actions := []action.Action{
		action.Text{Text: "hi"},
		action.Key{Key: action.Unicode('a'), Direction: action.Click},
		action.Raw{Code: 30, Direction: action.Press},
		action.Button{Button: action.Right, Direction: action.Release},
		action.MoveMouse{X: 3, Y: -4, Coordinate: action.Rel},
		action.Scroll{Length: 2, Axis: action.Horizontal},
	}
	for _, a := range actions {
		require.NoError(t, e.Execute(a))
	}

	want := []string{
		"begin text hi", "end text hi",
		"begin key Unicode('a') Click", "end key Unicode('a') Click",
		"begin raw 30 Press", "end raw 30 Press",
		"begin button Right Release", "end button Right Release",
		"begin move 3 -4 Rel", "end move 3 -4 Rel",
		"begin scroll 2 Horizontal", "end scroll 2 Horizontal",
	}
	assert.Equal(t, want, b.log())
	assert.Equal(t, uint64(len(actions)), e.Executions())
}

func TestExecuteOpensHandleOnce(t *testing.T) {
	b := &recordingBackend{}
	e, opens := newTestExecutor(b)

	for i := 0; i < 5; i++ {
		require.NoError(t, e.Execute(action.Text{Text: "x"}))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(opens))

	require.NoError(t, e.Close())
	assert.True(t, b.closed)
}

func TestExecuteMutualExclusion(t *testing.T) {
	b := &recordingBackend{delay: 2 * time.Millisecond}
	e, _ := newTestExecutor(b)

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- e.Execute(action.MoveMouse{X: int32(i), Y: int32(i), Coordinate: action.Abs})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Zero(t, atomic.LoadInt32(&b.overlaps), "injections overlapped")
	assert.Equal(t, uint64(n), e.Executions())

	calls := b.log()
	require.Len(t, calls, 2*n)
	for i := 0; i < len(calls); i += 2 {
		begin, end := calls[i], calls[i+1]
		assert.Equal(t, "begin", begin[:5])
		assert.Equal(t, begin[len("begin "):], end[len("end "):], "action %d was interleaved", i/2)
	}
}

func TestExecuteFailureKeepsHandleUsable(t *testing.T) {
	platformErr := errors.New("permission denied")
	b := &recordingBackend{fail: platformErr}
	e, opens := newTestExecutor(b)

	err := e.Execute(action.Button{Button: action.Left, Direction: action.Click})
	require.Error(t, err)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, platformErr)
	assert.Equal(t, action.Button{Button: action.Left, Direction: action.Click}, execErr.Action)
	assert.Contains(t, err.Error(), "Button(Left, Click)")

	b.fail = nil
	require.NoError(t, e.Execute(action.Text{Text: "ok"}))
	assert.Equal(t, int32(1), atomic.LoadInt32(opens))
	assert.Equal(t, uint64(1), e.Executions())
}

func TestExecuteOpenFailureIsRetried(t *testing.T) {
	attempts := 0
	b := &recordingBackend{}
	e := NewExecutor(func() (Backend, error) {
		attempts++
		if attempts == 1 {
			return nil, ErrUnsupported
		}
		return b, nil
	}, WithLogger(zerolog.Nop()))

	err := e.Execute(action.Text{Text: "x"})
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, ErrUnsupported)

	require.NoError(t, e.Execute(action.Text{Text: "x"}))
	assert.Equal(t, 2, attempts)
}

func TestExecuteRecoversBackendPanic(t *testing.T) {
	b := &recordingBackend{panicMsg: "boom"}
	e, _ := newTestExecutor(b)

	err := e.Execute(action.Text{Text: "x"})
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "boom")

	// The lock was released: a second call does not deadlock.
	b.panicMsg = ""
	done := make(chan error, 1)
	go func() { done <- e.Execute(action.Text{Text: "y"}) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Execute blocked after a panic")
	}
}

func TestExecuteNilAction(t *testing.T) {
	e, opens := newTestExecutor(&recordingBackend{})
	var execErr *ExecutionError
	require.ErrorAs(t, e.Execute(nil), &execErr)
	assert.Zero(t, atomic.LoadInt32(opens))
}

func TestCloseWithoutOpen(t *testing.T) {
	e, opens := newTestExecutor(&recordingBackend{})
	assert.NoError(t, e.Close())
	assert.Zero(t, atomic.LoadInt32(opens))
}

func TestOpenerFor(t *testing.T) {
	for _, name := range []string{"", BackendAuto, BackendXdotool, BackendDryRun} {
		open, err := OpenerFor(name, zerolog.Nop())
		require.NoError(t, err, name)
		assert.NotNil(t, open, name)
	}

	_, err := OpenerFor("uinput", zerolog.Nop())
	assert.Error(t, err)

	open, err := OpenerFor(BackendDryRun, zerolog.Nop())
	require.NoError(t, err)
	e := NewExecutor(open, WithLogger(zerolog.Nop()))
	assert.NoError(t, e.Execute(action.Key{Key: action.Unicode('q'), Direction: action.Click}))
}
