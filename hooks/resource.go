package hooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/rs/zerolog/log"
)

type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State is the tagged state of a resource. Data survives a failure so a view
// can keep showing the last good value next to the error.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// View is the {data, error, isLoading} triple the views render from.
type View[T any] struct {
	Data      T
	Err       error
	IsLoading bool
}

type FetchFunc[K comparable, T any] func(ctx context.Context, c *client.Client, key K) (T, error)

type Option[K comparable, T any] func(*Resource[K, T])

// WithShortCircuit resolves keys for which fn reports ok synchronously to
// Ready(value) without fetching.
func WithShortCircuit[K comparable, T any](fn func(K) (T, bool)) Option[K, T] {
	return func(r *Resource[K, T]) {
		r.shortCircuit = fn
	}
}

// WithSkip leaves the resource idle for keys fn rejects.
func WithSkip[K comparable, T any](fn func(K) bool) Option[K, T] {
	return func(r *Resource[K, T]) {
		r.skip = fn
	}
}

// Resource runs one fetch per change of client or key and keeps the outcome
// as State. Every dispatch gets a new generation and cancels the previous
// one; results from older generations are dropped, so the state always
// reflects the latest request. There is no retry.
//
// Listeners see transitions in order, one at a time, and never with the
// resource locked, so they may read or update the resource. A transition made
// while another goroutine is delivering is handed to that goroutine.
type Resource[K comparable, T any] struct {
	name         string
	ctx          context.Context
	fetch        FetchFunc[K, T]
	shortCircuit func(K) (T, bool)
	skip         func(K) bool

	mu         sync.Mutex
	state      State[T]
	gen        uint64
	cancel     context.CancelFunc
	client     *client.Client
	key        K
	dispatched bool
	closed     bool

	listeners  map[int]func(State[T])
	nextID     int
	queue      []State[T]
	delivering bool

	wg      sync.WaitGroup
	release func()
}

func NewResource[K comparable, T any](ctx context.Context, name string, fetch FetchFunc[K, T], opts ...Option[K, T]) *Resource[K, T] {
	r := &Resource[K, T]{
		name:      name,
		ctx:       ctx,
		fetch:     fetch,
		listeners: map[int]func(State[T]){},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resource[K, T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resource[K, T]) View() View[T] {
	s := r.State()
	return View[T]{Data: s.Data, Err: s.Err, IsLoading: s.Status == Loading}
}

// Subscribe registers fn for every state transition.
func (r *Resource[K, T]) Subscribe(fn func(State[T])) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Resource[K, T]) Update(c *client.Client, key K) {
	r.apply(func() {
		r.client = c
		r.key = key
	})
}

func (r *Resource[K, T]) SetClient(c *client.Client) {
	r.apply(func() { r.client = c })
}

func (r *Resource[K, T]) SetKey(key K) {
	r.apply(func() { r.key = key })
}

// Wait blocks until no fetch is in flight.
func (r *Resource[K, T]) Wait() {
	r.wg.Wait()
}

// Close cancels the in-flight fetch and detaches the resource from its
// session. Later updates are ignored.
func (r *Resource[K, T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	release := r.release
	r.release = nil
	r.mu.Unlock()

	if release != nil {
		release()
	}
}

func (r *Resource[K, T]) apply(mutate func()) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	prevClient, prevKey := r.client, r.key
	mutate()
	if r.dispatched && prevClient == r.client && prevKey == r.key {
		r.mu.Unlock()
		return
	}
	r.dispatched = true

	r.gen++
	gen := r.gen
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	c, key := r.client, r.key
	if r.shortCircuit != nil {
		if v, ok := r.shortCircuit(key); ok {
			r.state = State[T]{Status: Ready, Data: v}
			r.publish()
			return
		}
	}

	if c == nil || (r.skip != nil && r.skip(key)) {
		if r.state.Status == Loading {
			r.state.Status = Idle
			r.publish()
			return
		}
		r.mu.Unlock()
		return
	}

	fctx, cancel := context.WithCancel(r.ctx)
	r.cancel = cancel
	r.state.Status = Loading
	r.wg.Add(1)
	r.publish()

	go func() {
		defer r.wg.Done()
		v, err := r.run(fctx, c, key)
		r.resolve(gen, v, err)
	}()
}

func (r *Resource[K, T]) run(ctx context.Context, c *client.Client, key K) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: fetch panicked: %v", r.name, p)
		}
	}()
	return r.fetch(ctx, c, key)
}

func (r *Resource[K, T]) resolve(gen uint64, v T, err error) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		logger.WithHookCategory(log.Debug()).Str("hook", r.name).Uint64("gen", gen).Msg("stale response dropped")
		return
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	if err != nil {
		logger.WithHookCategory(log.Error()).Str("hook", r.name).Err(err).Send()
		r.state.Status = Failed
		r.state.Err = err
	} else {
		r.state = State[T]{Status: Ready, Data: v}
	}
	r.publish()
}

// publish must be called with mu held and releases it. The current state is
// queued; the first publisher to find no delivery running drains the queue
// with mu released between batches.
func (r *Resource[K, T]) publish() {
	r.queue = append(r.queue, r.state)
	if r.delivering {
		r.mu.Unlock()
		return
	}
	r.delivering = true

	for len(r.queue) > 0 {
		batch := r.queue
		r.queue = nil
		fns := make([]func(State[T]), 0, len(r.listeners))
		for _, fn := range r.listeners {
			fns = append(fns, fn)
		}
		r.mu.Unlock()

		for _, s := range batch {
			for _, fn := range fns {
				fn(s)
			}
		}

		r.mu.Lock()
	}
	r.delivering = false
	r.mu.Unlock()
}
