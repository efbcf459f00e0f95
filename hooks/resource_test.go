package hooks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_Lifecycle(t *testing.T) {
	release := make(chan struct{})
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (string, error) {
		<-release
		return "value:" + key, nil
	})

	assert.Equal(t, Idle, r.State().Status)

	var mu sync.Mutex
	var seen []Status
	r.Subscribe(func(s State[string]) {
		mu.Lock()
		seen = append(seen, s.Status)
		mu.Unlock()
	})

	r.Update(&client.Client{}, "a")
	assert.True(t, r.View().IsLoading)

	close(release)
	r.Wait()

	s := r.State()
	assert.Equal(t, Ready, s.Status)
	assert.Equal(t, "value:a", s.Data)
	assert.NoError(t, s.Err)

	mu.Lock()
	assert.Equal(t, []Status{Loading, Ready}, seen)
	mu.Unlock()
}

func TestResource_NilClientSkips(t *testing.T) {
	var calls atomic.Int32
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (int, error) {
		calls.Add(1)
		return 1, nil
	})

	r.Update(nil, "a")
	r.Wait()
	assert.Equal(t, Idle, r.State().Status)
	assert.Equal(t, int32(0), calls.Load())

	r.SetClient(&client.Client{})
	r.Wait()
	assert.Equal(t, Ready, r.State().Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestResource_NoRefetchWithoutChange(t *testing.T) {
	var calls atomic.Int32
	c := &client.Client{}
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (int, error) {
		calls.Add(1)
		return 1, nil
	})

	r.Update(c, "a")
	r.Wait()
	r.Update(c, "a")
	r.SetKey("a")
	r.Wait()
	assert.Equal(t, int32(1), calls.Load())

	r.SetKey("b")
	r.Wait()
	assert.Equal(t, int32(2), calls.Load())
}

func TestResource_FailureKeepsData(t *testing.T) {
	fail := false
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (string, error) {
		if fail {
			return "", errors.New("subgraph down")
		}
		return "good", nil
	})

	r.Update(&client.Client{}, "a")
	r.Wait()

	fail = true
	r.SetKey("b")
	r.Wait()

	s := r.State()
	assert.Equal(t, Failed, s.Status)
	assert.EqualError(t, s.Err, "subgraph down")
	assert.Equal(t, "good", s.Data)

	v := r.View()
	assert.False(t, v.IsLoading)
	assert.Equal(t, "good", v.Data)
}

func TestResource_PanicBecomesError(t *testing.T) {
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (int, error) {
		panic("boom")
	})

	r.Update(&client.Client{}, "a")
	r.Wait()

	s := r.State()
	assert.Equal(t, Failed, s.Status)
	assert.ErrorContains(t, s.Err, "boom")
}

func TestResource_StaleResponseDropped(t *testing.T) {
	gates := map[string]chan struct{}{
		"A": make(chan struct{}),
		"B": make(chan struct{}),
	}
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (string, error) {
		<-gates[key]
		return "result:" + key, nil
	})

	c := &client.Client{}
	r.Update(c, "A")
	r.SetKey("B")

	close(gates["B"])
	require.Eventually(t, func() bool { return r.State().Status == Ready }, time.Second, time.Millisecond)

	close(gates["A"])
	r.Wait()

	s := r.State()
	assert.Equal(t, Ready, s.Status)
	assert.Equal(t, "result:B", s.Data)
}

func TestResource_CancelsPrevious(t *testing.T) {
	cancelled := make(chan struct{})
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (string, error) {
		if key == "old" {
			<-ctx.Done()
			close(cancelled)
			return "", ctx.Err()
		}
		return key, nil
	})

	r.Update(&client.Client{}, "old")
	r.SetKey("new")

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("previous fetch was not cancelled")
	}
	r.Wait()
	assert.Equal(t, "new", r.State().Data)
	assert.Equal(t, Ready, r.State().Status)
}

func TestResource_ShortCircuitAndSkip(t *testing.T) {
	var calls atomic.Int32
	r := NewResource(context.Background(), "test",
		func(ctx context.Context, c *client.Client, key string) (string, error) {
			calls.Add(1)
			return "fetched", nil
		},
		WithShortCircuit(func(key string) (string, bool) { return "short", key == "" }),
		WithSkip[string, string](func(key string) bool { return key == "skip" }),
	)

	r.Update(nil, "")
	s := r.State()
	assert.Equal(t, Ready, s.Status)
	assert.Equal(t, "short", s.Data)

	r.Update(&client.Client{}, "skip")
	r.Wait()
	assert.Equal(t, int32(0), calls.Load())

	r.SetKey("go")
	r.Wait()
	assert.Equal(t, "fetched", r.State().Data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestResource_Close(t *testing.T) {
	release := make(chan struct{})
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (string, error) {
		<-release
		return key, nil
	})

	r.Update(&client.Client{}, "a")
	r.Close()
	close(release)
	r.Wait()

	assert.NotEqual(t, Ready, r.State().Status)
	r.SetKey("b")
	r.Wait()
	assert.Equal(t, "", r.State().Data)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "status(9)", Status(9).String())
}

func TestResource_ListenerReadsDuringTransition(t *testing.T) {
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (string, error) {
		return key, nil
	})

	entered := make(chan struct{})
	proceed := make(chan struct{})
	read := make(chan State[string], 16)
	var once sync.Once
	r.Subscribe(func(s State[string]) {
		if s.Status == Ready {
			once.Do(func() {
				close(entered)
				<-proceed
			})
		}
		read <- r.State()
	})

	r.Update(&client.Client{}, "a")
	<-entered

	switched := make(chan struct{})
	go func() {
		r.SetKey("b")
		close(switched)
	}()
	select {
	case <-switched:
	case <-time.After(time.Second):
		t.Fatal("transition blocked behind a running listener")
	}

	close(proceed)
	select {
	case <-read:
	case <-time.After(time.Second):
		t.Fatal("listener could not read state")
	}

	r.Wait()
	require.Eventually(t, func() bool {
		s := r.State()
		return s.Status == Ready && s.Data == "b"
	}, time.Second, time.Millisecond)
}

func TestResource_ListenerUpdatesResource(t *testing.T) {
	r := NewResource(context.Background(), "test", func(ctx context.Context, c *client.Client, key string) (string, error) {
		return "value:" + key, nil
	})

	var mu sync.Mutex
	var seen []string
	r.Subscribe(func(s State[string]) {
		mu.Lock()
		seen = append(seen, s.Status.String()+" "+s.Data)
		mu.Unlock()
		if s.Status == Ready && s.Data == "value:a" {
			r.SetKey("b")
		}
	})

	done := make(chan struct{})
	go func() {
		r.Update(&client.Client{}, "a")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("update from a listener deadlocked")
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == "ready value:b"
	}, time.Second, time.Millisecond)
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "loading ", seen[0])
	assert.Contains(t, seen, "ready value:a")
}
