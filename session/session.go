package session

import (
	"fmt"
	"sync"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/hellodex/daofin-dashboard/networks"
	"github.com/rs/zerolog/log"
)

// Factory builds the client for a network and wallet connection.
type Factory func(network networks.Network, wallet string) (*client.Client, error)

// Context owns the client handle of the current wallet/network connection.
// The handle is replaced on every Connect and dropped on Disconnect; a nil
// handle means nothing is connected yet. Subscribers are told about changes
// in the order they were made and must not Connect or Disconnect themselves.
type Context struct {
	// change serializes a handle swap with its notification.
	change  sync.Mutex
	mu      sync.RWMutex
	factory Factory
	client  *client.Client
	network networks.Network
	wallet  string

	subMu  sync.Mutex
	subs   map[int]func(*client.Client)
	nextID int
}

func New(factory Factory) *Context {
	return &Context{
		factory: factory,
		network: networks.Unsupported,
		subs:    map[int]func(*client.Client){},
	}
}

// Connect replaces the client with one for network and wallet. Unsupported
// networks disconnect and return an error.
func (c *Context) Connect(network networks.Network, wallet string) error {
	if !networks.IsSupportedNetwork(string(network)) {
		c.Disconnect()
		return fmt.Errorf("connect: unsupported network %q", network)
	}

	cl, err := c.factory(network, wallet)
	if err != nil {
		c.Disconnect()
		return fmt.Errorf("connect %s: %w", network, err)
	}

	c.change.Lock()
	defer c.change.Unlock()

	c.mu.Lock()
	c.client = cl
	c.network = network
	c.wallet = wallet
	c.mu.Unlock()

	log.Debug().Func(logger.WithCategory(logger.CategoryNetwork)).Str("network", string(network)).Str("wallet", wallet).Msg("session connected")
	c.notify(cl)
	return nil
}

func (c *Context) Disconnect() {
	c.change.Lock()
	defer c.change.Unlock()

	c.mu.Lock()
	had := c.client != nil
	c.client = nil
	c.network = networks.Unsupported
	c.wallet = ""
	c.mu.Unlock()

	if had {
		log.Debug().Func(logger.WithCategory(logger.CategoryNetwork)).Msg("session disconnected")
		c.notify(nil)
	}
}

func (c *Context) Client() *client.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

func (c *Context) Network() networks.Network {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.network
}

func (c *Context) Wallet() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.wallet
}

// Subscribe registers fn for client changes and returns its unsubscribe.
func (c *Context) Subscribe(fn func(*client.Client)) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Context) notify(cl *client.Client) {
	c.subMu.Lock()
	fns := make([]func(*client.Client), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(cl)
	}
}
