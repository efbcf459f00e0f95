package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/config"
	"github.com/hellodex/daofin-dashboard/networks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFactory(network networks.Network, wallet string) (*client.Client, error) {
	return &client.Client{Network: network, Wallet: wallet}, nil
}

func TestContext_Lifecycle(t *testing.T) {
	s := New(staticFactory)
	assert.Nil(t, s.Client())
	assert.Equal(t, networks.Unsupported, s.Network())

	var seen []*client.Client
	unsubscribe := s.Subscribe(func(c *client.Client) { seen = append(seen, c) })

	require.NoError(t, s.Connect(networks.Apothem, "0xabc"))
	first := s.Client()
	require.NotNil(t, first)
	assert.Equal(t, "0xabc", s.Wallet())

	require.NoError(t, s.Connect(networks.Apothem, "0xdef"))
	assert.NotSame(t, first, s.Client(), "a new connection recreates the client")

	s.Disconnect()
	assert.Nil(t, s.Client())
	assert.Equal(t, "", s.Wallet())

	require.Len(t, seen, 3)
	assert.Nil(t, seen[2])

	unsubscribe()
	require.NoError(t, s.Connect(networks.XDC, ""))
	assert.Len(t, seen, 3)
}

func TestContext_ConcurrentConnectsNotifyInOrder(t *testing.T) {
	s := New(staticFactory)

	var mu sync.Mutex
	var last *client.Client
	notified := 0
	s.Subscribe(func(c *client.Client) {
		assert.Same(t, s.Client(), c, "subscriber sees the handle it is told about")
		mu.Lock()
		last = c
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%8 == 7 {
				s.Disconnect()
				return
			}
			assert.NoError(t, s.Connect(networks.Apothem, fmt.Sprintf("0x%040x", i)))
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Same(t, s.Client(), last)
	assert.GreaterOrEqual(t, notified, 28)
}

func TestContext_ConnectErrors(t *testing.T) {
	s := New(staticFactory)
	require.NoError(t, s.Connect(networks.Apothem, "0xabc"))

	err := s.Connect(networks.Network("goerli"), "0xabc")
	assert.Error(t, err)
	assert.Nil(t, s.Client())

	failing := New(func(networks.Network, string) (*client.Client, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, failing.Connect(networks.XDC, ""))
	assert.Nil(t, failing.Client())
}

func TestNewFactory(t *testing.T) {
	cfg := config.Default()
	cfg.Dao.Address = "0x1111111111111111111111111111111111111111"
	cfg.Dao.PluginAddress = "0x2222222222222222222222222222222222222222"

	f := NewFactory(cfg, networks.Default, nil)

	c, err := f(networks.Apothem, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, networks.PluginInstallationID(cfg.Dao.Address, cfg.Dao.PluginAddress), c.PluginID)
	assert.NotNil(t, c.GraphQL)
	assert.NotNil(t, c.IPFS)
	assert.NotNil(t, c.Methods)

	// no default subgraph for mainnet
	_, err = f(networks.XDC, "")
	assert.Error(t, err)

	cfg.Endpoints.Subgraph = "http://indexer.local/subgraphs/name/xinfin-osx-xdc"
	_, err = f(networks.XDC, "")
	assert.NoError(t, err)
}
