package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hellodex/daofin-dashboard/config"
	"github.com/hellodex/daofin-dashboard/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProposalsCommand(t *testing.T) {
	subgraph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "ProposalsQuery")
		_, _ = w.Write([]byte(`{"data":{"pluginProposals":[{"id":"0xplugin_0x0","pluginProposalId":"0","creator":"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed","metadata":"ipfs://` + testCID + `","startDate":"1700000000","endDate":"1700600000","actions":[],"dao":{"id":"0xdao"}}]}}`))
	}))
	defer subgraph.Close()
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ipfs/"+testCID, r.URL.Path)
		_, _ = w.Write([]byte(`{"title":"Upgrade plugin","summary":"s","description":"d"}`))
	}))
	defer gateway.Close()

	path := writeConfig(t, `
env:
  network: apothem
dao:
  address: "0x1111111111111111111111111111111111111111"
  plugin_address: "0x2222222222222222222222222222222222222222"
endpoints:
  subgraph: `+subgraph.URL+`
  ipfs: `+gateway.URL+`
`)

	out, err := execute(t, "proposals", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 proposals:")
	assert.Contains(t, out, "#0 Upgrade plugin")
}

func TestNetworkCommand(t *testing.T) {
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x32"}`))
	}))
	defer node.Close()

	path := writeConfig(t, `
endpoints:
  subgraph: http://127.0.0.1:1/subgraph
  rpc: `+node.URL+`
`)

	out, err := execute(t, "network", "--config", path, "--network", "xdc")
	require.NoError(t, err)
	assert.Contains(t, out, "XDC (chain id 50, xdc)")
	assert.Contains(t, out, "node: "+node.URL+" ok")

	_, err = execute(t, "network", "--config", path, "--network", "apothem")
	assert.ErrorContains(t, err, "serves xdc, not apothem")
}

func TestUnsupportedNetwork(t *testing.T) {
	path := writeConfig(t, "endpoints:\n  subgraph: http://127.0.0.1:1/subgraph\n")
	_, err := execute(t, "network", "--config", path, "--network", "polygon")
	assert.ErrorContains(t, err, "unsupported network")
}

func TestNewContentStore(t *testing.T) {
	cfg := config.Default()
	_, ok := newContentStore(context.Background(), cfg).(*store.MemoryStore)
	assert.True(t, ok)

	cfg.Cache.RedisAddr = "127.0.0.1:1"
	_, ok = newContentStore(context.Background(), cfg).(*store.MemoryStore)
	assert.True(t, ok)
}
