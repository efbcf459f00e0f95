package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/netutil"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/hellodex/daofin-dashboard/store"
	"github.com/hellodex/daofin-dashboard/util"
	"github.com/rs/zerolog/log"
)

// IPFSClient reads content either from an HTTP gateway (GET <base>/ipfs/<cid>)
// or, when base ends in /api/v0, from the IPFS HTTP API (POST <base>/cat).
// Content is immutable per CID, so every hit is cached in the store.
type IPFSClient struct {
	base  string
	http  *netutil.HttpClient
	store store.ContentStore
}

func NewIPFSClient(base string, contents store.ContentStore) *IPFSClient {
	return &IPFSClient{
		base:  strings.TrimRight(base, "/"),
		http:  newHTTPClient(0),
		store: contents,
	}
}

func (c *IPFSClient) WithTimeout(timeout time.Duration) *IPFSClient {
	c.http = newHTTPClient(timeout)
	return c
}

func (c *IPFSClient) isAPI() bool {
	return strings.HasSuffix(c.base, "/api/v0")
}

func (c *IPFSClient) FetchString(ctx context.Context, cid string) (string, error) {
	if c.base == "" {
		return "", fmt.Errorf("ipfs: no gateway configured")
	}
	if c.store != nil {
		if v, ok := c.store.Get(ctx, cid); ok {
			log.Trace().Func(logger.WithCategory(logger.CategoryIPFS)).Str("cid", cid).Msg("cache hit")
			return v, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := &netutil.HttpRequest{
		RawURL: util.JoinURL(c.base, "ipfs/"+cid),
		Method: http.MethodGet,
	}
	if c.isAPI() {
		req = &netutil.HttpRequest{
			RawURL:      util.JoinURL(c.base, "cat"),
			Method:      http.MethodPost,
			QueryParams: url.Values{"arg": []string{cid}},
		}
	}

	resp, err := c.http.SendRequest(req)
	if err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryIPFS)).Err(err).Str("cid", cid).Send()
		return "", fmt.Errorf("ipfs fetch %s: %w", cid, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ipfs read %s: %w", cid, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ipfs fetch %s: unexpected status %d", cid, resp.StatusCode)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content := string(data)
	if c.store != nil {
		c.store.Set(ctx, cid, content)
	}
	return content, nil
}
