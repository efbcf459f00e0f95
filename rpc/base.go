package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/duke-git/lancet/v2/netutil"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	DefaultMaxRetries    uint = 10
	DefaultRetryInterval      = 2 * time.Second
)

var (
	ErrPollTxMaxRetry  = errors.New("transaction not confirmed yet, check the explorer for the final result")
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrTxReverted      = errors.New("transaction reverted")
)

// Error is a JSON-RPC error member.
type Error struct {
	Code    int64
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func rpcLog(e *zerolog.Event) *zerolog.Event {
	return e.Func(logger.WithCategory(logger.CategoryRPC))
}

// Client is a minimal JSON-RPC client for the node of one network.
type Client struct {
	endpoint string
	http     *netutil.HttpClient
	nextID   atomic.Int64

	MaxRetries    uint
	RetryInterval time.Duration
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:      endpoint,
		http:          netutil.NewHttpClient(),
		MaxRetries:    DefaultMaxRetries,
		RetryInterval: DefaultRetryInterval,
	}
}

// WithTimeout bounds handshake and response of every call.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.http = netutil.NewHttpClientWithConfig(&netutil.HttpClientConfig{
			HandshakeTimeout: timeout,
			ResponseTimeout:  timeout,
		})
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// call sends one request and returns its result member.
func (c *Client) call(ctx context.Context, method string, params ...any) (gjson.Result, error) {
	if err := ctx.Err(); err != nil {
		return gjson.Result{}, err
	}
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      c.nextID.Add(1),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	header := http.Header{}
	header.Add("Content-Type", "application/json")

	resp, err := c.http.SendRequest(&netutil.HttpRequest{
		RawURL:  c.endpoint,
		Method:  http.MethodPost,
		Headers: header,
		Body:    body,
	})
	if err != nil {
		rpcLog(log.Error()).Err(err).Str("method", method).Send()
		return gjson.Result{}, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: read response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}

	if e := gjson.GetBytes(data, "error"); e.Exists() && e.Type != gjson.Null {
		return gjson.Result{}, &Error{Code: e.Get("code").Int(), Message: e.Get("message").String()}
	}
	rpcLog(log.Trace()).Str("method", method).RawJSON("response", data).Send()
	return gjson.GetBytes(data, "result"), nil
}
