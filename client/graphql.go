package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/netutil"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLError carries the messages of a response errors array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type GraphQLClient struct {
	endpoint string
	http     *netutil.HttpClient
}

func NewGraphQLClient(endpoint string) *GraphQLClient {
	return &GraphQLClient{
		endpoint: endpoint,
		http:     newHTTPClient(0),
	}
}

func (c *GraphQLClient) WithTimeout(timeout time.Duration) *GraphQLClient {
	c.http = newHTTPClient(timeout)
	return c
}

func graphqlLog(e *zerolog.Event) *zerolog.Event {
	return e.Func(logger.WithCategory(logger.CategoryGraphQL))
}

// Request posts query with params and decodes the data member into out.
func (c *GraphQLClient) Request(ctx context.Context, query string, params map[string]any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(GraphQLRequest{Query: query, Variables: params})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	header := http.Header{}
	header.Add("Content-Type", "application/json")
	header.Add("Accept", "application/json")

	req := &netutil.HttpRequest{
		RawURL:  c.endpoint,
		Method:  http.MethodPost,
		Headers: header,
		Body:    body,
	}

	graphqlLog(log.Trace()).RawJSON("request", body).Send()
	resp, err := c.http.SendRequest(req)
	if err != nil {
		graphqlLog(log.Error()).Err(err).Str("endpoint", c.endpoint).Send()
		return fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read graphql response: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if errs := gjson.GetBytes(data, "errors").Array(); len(errs) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range errs {
			gqlErr.Messages = append(gqlErr.Messages, e.Get("message").String())
		}
		return gqlErr
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql request: unexpected status %d", resp.StatusCode)
	}

	result := gjson.GetBytes(data, "data")
	if !result.IsObject() {
		return fmt.Errorf("graphql request: response has no data")
	}
	graphqlLog(log.Trace()).RawJSON("data", []byte(result.Raw)).Send()

	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(result.Raw), out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}
