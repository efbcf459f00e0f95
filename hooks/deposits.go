package hooks

import (
	"context"
	"fmt"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/model"
	"github.com/hellodex/daofin-dashboard/session"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func UseDeposits(ctx context.Context, s *session.Context, pluginID string) *Resource[string, []model.Deposit] {
	r := NewResource(ctx, "useDeposits", FetchDeposits, WithSkip[string, []model.Deposit](emptyKey))
	return bind(s, r, pluginID)
}

// UseVoterDepositAmount sums the deposits of voter in the session's plugin.
// An empty voter is zero without a fetch.
func UseVoterDepositAmount(ctx context.Context, s *session.Context, voter string) *Resource[string, decimal.Decimal] {
	r := NewResource(ctx, "useFetchVoterDepositAmount", FetchVoterDepositAmount,
		WithShortCircuit(func(voter string) (decimal.Decimal, bool) {
			return decimal.Zero, voter == ""
		}),
	)
	return bind(s, r, voter)
}

func FetchDeposits(ctx context.Context, c *client.Client, pluginID string) ([]model.Deposit, error) {
	if c.GraphQL == nil {
		return nil, client.ErrClientNotReady
	}
	var out model.Deposits
	err := c.GraphQL.Request(ctx, client.DepositsQuery, map[string]any{"pluginId": pluginID}, &out)
	if err != nil {
		return nil, fmt.Errorf("fetch deposits: %w", err)
	}
	return out.PluginDeposits, nil
}

func FetchVoterDepositAmount(ctx context.Context, c *client.Client, voter string) (decimal.Decimal, error) {
	if c.GraphQL == nil {
		return decimal.Zero, client.ErrClientNotReady
	}
	var out model.Deposits
	err := c.GraphQL.Request(ctx, client.VoterDepositsQuery, map[string]any{
		"pluginId": c.PluginID,
		"voter":    lowerHex(voter),
	}, &out)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch voter deposits: %w", err)
	}
	return lo.Reduce(out.PluginDeposits, func(sum decimal.Decimal, d model.Deposit, _ int) decimal.Decimal {
		return sum.Add(d.Amount)
	}, decimal.Zero), nil
}
