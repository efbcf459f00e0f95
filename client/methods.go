package client

import (
	"context"
	"iter"
	"math/big"
	"strings"

	"github.com/hellodex/daofin-dashboard/model"
)

// SubgraphMethods answers the eligibility checks from the indexer. It has no
// signer, so Deposit always fails with ErrSignerRequired.
type SubgraphMethods struct {
	GraphQL  GraphQL
	PluginID string
}

func (m *SubgraphMethods) Deposit(_ context.Context, _ *big.Int) iter.Seq2[DepositStepValue, error] {
	return func(yield func(DepositStepValue, error) bool) {
		yield(DepositStepValue{}, ErrSignerRequired)
	}
}

func (m *SubgraphMethods) IsUserDeposited(ctx context.Context, address string) (bool, error) {
	var out model.Deposits
	err := m.GraphQL.Request(ctx, VoterDepositsQuery, map[string]any{
		"pluginId": m.PluginID,
		"voter":    strings.ToLower(address),
	}, &out)
	if err != nil {
		return false, err
	}
	return len(out.PluginDeposits) > 0, nil
}

func (m *SubgraphMethods) IsVotedOnProposal(ctx context.Context, proposalID string, address string) (bool, error) {
	var out model.Votes
	err := m.GraphQL.Request(ctx, VotesQuery, map[string]any{
		"proposalId": proposalID,
		"voter":      strings.ToLower(address),
	}, &out)
	if err != nil {
		return false, err
	}
	return len(out.PluginVotes) > 0, nil
}
