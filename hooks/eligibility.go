package hooks

import (
	"context"
	"strings"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/session"
)

type VoteKey struct {
	ProposalID string
	Voter      string
}

func notConnected(voter string) (bool, bool) {
	return false, voter == ""
}

// UseIsUserDeposited reports whether voter has a deposit. An empty voter is
// false immediately and never reaches the client.
func UseIsUserDeposited(ctx context.Context, s *session.Context, voter string) *Resource[string, bool] {
	r := NewResource(ctx, "useIsUserDeposited", FetchIsUserDeposited, WithShortCircuit[string, bool](notConnected))
	return bind(s, r, voter)
}

// UseIsUserVotedOnProposal reports whether voter voted on proposalID, with
// the same empty-voter fast path. An empty proposal id does not fetch.
func UseIsUserVotedOnProposal(ctx context.Context, s *session.Context, proposalID, voter string) *Resource[VoteKey, bool] {
	r := NewResource(ctx, "useIsUserVotedOnProposal", FetchIsUserVotedOnProposal,
		WithShortCircuit(func(k VoteKey) (bool, bool) { return notConnected(k.Voter) }),
		WithSkip[VoteKey, bool](func(k VoteKey) bool { return k.ProposalID == "" }),
	)
	return bind(s, r, VoteKey{ProposalID: proposalID, Voter: voter})
}

func FetchIsUserDeposited(ctx context.Context, c *client.Client, voter string) (bool, error) {
	if c.Methods == nil {
		return false, client.ErrClientNotReady
	}
	return c.Methods.IsUserDeposited(ctx, voter)
}

func FetchIsUserVotedOnProposal(ctx context.Context, c *client.Client, k VoteKey) (bool, error) {
	if c.Methods == nil {
		return false, client.ErrClientNotReady
	}
	return c.Methods.IsVotedOnProposal(ctx, k.ProposalID, k.Voter)
}

func lowerHex(address string) string {
	return strings.ToLower(address)
}
