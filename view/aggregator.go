package view

import (
	"context"
	"errors"
	"sync"

	"github.com/hellodex/daofin-dashboard/hooks"
	"github.com/hellodex/daofin-dashboard/session"
	"github.com/hellodex/daofin-dashboard/util"
	"github.com/shopspring/decimal"
)

// Aggregator keeps the eligibility hooks of one proposal and voter together.
type Aggregator struct {
	session    *session.Context
	proposalID string

	mu    sync.Mutex
	voter string

	deposited *hooks.Resource[string, bool]
	voted     *hooks.Resource[hooks.VoteKey, bool]
	amount    *hooks.Resource[string, decimal.Decimal]
}

func NewAggregator(ctx context.Context, s *session.Context, proposalID, voter string) *Aggregator {
	return &Aggregator{
		session:    s,
		proposalID: proposalID,
		voter:      voter,
		deposited:  hooks.UseIsUserDeposited(ctx, s, voter),
		voted:      hooks.UseIsUserVotedOnProposal(ctx, s, proposalID, voter),
		amount:     hooks.UseVoterDepositAmount(ctx, s, voter),
	}
}

// SetVoter switches every hook to a new voter. In-flight lookups for the
// previous voter are discarded.
func (a *Aggregator) SetVoter(voter string) {
	a.mu.Lock()
	a.voter = voter
	a.mu.Unlock()

	a.deposited.SetKey(voter)
	a.voted.SetKey(hooks.VoteKey{ProposalID: a.proposalID, Voter: voter})
	a.amount.SetKey(voter)
}

// Subscribe calls fn after any hook changes state.
func (a *Aggregator) Subscribe(fn func()) func() {
	unsubs := []func(){
		a.deposited.Subscribe(func(hooks.State[bool]) { fn() }),
		a.voted.Subscribe(func(hooks.State[bool]) { fn() }),
		a.amount.Subscribe(func(hooks.State[decimal.Decimal]) { fn() }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (a *Aggregator) Wait() {
	a.deposited.Wait()
	a.voted.Wait()
	a.amount.Wait()
}

func (a *Aggregator) Close() {
	a.deposited.Close()
	a.voted.Close()
	a.amount.Close()
}

func (a *Aggregator) Snapshot() Eligibility {
	deposited := a.deposited.View()
	voted := a.voted.View()
	amount := a.amount.View()

	decimals := int32(18)
	if c := a.session.Client(); c != nil {
		decimals = chainDecimals(c.Network)
	}

	a.mu.Lock()
	voter := a.voter
	a.mu.Unlock()

	return Eligibility{
		Voter:         voter,
		HasDeposit:    deposited.Data,
		HasVoted:      voted.Data,
		DepositAmount: util.FormatEther(amount.Data, decimals),
		Loading:       deposited.IsLoading || voted.IsLoading || amount.IsLoading,
		Err:           errors.Join(deposited.Err, voted.Err, amount.Err),
	}
}
