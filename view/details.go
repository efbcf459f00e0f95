package view

import (
	"time"

	"github.com/hellodex/daofin-dashboard/model"
	"github.com/hellodex/daofin-dashboard/networks"
	"github.com/hellodex/daofin-dashboard/util"
	"github.com/samber/lo"
)

type Action struct {
	Value         string
	Symbol        string
	To            string
	Target        string
	Data          string
	InvalidAction bool
}

type Durations struct {
	Now   time.Time
	Start time.Time
	End   time.Time
}

// Eligibility is what the connected voter may do on one proposal. Voter is
// empty when no wallet is connected.
type Eligibility struct {
	Voter         string
	HasDeposit    bool
	HasVoted      bool
	DepositAmount string
	Loading       bool
	Err           error
}

func (e Eligibility) Connected() bool {
	return e.Voter != ""
}

// ProposalDetails is everything the proposal page renders.
type ProposalDetails struct {
	ID               string
	PluginProposalID string
	Title            string
	Summary          string
	Description      string
	Publisher        string
	PublisherLink    string
	Executed         bool
	MetadataResolved bool
	Symbol           string
	Actions          []Action
	Durations        Durations
	Eligibility      Eligibility
	CanVote          bool
	CanDeposit       bool
}

func NewProposalDetails(p model.Proposal, network networks.Network, e Eligibility, now time.Time) ProposalDetails {
	native := networks.Chain(network).NativeCurrency

	d := ProposalDetails{
		ID:               p.ID,
		PluginProposalID: p.PluginProposalID,
		Title:            p.Title(),
		Summary:          p.Metadata.Summary,
		Description:      p.Metadata.Description,
		Publisher:        util.ShortenAddress(p.Creator),
		PublisherLink:    networks.ExplorerAddressLink(network, p.Creator),
		Executed:         p.Executed,
		MetadataResolved: p.MetadataResolved,
		Symbol:           native.Symbol,
		Durations: Durations{
			Now:   now.UTC(),
			Start: time.Unix(p.StartDate, 0).UTC(),
			End:   time.Unix(p.EndDate, 0).UTC(),
		},
		Eligibility: e,
	}

	d.Actions = lo.Map(p.Actions, func(a model.Action, _ int) Action {
		return Action{
			Value:         util.FormatEther(a.Value, native.Decimals),
			Symbol:        native.Symbol,
			To:            util.ShortenAddress(a.To),
			Target:        a.To,
			Data:          a.Data,
			InvalidAction: !a.IsTransfer(),
		}
	})

	ready := e.Connected() && !e.Loading
	d.CanVote = ready && !e.HasVoted
	d.CanDeposit = ready && !e.HasDeposit
	return d
}

type DepositRow struct {
	ID            string
	Voter         string
	Amount        string
	Symbol        string
	SnapshotBlock int64
	TxHash        string
	TxLink        string
}

func NewDepositRows(deposits []model.Deposit, network networks.Network) []DepositRow {
	chain := networks.Chain(network)
	return lo.Map(deposits, func(d model.Deposit, _ int) DepositRow {
		return DepositRow{
			ID:            d.ID,
			Voter:         util.ShortenAddress(d.Voter),
			Amount:        util.FormatEther(d.Amount, chain.NativeCurrency.Decimals),
			Symbol:        chain.NativeCurrency.Symbol,
			SnapshotBlock: d.SnapshotBlockNumber(),
			TxHash:        d.TxHash,
			TxLink:        util.TxLink(chain.Explorer, d.TxHash),
		}
	})
}

func chainDecimals(network networks.Network) int32 {
	return networks.Chain(network).NativeCurrency.Decimals
}
