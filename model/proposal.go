package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// TransferCallData marks an action that only moves native currency.
const TransferCallData = "0x"

func UnmarshalSubgraphProposals(data []byte) (SubgraphProposals, error) {
	var r SubgraphProposals
	err := json.Unmarshal(data, &r)
	return r, err
}

type SubgraphProposals struct {
	PluginProposals []SubgraphProposal `json:"pluginProposals"`
}

type SubgraphProposalResp struct {
	PluginProposal *SubgraphProposal `json:"pluginProposal"`
}

// SubgraphProposal is a proposal record as the indexer stores it. Numeric
// fields arrive as decimal strings and Metadata is the raw content reference.
type SubgraphProposal struct {
	ID                    string   `json:"id"`
	PluginProposalID      string   `json:"pluginProposalId"`
	FailureMap            string   `json:"failureMap"`
	Creator               string   `json:"creator"`
	Metadata              string   `json:"metadata"`
	StartDate             string   `json:"startDate"`
	EndDate               string   `json:"endDate"`
	CreationBlockNumber   string   `json:"creationBlockNumber"`
	SnapshotBlock         string   `json:"snapshotBlock"`
	Executed              bool     `json:"executed"`
	PotentiallyExecutable bool     `json:"potentiallyExecutable"`
	Actions               []Action `json:"actions"`
	Dao                   DaoRef   `json:"dao"`
}

type DaoRef struct {
	ID string `json:"id"`
}

type Action struct {
	ID    string          `json:"id"`
	To    string          `json:"to"`
	Value decimal.Decimal `json:"value"`
	Data  string          `json:"data"`
}

// IsTransfer reports whether the action carries no call data. Anything else
// is a contract call this layer does not decode.
func (a Action) IsTransfer() bool {
	return a.Data == TransferCallData
}

type ProposalMetadata struct {
	Title       string             `json:"title"`
	Summary     string             `json:"summary"`
	Description string             `json:"description"`
	Resources   []ProposalResource `json:"resources,omitempty"`
	Media       *ProposalMedia     `json:"media,omitempty"`
}

type ProposalResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ProposalMedia struct {
	Header string `json:"header,omitempty"`
	Logo   string `json:"logo,omitempty"`
}

func UnmarshalProposalMetadata(data []byte) (ProposalMetadata, error) {
	var r ProposalMetadata
	err := json.Unmarshal(data, &r)
	return r, err
}

// Proposal is a subgraph proposal with its metadata resolved. When the
// metadata could not be fetched MetadataResolved is false, MetadataErr holds
// the cause and MetadataURI still points at the unresolved reference.
type Proposal struct {
	ID                    string
	PluginProposalID      string
	FailureMap            string
	Creator               string
	Dao                   DaoRef
	StartDate             int64
	EndDate               int64
	CreationBlockNumber   int64
	SnapshotBlock         int64
	Executed              bool
	PotentiallyExecutable bool
	Actions               []Action
	MetadataURI           string
	Metadata              ProposalMetadata
	MetadataResolved      bool
	MetadataErr           error
}

// NewProposal copies the indexer record; metadata is left unresolved.
func NewProposal(sp SubgraphProposal) Proposal {
	return Proposal{
		ID:                    sp.ID,
		PluginProposalID:      sp.PluginProposalID,
		FailureMap:            sp.FailureMap,
		Creator:               sp.Creator,
		Dao:                   sp.Dao,
		StartDate:             cast.ToInt64(sp.StartDate),
		EndDate:               cast.ToInt64(sp.EndDate),
		CreationBlockNumber:   cast.ToInt64(sp.CreationBlockNumber),
		SnapshotBlock:         cast.ToInt64(sp.SnapshotBlock),
		Executed:              sp.Executed,
		PotentiallyExecutable: sp.PotentiallyExecutable,
		Actions:               sp.Actions,
		MetadataURI:           sp.Metadata,
	}
}

// Title falls back to the proposal id while metadata is unresolved.
func (p Proposal) Title() string {
	if p.MetadataResolved && p.Metadata.Title != "" {
		return p.Metadata.Title
	}
	return p.ID
}
