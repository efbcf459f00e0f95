package client

import (
	"context"
	"errors"
	"iter"
	"math/big"

	"github.com/hellodex/daofin-dashboard/networks"
)

type DepositStepKey string

const (
	DepositStepDepositing DepositStepKey = "depositing"
	DepositStepDone       DepositStepKey = "done"
)

// DepositStepValue is one event of the external deposit transaction process.
// TxHash is set on the depositing step.
type DepositStepValue struct {
	Key    DepositStepKey
	TxHash string
}

var (
	ErrClientNotReady = errors.New("client not ready")
	ErrSignerRequired = errors.New("deposit requires a connected signer")
)

// Methods are the contract-facing calls of the plugin client.
type Methods interface {
	Deposit(ctx context.Context, amount *big.Int) iter.Seq2[DepositStepValue, error]
	IsUserDeposited(ctx context.Context, address string) (bool, error)
	IsVotedOnProposal(ctx context.Context, proposalID string, address string) (bool, error)
}

type GraphQL interface {
	Request(ctx context.Context, query string, params map[string]any, out any) error
}

type IPFS interface {
	FetchString(ctx context.Context, cid string) (string, error)
}

// Client bundles the sub-clients for one network and wallet connection.
type Client struct {
	Network  networks.Network
	Wallet   string
	PluginID string
	Methods  Methods
	GraphQL  GraphQL
	IPFS     IPFS
}
