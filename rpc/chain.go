package rpc

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hellodex/daofin-dashboard/networks"
)

func (c *Client) ChainID(ctx context.Context) (int64, error) {
	result, err := c.call(ctx, "eth_chainId")
	if err != nil {
		return 0, err
	}
	id, err := hexutil.DecodeUint64(result.String())
	if err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}
	return int64(id), nil
}

// Network maps the node's chain id to a supported network.
func (c *Client) Network(ctx context.Context) (networks.Network, error) {
	id, err := c.ChainID(ctx)
	if err != nil {
		return networks.Unsupported, err
	}
	network, ok := networks.SupportedNetworkByChainID(id)
	if !ok {
		return networks.Unsupported, fmt.Errorf("chain id %d is not a supported network", id)
	}
	return network, nil
}
