package session

import (
	"fmt"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/config"
	"github.com/hellodex/daofin-dashboard/networks"
	"github.com/hellodex/daofin-dashboard/store"
)

// NewFactory builds HTTP clients from configuration. Endpoints missing from
// the config fall back to the registry defaults for the network.
func NewFactory(cfg *config.Config, registry *networks.Registry, contents store.ContentStore) Factory {
	return func(network networks.Network, wallet string) (*client.Client, error) {
		chain := registry.Chain(network)

		subgraph := cfg.Endpoints.Subgraph
		if subgraph == "" {
			subgraph = networks.SubgraphURL(network)
		}
		if subgraph == "" {
			return nil, fmt.Errorf("no subgraph endpoint for %s", network)
		}

		gateway := cfg.Endpoints.IPFS
		if gateway == "" {
			gateway = chain.IPFS
		}

		pluginID := networks.PluginInstallationID(cfg.Dao.Address, cfg.Dao.PluginAddress)
		gql := client.NewGraphQLClient(subgraph).WithTimeout(cfg.Endpoints.Timeout)

		return &client.Client{
			Network:  network,
			Wallet:   wallet,
			PluginID: pluginID,
			GraphQL:  gql,
			IPFS:     client.NewIPFSClient(gateway, contents).WithTimeout(cfg.Endpoints.Timeout),
			Methods:  &client.SubgraphMethods{GraphQL: gql, PluginID: pluginID},
		}, nil
	}
}
