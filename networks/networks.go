package networks

import (
	"github.com/samber/lo"
)

type Network string

const (
	Apothem     Network = "apothem"
	XDC         Network = "xdc"
	Unsupported Network = "unsupported"
)

type NetworkDomain string

const (
	L1Blockchain NetworkDomain = "L1 Blockchain"
	L2Blockchain NetworkDomain = "L2 Blockchain"
)

// SupportedChainIDs are the chain ids the wallet connector accepts.
var SupportedChainIDs = []int64{1, 5, 137, 80001, 42161, 421613, 50, 51}

var supportedNetworks = []Network{Apothem, XDC}

type NativeTokenData struct {
	Name     string `yaml:"name" json:"name"`
	Symbol   string `yaml:"symbol" json:"symbol"`
	Decimals int32  `yaml:"decimals" json:"decimals"`
}

type ChainData struct {
	ID              int64           `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Domain          NetworkDomain   `yaml:"domain" json:"domain"`
	Testnet         bool            `yaml:"testnet" json:"testnet"`
	Explorer        string          `yaml:"explorer" json:"explorer"`
	Logo            string          `yaml:"logo" json:"logo"`
	RPC             []string        `yaml:"rpc" json:"rpc"`
	NativeCurrency  NativeTokenData `yaml:"native_currency" json:"nativeCurrency"`
	EtherscanAPI    string          `yaml:"etherscan_api" json:"etherscanApi"`
	EtherscanAPIKey string          `yaml:"etherscan_api_key,omitempty" json:"etherscanApiKey,omitempty"`
	SupportsEns     bool            `yaml:"supports_ens" json:"supportsEns"`
	IPFS            string          `yaml:"ipfs,omitempty" json:"ipfs,omitempty"`
}

type entry struct {
	network Network
	data    ChainData
}

// Registry is an ordered, read-only set of chain entries. Lookups by chain id
// resolve to the first registered entry.
type Registry struct {
	entries []entry
}

func NewRegistry(networks []Network, data []ChainData) *Registry {
	r := &Registry{}
	for i, n := range networks {
		if i < len(data) {
			r.entries = append(r.entries, entry{network: n, data: data[i]})
		}
	}
	return r
}

var Default = NewRegistry(
	[]Network{Apothem, XDC, Unsupported},
	[]ChainData{
		{
			ID:       51,
			Name:     "Apothem",
			Domain:   L1Blockchain,
			Logo:     "https://icons.llamao.fi/icons/chains/rsz_xdc.jpg",
			Explorer: "https://apothem.xdcscan.io/",
			Testnet:  true,
			RPC:      []string{"https://erpc.apothem.network/", "https://apothem.xdcrpc.com/"},
			NativeCurrency: NativeTokenData{
				Name:     "TXDC",
				Symbol:   "TXDC",
				Decimals: 18,
			},
			EtherscanAPI: "https://apothem.xdcscan.io/api",
			SupportsEns:  true,
		},
		{
			ID:       50,
			Name:     "XDC",
			Domain:   L1Blockchain,
			Logo:     "https://icons.llamao.fi/icons/chains/rsz_xdc.jpg",
			Explorer: "https://xdcscan.io/",
			Testnet:  false,
			RPC:      []string{"https://xdc.xdcrpc.com/", "wss://ews.xdc.network/"},
			NativeCurrency: NativeTokenData{
				Name:     "XDC",
				Symbol:   "XDC",
				Decimals: 18,
			},
			EtherscanAPI: "https://xdc.xdcscan.io/api",
		},
		{
			ID:     1,
			Name:   "Unsupported",
			Domain: L1Blockchain,
			RPC:    []string{},
			NativeCurrency: NativeTokenData{
				Decimals: 18,
			},
		},
	},
)

// Chain returns the entry for network, or the unsupported sentinel.
func (r *Registry) Chain(network Network) ChainData {
	if e, ok := lo.Find(r.entries, func(e entry) bool { return e.network == network }); ok {
		return e.data
	}
	e, _ := lo.Find(r.entries, func(e entry) bool { return e.network == Unsupported })
	return e.data
}

// WithIPFS returns a copy of the registry whose supported entries use gateway
// as their IPFS endpoint. The sentinel keeps an empty gateway.
func (r *Registry) WithIPFS(gateway string) *Registry {
	out := &Registry{entries: make([]entry, 0, len(r.entries))}
	for _, e := range r.entries {
		d := e.data
		d.RPC = append([]string(nil), e.data.RPC...)
		if e.network != Unsupported {
			d.IPFS = gateway
		}
		out.entries = append(out.entries, entry{network: e.network, data: d})
	}
	return out
}

// SupportedNetworkByChainID resolves a chain id to the first registered
// supported network carrying it. The unsupported sentinel never matches.
func (r *Registry) SupportedNetworkByChainID(chainID int64) (Network, bool) {
	if !IsSupportedChainID(chainID) {
		return "", false
	}
	e, ok := lo.Find(r.entries, func(e entry) bool {
		return e.network != Unsupported && e.data.ID == chainID
	})
	if !ok {
		return "", false
	}
	return e.network, true
}

// DuplicateChainIDs lists every chain id claimed by more than one network,
// in registration order.
func (r *Registry) DuplicateChainIDs() map[int64][]Network {
	byID := map[int64][]Network{}
	for _, e := range r.entries {
		if e.network == Unsupported {
			continue
		}
		byID[e.data.ID] = append(byID[e.data.ID], e.network)
	}
	return lo.PickBy(byID, func(_ int64, ns []Network) bool { return len(ns) > 1 })
}

func (r *Registry) ExplorerAddressLink(network Network, address string) string {
	return r.Chain(network).Explorer + "address/" + address
}

func Chain(network Network) ChainData {
	return Default.Chain(network)
}

func SupportedNetworkByChainID(chainID int64) (Network, bool) {
	return Default.SupportedNetworkByChainID(chainID)
}

func ExplorerAddressLink(network Network, address string) string {
	return Default.ExplorerAddressLink(network, address)
}

func IsSupportedChainID(chainID int64) bool {
	return lo.Contains(SupportedChainIDs, chainID)
}

func IsSupportedNetwork(name string) bool {
	return lo.Contains(supportedNetworks, Network(name))
}

func ToSupportedNetwork(name string) Network {
	if IsSupportedNetwork(name) {
		return Network(name)
	}
	return Unsupported
}

// TranslateToAppNetwork maps an SDK network name to the app network.
func TranslateToAppNetwork(sdkNetwork string) Network {
	switch sdkNetwork {
	case "apothem":
		return Apothem
	case "xdc":
		return XDC
	}
	return Unsupported
}

// TranslateToNetworkishName maps the app network to the SDK network name.
func TranslateToNetworkishName(network Network) string {
	switch network {
	case Apothem:
		return "apothem"
	case XDC:
		return "xdc"
	}
	return string(Unsupported)
}

var subgraphURLs = map[Network]string{
	Apothem: "http://localhost:8000/subgraphs/name/xinfin-osx-apothem",
}

// SubgraphURL returns the default indexer endpoint, empty when none is known.
func SubgraphURL(network Network) string {
	return subgraphURLs[network]
}
