package networks

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PluginInstallationID is keccak256(abi.encode(dao, plugin)), the id the
// subgraph uses for a plugin installation.
func PluginInstallationID(daoAddress, pluginAddress string) string {
	dao := common.HexToAddress(daoAddress)
	plugin := common.HexToAddress(pluginAddress)
	return crypto.Keccak256Hash(
		common.LeftPadBytes(dao.Bytes(), 32),
		common.LeftPadBytes(plugin.Bytes(), 32),
	).Hex()
}

// PluginProposalID encodes a plugin-scoped proposal number the way the
// subgraph keys proposals: "<plugin>_0x<hex id>".
func PluginProposalID(pluginAddress string, proposalID int64) string {
	return fmt.Sprintf("%s_0x%x", strings.ToLower(pluginAddress), proposalID)
}

// ToDisplayEns returns name with the .dao.eth suffix, or empty for the null
// name.
func ToDisplayEns(name string) string {
	if name == "" || name == "null.dao.eth" {
		return ""
	}
	if !strings.Contains(name, ".dao.eth") {
		return name + ".dao.eth"
	}
	return name
}
