package util

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsAccountAddress accepts 40 hex digits with an optional lowercase 0x prefix.
// Mixed-case input must carry a valid EIP-55 checksum and the prefix.
func IsAccountAddress(address string) bool {
	if strings.HasPrefix(address, "0X") || !common.IsHexAddress(address) {
		return false
	}
	digits := strings.TrimPrefix(address, "0x")
	if strings.ToLower(digits) == digits || strings.ToUpper(digits) == digits {
		return true
	}
	return common.HexToAddress(address).Hex() == address
}

// ShortenAddress keeps the first five and last four characters of an account
// address. Anything that is not an address is returned unchanged.
func ShortenAddress(address string) string {
	if address == "" {
		return ""
	}
	if !IsAccountAddress(address) {
		return address
	}
	return address[:5] + "…" + address[len(address)-4:]
}
