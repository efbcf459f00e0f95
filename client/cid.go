package client

import (
	"errors"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var ErrInvalidCID = errors.New("invalid ipfs cid")

var (
	ipfsURIPrefix = regexp.MustCompile(`^ipfs://(ipfs/)?`)
	cidPattern    = regexp.MustCompile(`^(Qm[1-9A-HJ-NP-Za-km-z]{44}|b[a-z2-7]{58,}|B[A-Z2-7]{58,}|z[1-9A-HJ-NP-Za-km-z]{48,}|F[0-9A-F]{50,}|f[0-9a-f]{50,})$`)
)

// ResolveIpfsCid extracts the CID from a metadata reference. References may
// be plain CIDs, ipfs:// URIs, or either of those hex encoded as the
// contracts store them.
func ResolveIpfsCid(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "0x") {
		b, err := hexutil.Decode(ref)
		if err != nil {
			return "", ErrInvalidCID
		}
		ref = string(b)
	}
	cid := ipfsURIPrefix.ReplaceAllString(ref, "")
	if !cidPattern.MatchString(cid) {
		return "", ErrInvalidCID
	}
	return cid, nil
}
