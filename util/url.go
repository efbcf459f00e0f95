package util

import (
	"strings"
)

// TxLink builds an explorer link for a transaction hash, empty when the
// explorer is unknown.
func TxLink(explorer string, hash string) string {
	if explorer == "" || hash == "" {
		return ""
	}
	if !strings.HasSuffix(explorer, "/") {
		explorer += "/"
	}
	return explorer + "tx/" + hash
}

// JoinURL appends path to base with exactly one slash between them.
func JoinURL(base string, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
