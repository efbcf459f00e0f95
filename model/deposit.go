package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func UnmarshalDeposits(data []byte) (Deposits, error) {
	var r Deposits
	err := json.Unmarshal(data, &r)
	return r, err
}

type Deposits struct {
	PluginDeposits []Deposit `json:"pluginDeposits"`
}

type Deposit struct {
	ID            string          `json:"id"`
	Voter         string          `json:"voter"`
	Amount        decimal.Decimal `json:"amount"`
	SnapshotBlock string          `json:"snapshotBlock"`
	TxHash        string          `json:"txHash"`
}

func (d Deposit) SnapshotBlockNumber() int64 {
	return cast.ToInt64(d.SnapshotBlock)
}

type Votes struct {
	PluginVotes []Vote `json:"pluginVotes"`
}

type Vote struct {
	ID     string `json:"id"`
	Voter  string `json:"voter"`
	Option string `json:"option"`
}
