package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

type Receipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
	Status      uint64
}

func (r *Receipt) Succeeded() bool {
	return r.Status == 1
}

func decodeQuantity(result gjson.Result, name string) (uint64, error) {
	v := result.Get(name)
	if !v.Exists() {
		return 0, nil
	}
	n, err := hexutil.DecodeUint64(v.String())
	if err != nil {
		return 0, fmt.Errorf("receipt %s: %w", name, err)
	}
	return n, nil
}

func parseReceipt(result gjson.Result) (*Receipt, error) {
	r := &Receipt{TxHash: result.Get("transactionHash").String()}
	var err error
	if r.BlockNumber, err = decodeQuantity(result, "blockNumber"); err != nil {
		return nil, err
	}
	if r.GasUsed, err = decodeQuantity(result, "gasUsed"); err != nil {
		return nil, err
	}
	if r.Status, err = decodeQuantity(result, "status"); err != nil {
		return nil, err
	}
	return r, nil
}

// TransactionReceipt returns ErrReceiptNotFound while the transaction is not
// mined.
func (c *Client) TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	result, err := c.call(ctx, "eth_getTransactionReceipt", txHash)
	if err != nil {
		return nil, err
	}
	if !result.IsObject() {
		return nil, ErrReceiptNotFound
	}
	return parseReceipt(result)
}

// WaitForReceipt polls until the transaction is mined. A reverted
// transaction fails with ErrTxReverted; running out of attempts fails with
// ErrPollTxMaxRetry.
func (c *Client) WaitForReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	rpcLog(log.Debug()).Str("tx", txHash).Msg("poll transaction receipt")

	operation := func() (*Receipt, error) {
		r, err := c.TransactionReceipt(ctx, txHash)
		if errors.Is(err, ErrReceiptNotFound) {
			return nil, err
		}
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if !r.Succeeded() {
			return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrTxReverted, txHash))
		}
		return r, nil
	}

	attempt := 0
	notify := func(err error, next time.Duration) {
		attempt++
		rpcLog(log.Debug()).Str("tx", txHash).Int("attempt", attempt).Dur("next", next).Err(err).Msg("receipt pending, retrying")
	}

	r, err := backoff.Retry(ctx, operation,
		backoff.WithMaxTries(c.MaxRetries),
		backoff.WithBackOff(backoff.NewConstantBackOff(c.RetryInterval)),
		backoff.WithNotify(notify),
	)
	if errors.Is(err, ErrReceiptNotFound) {
		rpcLog(log.Debug()).Str("tx", txHash).Uint("attempts", c.MaxRetries).Msg("transaction not processed")
		return nil, ErrPollTxMaxRetry
	}
	if err != nil {
		return nil, err
	}
	rpcLog(log.Info()).Str("tx", txHash).Uint64("block", r.BlockNumber).Msg("transaction processed")
	return r, nil
}
