package riecoin

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

const (
	coinbaseVersion      = 2
	maxCoinbaseScriptLen = 100
)

// Coinbase describes the generation transaction of a block template.
type Coinbase struct {
	Height int32
	Value  int64
	Payout btcutil.Address
	// Secret is a tag pushed after the height.
	Secret string
	// WitnessCommitment is the output script given by the node, if any.
	WitnessCommitment []byte
}

// Build creates the coinbase transaction.
func (c Coinbase) Build() (*wire.MsgTx, error) {
	if c.Payout == nil {
		return nil, errors.New("payout address is required")
	}
	sigScript, err := txscript.NewScriptBuilder().
		AddInt64(int64(c.Height)).
		AddData([]byte(c.Secret)).
		Script()
	if err != nil {
		return nil, fmt.Errorf("build coinbase script: %w", err)
	}
	if len(sigScript) > maxCoinbaseScriptLen {
		return nil, fmt.Errorf("coinbase script is %d bytes, limit is %d", len(sigScript), maxCoinbaseScriptLen)
	}
	payout, err := txscript.PayToAddrScript(c.Payout)
	if err != nil {
		return nil, fmt.Errorf("build payout script: %w", err)
	}

	tx := wire.NewMsgTx(coinbaseVersion)
	in := wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex), sigScript, nil)
	tx.AddTxIn(in)
	tx.AddTxOut(wire.NewTxOut(c.Value, payout))
	if len(c.WitnessCommitment) > 0 {
		in.Witness = wire.TxWitness{make([]byte, 32)}
		tx.AddTxOut(wire.NewTxOut(0, c.WitnessCommitment))
	}
	return tx, nil
}

// DecodeTransactions parses hex encoded template transactions.
func DecodeTransactions(raw []string) ([]*wire.MsgTx, error) {
	txs := make([]*wire.MsgTx, 0, len(raw))
	for i, s := range raw {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("decode transaction %d: %w", i, err)
		}
		tx, err := btcutil.NewTxFromBytes(b)
		if err != nil {
			return nil, fmt.Errorf("deserialize transaction %d: %w", i, err)
		}
		txs = append(txs, tx.MsgTx())
	}
	return txs, nil
}
