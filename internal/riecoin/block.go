package riecoin

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Block is a header followed by its transactions, coinbase first.
type Block struct {
	Header       Header
	Transactions []*wire.MsgTx
}

// MerkleRoot computes the transaction merkle root of txs.
func MerkleRoot(txs []*wire.MsgTx) chainhash.Hash {
	if len(txs) == 0 {
		return chainhash.Hash{}
	}
	wrapped := make([]*btcutil.Tx, len(txs))
	for i, tx := range txs {
		wrapped[i] = btcutil.NewTx(tx)
	}
	store := blockchain.BuildMerkleTreeStore(wrapped, false)
	return *store[len(store)-1]
}

// Serialize writes the block in network format.
func (b *Block) Serialize(w io.Writer) error {
	if err := b.Header.Serialize(w); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := wire.WriteVarInt(w, 0, uint64(len(b.Transactions))); err != nil {
		return fmt.Errorf("write transaction count: %w", err)
	}
	for i, tx := range b.Transactions {
		if err := tx.Serialize(w); err != nil {
			return fmt.Errorf("write transaction %d: %w", i, err)
		}
	}
	return nil
}

// Hex returns the serialized block as hex, the submitblock argument.
func (b *Block) Hex() (string, error) {
	var buf bytes.Buffer
	if err := b.Serialize(&buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}
