// Package riecoin holds the Riecoin block format, proof of work target and
// network parameters.
package riecoin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

// MainNetParams are the Riecoin main network address parameters.
var MainNetParams = chaincfg.Params{
	Name:                    "riecoin",
	Net:                     wire.BitcoinNet(0xdbb2bcfc),
	DefaultPort:             "28333",
	Bech32HRPSegwit:         "ric",
	PubKeyHashAddrID:        60,
	ScriptHashAddrID:        65,
	PrivateKeyID:            128,
	WitnessPubKeyHashAddrID: 0x06,
	WitnessScriptHashAddrID: 0x0a,
	HDPrivateKeyID:          [4]byte{0x04, 0x88, 0xad, 0x01},
	HDPublicKeyID:           [4]byte{0x04, 0x88, 0xb2, 0x01},
	HDCoinType:              143,
}

// TestNetParams are the Riecoin test network address parameters.
var TestNetParams = chaincfg.Params{
	Name:                    "riecoin-testnet",
	Net:                     wire.BitcoinNet(0x0511090e),
	DefaultPort:             "38333",
	Bech32HRPSegwit:         "tric",
	PubKeyHashAddrID:        122,
	ScriptHashAddrID:        127,
	PrivateKeyID:            239,
	WitnessPubKeyHashAddrID: 0x03,
	WitnessScriptHashAddrID: 0x28,
	HDPrivateKeyID:          [4]byte{0x04, 0x35, 0x83, 0x01},
	HDPublicKeyID:           [4]byte{0x04, 0x35, 0x87, 0x01},
	HDCoinType:              1,
}

var registerOnce = sync.OnceValue(func() error {
	for _, p := range []*chaincfg.Params{&MainNetParams, &TestNetParams} {
		if err := chaincfg.Register(p); err != nil && !errors.Is(err, chaincfg.ErrDuplicateNet) {
			return fmt.Errorf("register %s params: %w", p.Name, err)
		}
	}
	return nil
})

// Params returns the registered address parameters of network. Benchmark
// sessions use the test network.
func Params(network model.Network) (*chaincfg.Params, error) {
	if err := registerOnce(); err != nil {
		return nil, err
	}
	switch network {
	case model.Mainnet:
		return &MainNetParams, nil
	case model.Testnet, model.Benchmark:
		return &TestNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}
