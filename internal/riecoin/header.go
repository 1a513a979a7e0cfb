package riecoin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// HeaderSize is the serialized size of a block header.
	HeaderSize = 112
	// PowHeaderSize is the prefix of the header that is hashed for proof of
	// work. The offset is not part of it.
	PowHeaderSize = 80
)

// Header is a Riecoin block header.
type Header struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Bits       uint32
	Timestamp  uint64
	// Offset is the little-endian distance between the found base and the
	// target.
	Offset [32]byte
}

// Serialize writes the 112 byte header.
func (h *Header) Serialize(w io.Writer) error {
	var buf [HeaderSize]byte
	h.put(buf[:])
	_, err := w.Write(buf[:])
	return err
}

// Deserialize reads a 112 byte header.
func (h *Header) Deserialize(r io.Reader) error {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	h.Version = int32(binary.LittleEndian.Uint32(buf[0:4]))
	copy(h.PrevBlock[:], buf[4:36])
	copy(h.MerkleRoot[:], buf[36:68])
	h.Bits = binary.LittleEndian.Uint32(buf[68:72])
	h.Timestamp = binary.LittleEndian.Uint64(buf[72:80])
	copy(h.Offset[:], buf[80:112])
	return nil
}

// Bytes returns the serialized header.
func (h *Header) Bytes() []byte {
	var b bytes.Buffer
	_ = h.Serialize(&b)
	return b.Bytes()
}

// PowHash is the double SHA-256 of the first 80 header bytes.
func (h *Header) PowHash() chainhash.Hash {
	var buf [HeaderSize]byte
	h.put(buf[:])
	return chainhash.DoubleHashH(buf[:PowHeaderSize])
}

func (h *Header) put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Bits)
	binary.LittleEndian.PutUint64(buf[72:80], h.Timestamp)
	copy(buf[80:112], h.Offset[:])
}
