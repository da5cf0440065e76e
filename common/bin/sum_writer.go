package bin

import (
	"bytes"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SumWriter accumulates the number of bytes written through it
type SumWriter struct {
	sum int64
}

// NewSumWriter returns a SumWriter
func NewSumWriter() *SumWriter {
	return &SumWriter{}
}

// Sum returns the number of bytes written so far
func (sw *SumWriter) Sum() int64 {
	return sw.sum
}

func (sw *SumWriter) write(w io.Writer, bs []byte) (int64, error) {
	n, err := w.Write(bs)
	sw.sum += int64(n)
	if err != nil {
		return sw.sum, err
	}
	return sw.sum, nil
}

// Uint8 writes the uint8 number
func (sw *SumWriter) Uint8(w io.Writer, v uint8) (int64, error) {
	return sw.write(w, []byte{v})
}

// Uint64 writes the uint64 number
func (sw *SumWriter) Uint64(w io.Writer, v uint64) (int64, error) {
	return sw.write(w, Uint64Bytes(v))
}

// Bytes writes the length-prefixed byte array
func (sw *SumWriter) Bytes(w io.Writer, bs []byte) (int64, error) {
	if _, err := sw.write(w, Uint32Bytes(uint32(len(bs)))); err != nil {
		return sw.sum, err
	}
	return sw.write(w, bs)
}

// String writes the length-prefixed string
func (sw *SumWriter) String(w io.Writer, s string) (int64, error) {
	return sw.Bytes(w, []byte(s))
}

// Address writes the address
func (sw *SumWriter) Address(w io.Writer, addr common.Address) (int64, error) {
	return sw.write(w, addr[:])
}

// BigInt writes the length-prefixed big integer
func (sw *SumWriter) BigInt(w io.Writer, v *big.Int) (int64, error) {
	if v == nil {
		v = big.NewInt(0)
	}
	return sw.Bytes(w, v.Bytes())
}

// WriterToBytes serializes the WriterTo into a byte array
func WriterToBytes(wt io.WriterTo) ([]byte, int64, error) {
	var buf bytes.Buffer
	n, err := wt.WriteTo(&buf)
	if err != nil {
		return nil, n, err
	}
	return buf.Bytes(), n, nil
}
