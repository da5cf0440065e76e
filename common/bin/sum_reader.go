package bin

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SumReader accumulates the number of bytes read through it
type SumReader struct {
	sum int64
}

// NewSumReader returns a SumReader
func NewSumReader() *SumReader {
	return &SumReader{}
}

// Sum returns the number of bytes read so far
func (sr *SumReader) Sum() int64 {
	return sr.sum
}

func (sr *SumReader) read(r io.Reader, bs []byte) (int64, error) {
	n, err := io.ReadFull(r, bs)
	sr.sum += int64(n)
	if err != nil {
		return sr.sum, err
	}
	return sr.sum, nil
}

// Uint8 reads the uint8 number
func (sr *SumReader) Uint8(r io.Reader, v *uint8) (int64, error) {
	bs := make([]byte, 1)
	if _, err := sr.read(r, bs); err != nil {
		return sr.sum, err
	}
	*v = bs[0]
	return sr.sum, nil
}

// Uint64 reads the uint64 number
func (sr *SumReader) Uint64(r io.Reader, v *uint64) (int64, error) {
	bs := make([]byte, 8)
	if _, err := sr.read(r, bs); err != nil {
		return sr.sum, err
	}
	*v = Uint64(bs)
	return sr.sum, nil
}

// Bytes reads the length-prefixed byte array
func (sr *SumReader) Bytes(r io.Reader, v *[]byte) (int64, error) {
	ls := make([]byte, 4)
	if _, err := sr.read(r, ls); err != nil {
		return sr.sum, err
	}
	bs := make([]byte, Uint32(ls))
	if _, err := sr.read(r, bs); err != nil {
		return sr.sum, err
	}
	*v = bs
	return sr.sum, nil
}

// String reads the length-prefixed string
func (sr *SumReader) String(r io.Reader, v *string) (int64, error) {
	var bs []byte
	if _, err := sr.Bytes(r, &bs); err != nil {
		return sr.sum, err
	}
	*v = string(bs)
	return sr.sum, nil
}

// Address reads the address
func (sr *SumReader) Address(r io.Reader, addr *common.Address) (int64, error) {
	bs := make([]byte, common.AddressLength)
	if _, err := sr.read(r, bs); err != nil {
		return sr.sum, err
	}
	addr.SetBytes(bs)
	return sr.sum, nil
}

// BigInt reads the length-prefixed big integer
func (sr *SumReader) BigInt(r io.Reader, v **big.Int) (int64, error) {
	var bs []byte
	if _, err := sr.Bytes(r, &bs); err != nil {
		return sr.sum, err
	}
	*v = big.NewInt(0).SetBytes(bs)
	return sr.sum, nil
}
