package token

import (
	"io"
	"math/big"

	"github.com/deltaswaplabs/deltaswap/common/bin"
)

type TokenContractConstruction struct {
	Name          string
	Symbol        string
	InitialSupply *big.Int
	// TransferTax burns this per-mille share of every transfer, which
	// models fee-on-transfer tokens. Zero for a plain token.
	TransferTax uint64
}

func (s *TokenContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.String(w, s.Name); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Symbol); err != nil {
		return sum, err
	}
	if sum, err := sw.BigInt(w, s.InitialSupply); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.TransferTax); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *TokenContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.String(r, &s.Name); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Symbol); err != nil {
		return sum, err
	}
	if sum, err := sr.BigInt(r, &s.InitialSupply); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.TransferTax); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
