package factory

import (
	"io"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/common/bin"
)

type FactoryContractConstruction struct {
	FeeToSetter common.Address
}

func (s *FactoryContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.FeeToSetter); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *FactoryContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.FeeToSetter); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
