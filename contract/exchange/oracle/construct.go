package oracle

import (
	"io"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/common/bin"
)

type FixedWindowOracleContractConstruction struct {
	Factory common.Address
	TokenA  common.Address
	TokenB  common.Address
}

func (s *FixedWindowOracleContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Factory); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.TokenA); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.TokenB); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *FixedWindowOracleContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Factory); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.TokenA); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.TokenB); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

type SlidingWindowOracleContractConstruction struct {
	Factory common.Address
	// WindowSize is the full observation window in seconds
	WindowSize uint64
	// Granularity is the number of periods the window is sliced into;
	// WindowSize must divide evenly by it
	Granularity uint64
}

func (s *SlidingWindowOracleContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Factory); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.WindowSize); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.Granularity); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *SlidingWindowOracleContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Factory); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.WindowSize); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.Granularity); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// observation is one ring-buffer slot of the sliding window oracle
type observation struct {
	Timestamp        uint64
	Price0Cumulative []byte
	Price1Cumulative []byte
}

func (s *observation) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint64(w, s.Timestamp); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, s.Price0Cumulative); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, s.Price1Cumulative); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *observation) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint64(r, &s.Timestamp); err != nil {
		return sum, err
	}
	if sum, err := sr.Bytes(r, &s.Price0Cumulative); err != nil {
		return sum, err
	}
	if sum, err := sr.Bytes(r, &s.Price1Cumulative); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
