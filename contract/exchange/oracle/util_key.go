package oracle

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

var (
	tagFactory            = byte(0x01)
	tagPair               = byte(0x02)
	tagToken0             = byte(0x03)
	tagToken1             = byte(0x04)
	tagPrice0Cumulative   = byte(0x05)
	tagPrice1Cumulative   = byte(0x06)
	tagBlockTimestampLast = byte(0x07)
	tagPrice0Average      = byte(0x08)
	tagPrice1Average      = byte(0x09)
	tagWindowSize         = byte(0x0a)
	tagGranularity        = byte(0x0b)
	tagObservation        = byte(0x0c)
)

var (
	FixedWindowOracleClassID   uint64
	SlidingWindowOracleClassID uint64
)

func init() {
	classID, err := types.RegisterContractType(&FixedWindowOracleContract{})
	if err != nil {
		panic(err)
	}
	FixedWindowOracleClassID = classID

	classID, err = types.RegisterContractType(&SlidingWindowOracleContract{})
	if err != nil {
		panic(err)
	}
	SlidingWindowOracleClassID = classID
}

func makeObservationKey(pair common.Address, index uint64) []byte {
	bs := make([]byte, 1+common.AddressLength+8)
	bs[0] = tagObservation
	copy(bs[1:], pair[:])
	copy(bs[1+common.AddressLength:], bin.Uint64Bytes(index))
	return bs
}
