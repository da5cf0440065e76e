package factory

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/core/types"
)

// FactoryClassID identifies the factory contract code for deployment
var FactoryClassID uint64

func init() {
	classID, err := types.RegisterContractType(&FactoryContract{})
	if err != nil {
		panic(err)
	}
	FactoryClassID = classID
}

var (
	tagFeeTo       = byte(0x01)
	tagFeeToSetter = byte(0x02)
	tagFeeNum      = byte(0x03)
	tagAllPairs    = byte(0x04)
	tagPair        = byte(0x05)
)

func makePairKey(token0, token1 common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength*2)
	bs[0] = tagPair
	copy(bs[1:], token0[:])
	copy(bs[1+common.AddressLength:], token1[:])
	return bs
}
