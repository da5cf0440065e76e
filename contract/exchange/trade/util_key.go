package trade

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

const (
	// swap fee is expressed per mille
	FEE_DENOMINATOR = int64(1000)
	DEFAULT_FEE_NUM = uint64(3)
	MAX_FEE_NUM     = uint64(100)

	// locked forever in the first mint
	MINIMUM_LIQUIDITY = int64(1000)
)

// ledger tags occupy 0x01-0x06
var (
	tagFactory              = byte(0x21)
	tagToken0               = byte(0x22)
	tagToken1               = byte(0x23)
	tagReserve0             = byte(0x24)
	tagReserve1             = byte(0x25)
	tagBlockTimestampLast   = byte(0x26)
	tagPrice0CumulativeLast = byte(0x27)
	tagPrice1CumulativeLast = byte(0x28)
	tagKLast                = byte(0x29)
	tagGammaPool            = byte(0x2a)
	tagLock                 = byte(0x2b)
)

// PairClassID is the code fingerprint of the pair contract. It feeds the
// deterministic pair address, so factory and router can derive a pair's
// address without touching state.
var PairClassID uint64

func init() {
	classID, err := types.RegisterContractType(&PairContract{})
	if err != nil {
		panic(err)
	}
	PairClassID = classID
}

// SortTokens orders a token pair by ascending address bytes
func SortTokens(tokenA, tokenB common.Address) (common.Address, common.Address, error) {
	if tokenA == tokenB {
		return ZeroAddress, ZeroAddress, errors.New("DeltaSwap: IDENTICAL_ADDRESSES")
	}

	var token0, token1 common.Address
	if bytes.Compare(tokenA[:], tokenB[:]) < 0 {
		token0, token1 = tokenA, tokenB
	} else {
		token0, token1 = tokenB, tokenA
	}

	if token0 == ZeroAddress {
		return ZeroAddress, ZeroAddress, errors.New("DeltaSwap: ZERO_ADDRESS")
	}

	return token0, token1, nil
}

// PairFor calculates the address for a pair without making any external
// calls: keccak(0xff || factory || keccak(token0 || token1) || classID),
// last 20 bytes.
func PairFor(factory, tokenA, tokenB common.Address) (common.Address, error) {
	token0, token1, err := SortTokens(tokenA, tokenB)
	if err != nil {
		return ZeroAddress, err
	}

	salt := make([]byte, common.AddressLength*2)
	copy(salt, token0[:])
	copy(salt[common.AddressLength:], token1[:])

	base := make([]byte, 1+common.AddressLength+32+8)
	base[0] = 0xff
	copy(base[1:], factory[:])
	copy(base[1+common.AddressLength:], crypto.Keccak256(salt))
	copy(base[1+common.AddressLength+32:], bin.Uint64Bytes(PairClassID))
	h := crypto.Keccak256(base)
	return common.BytesToAddress(h[12:]), nil
}
