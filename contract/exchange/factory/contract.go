package factory

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// FactoryContract deploys pairs at deterministic addresses, indexes them
// and owns the global fee authority every pair reads at call time.
type FactoryContract struct {
	addr   common.Address
	master common.Address
}

func (cont *FactoryContract) Address() common.Address {
	return cont.addr
}
func (cont *FactoryContract) Master() common.Address {
	return cont.master
}
func (cont *FactoryContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *FactoryContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &FactoryContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagFeeToSetter}, data.FeeToSetter[:])
	cc.SetContractData([]byte{tagFeeNum}, bin.Uint64Bytes(trade.DEFAULT_FEE_NUM))
	return nil
}

//////////////////////////////////////////////////
// FactoryContract : getter functions
//////////////////////////////////////////////////

func (cont *FactoryContract) feeTo(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFeeTo}))
}
func (cont *FactoryContract) feeToSetter(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFeeToSetter}))
}
func (cont *FactoryContract) feeNum(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagFeeNum})
	if len(bs) == 0 {
		return trade.DEFAULT_FEE_NUM
	}
	return bin.Uint64(bs)
}
func (cont *FactoryContract) getPair(cc types.ContractLoader, tokenA, tokenB common.Address) common.Address {
	bs := cc.ContractData(makePairKey(tokenA, tokenB))
	if bs == nil {
		return ZeroAddress
	}
	return common.BytesToAddress(bs)
}
func (cont *FactoryContract) allPairs(cc types.ContractLoader) []common.Address {
	bs := cc.ContractData([]byte{tagAllPairs})
	if bs == nil {
		return nil
	}
	pairs := []common.Address{}
	for i := 0; i < len(bs); i += common.AddressLength {
		pairs = append(pairs, common.BytesToAddress(bs[i:i+common.AddressLength]))
	}
	return pairs
}
func (cont *FactoryContract) allPairsLength(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagAllPairs})
	return uint64(len(bs) / common.AddressLength)
}

//////////////////////////////////////////////////
// FactoryContract : core
//////////////////////////////////////////////////

func (cont *FactoryContract) onlyFeeToSetter(cc *types.ContractContext) error {
	if cc.From() != cont.feeToSetter(cc) {
		return errors.New("DeltaSwap: FORBIDDEN")
	}
	return nil
}

// createPair deploys the pair of an unordered token pair at its
// deterministic address. Anyone may call it.
func (cont *FactoryContract) createPair(cc *types.ContractContext, tokenA, tokenB common.Address) (common.Address, error) {
	token0, token1, err := trade.SortTokens(tokenA, tokenB)
	if err != nil {
		return ZeroAddress, err
	}
	if cc.ContractData(makePairKey(token0, token1)) != nil {
		return ZeroAddress, errors.New("DeltaSwap: PAIR_EXISTS")
	}
	pair, err := trade.PairFor(cont.addr, token0, token1)
	if err != nil {
		return ZeroAddress, err
	}

	pairConstruction := &trade.PairContractConstruction{
		Name:    "DeltaSwap V1",
		Symbol:  "DS-V1",
		Factory: cont.addr,
		Token0:  token0,
		Token1:  token1,
	}
	bs, _, err := bin.WriterToBytes(pairConstruction)
	if err != nil {
		return ZeroAddress, err
	}
	if _, err := cc.DeployContractWithAddress(cont.addr, trade.PairClassID, pair, bs); err != nil {
		return ZeroAddress, err
	}

	cc.SetContractData(makePairKey(token0, token1), pair.Bytes())
	cc.SetContractData(makePairKey(token1, token0), pair.Bytes())

	index := cc.ContractData([]byte{tagAllPairs})
	if index == nil {
		index = []byte{}
	}
	index = append(index, pair.Bytes()...)
	cc.SetContractData([]byte{tagAllPairs}, index)

	// sequence index starts at 1
	seq := big.NewInt(int64(len(index) / common.AddressLength))
	cc.EmitEvent("PairCreated", token0, token1, pair, seq)
	return pair, nil
}

func (cont *FactoryContract) setFeeTo(cc *types.ContractContext, feeTo common.Address) error {
	if err := cont.onlyFeeToSetter(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagFeeTo}, feeTo[:])
	return nil
}

// setFeeToSetter hands the authority over. One way: the former setter
// loses it immediately.
func (cont *FactoryContract) setFeeToSetter(cc *types.ContractContext, feeToSetter common.Address) error {
	if err := cont.onlyFeeToSetter(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagFeeToSetter}, feeToSetter[:])
	return nil
}

// setFeeNum changes the per-mille swap fee read by every pair at swap and
// mint time, existing pairs included
func (cont *FactoryContract) setFeeNum(cc *types.ContractContext, feeNum uint64) error {
	if err := cont.onlyFeeToSetter(cc); err != nil {
		return err
	}
	if feeNum > trade.MAX_FEE_NUM {
		return errors.New("DeltaSwap: FEE")
	}
	cc.SetContractData([]byte{tagFeeNum}, bin.Uint64Bytes(feeNum))
	return nil
}

// gammaPoolFor derives the external hook address the same way the
// leveraged-position factory derives its minimal-proxy clones
func gammaPoolFor(gsFactory, implementation, token0, token1 common.Address, protocolID uint16) common.Address {
	salt := make([]byte, common.AddressLength*2+2)
	copy(salt, token0[:])
	copy(salt[common.AddressLength:], token1[:])
	salt[common.AddressLength*2] = byte(protocolID >> 8)
	salt[common.AddressLength*2+1] = byte(protocolID)

	base := make([]byte, 1+common.AddressLength*2+32)
	base[0] = 0xff
	copy(base[1:], gsFactory[:])
	copy(base[1+common.AddressLength:], crypto.Keccak256(salt))
	copy(base[1+common.AddressLength+32:], implementation[:])
	h := crypto.Keccak256(base)
	return common.BytesToAddress(h[12:])
}

// setGammaPool records the derived hook address on an existing pair
func (cont *FactoryContract) setGammaPool(cc *types.ContractContext, tokenA, tokenB, gsFactory, implementation common.Address, protocolID uint16) error {
	if err := cont.onlyFeeToSetter(cc); err != nil {
		return err
	}
	token0, token1, err := trade.SortTokens(tokenA, tokenB)
	if err != nil {
		return err
	}
	pair := cont.getPair(cc, token0, token1)
	if pair == ZeroAddress {
		return errors.New("DeltaSwap: PAIR_NOT_EXISTS")
	}
	pool := gammaPoolFor(gsFactory, implementation, token0, token1, protocolID)
	_, err = cc.Exec(cc, pair, "SetGammaPool", []interface{}{pool})
	return err
}

// updateGammaPool overwrites the hook with an explicit address
func (cont *FactoryContract) updateGammaPool(cc *types.ContractContext, tokenA, tokenB, pool common.Address) error {
	if err := cont.onlyFeeToSetter(cc); err != nil {
		return err
	}
	pair := cont.getPair(cc, tokenA, tokenB)
	if pair == ZeroAddress {
		return errors.New("DeltaSwap: PAIR_NOT_EXISTS")
	}
	_, err := cc.Exec(cc, pair, "SetGammaPool", []interface{}{pool})
	return err
}
