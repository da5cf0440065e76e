package oracle

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// the average is fixed over this many seconds and updated at most once
// per window
const FIXED_WINDOW_PERIOD = uint64(24 * 60 * 60)

// FixedWindowOracleContract tracks one pair and serves a 24h average
// price. The average lags by up to the whole period; the sliding window
// oracle trades storage for freshness.
type FixedWindowOracleContract struct {
	addr   common.Address
	master common.Address
}

func (cont *FixedWindowOracleContract) Address() common.Address {
	return cont.addr
}
func (cont *FixedWindowOracleContract) Master() common.Address {
	return cont.master
}
func (cont *FixedWindowOracleContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *FixedWindowOracleContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &FixedWindowOracleContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	token0, token1, err := trade.SortTokens(data.TokenA, data.TokenB)
	if err != nil {
		return err
	}
	pair, err := trade.PairFor(data.Factory, token0, token1)
	if err != nil {
		return err
	}
	cc.SetContractData([]byte{tagFactory}, data.Factory[:])
	cc.SetContractData([]byte{tagPair}, pair[:])
	cc.SetContractData([]byte{tagToken0}, token0[:])
	cc.SetContractData([]byte{tagToken1}, token1[:])

	is, err := cc.Exec(cc, pair, "Reserves", []interface{}{})
	if err != nil {
		return err
	}
	if !IsPlus(is[0].(*big.Int)) || !IsPlus(is[1].(*big.Int)) {
		return errors.New("FixedWindowOracle: NO_RESERVES")
	}
	price0Cumulative, price1Cumulative, blockTimestamp, err := currentCumulativePrices(cc, pair)
	if err != nil {
		return err
	}
	cc.SetContractData([]byte{tagPrice0Cumulative}, price0Cumulative.Bytes())
	cc.SetContractData([]byte{tagPrice1Cumulative}, price1Cumulative.Bytes())
	cc.SetContractData([]byte{tagBlockTimestampLast}, bin.Uint64Bytes(blockTimestamp))
	return nil
}

//////////////////////////////////////////////////
// FixedWindowOracleContract : getter functions
//////////////////////////////////////////////////

func (cont *FixedWindowOracleContract) pair(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagPair}))
}
func (cont *FixedWindowOracleContract) token0(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagToken0}))
}
func (cont *FixedWindowOracleContract) token1(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagToken1}))
}
func (cont *FixedWindowOracleContract) blockTimestampLast(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagBlockTimestampLast})
	if len(bs) == 0 {
		return 0
	}
	return bin.Uint64(bs)
}
func (cont *FixedWindowOracleContract) price0Average(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagPrice0Average}))
}
func (cont *FixedWindowOracleContract) price1Average(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagPrice1Average}))
}

//////////////////////////////////////////////////
// FixedWindowOracleContract : core
//////////////////////////////////////////////////

// update snapshots the accumulators and fixes a new average once the
// period has fully elapsed
func (cont *FixedWindowOracleContract) update(cc *types.ContractContext) error {
	pair := cont.pair(cc)
	price0Cumulative, price1Cumulative, blockTimestamp, err := currentCumulativePrices(cc, pair)
	if err != nil {
		return err
	}
	timeElapsed := blockTimestamp - cont.blockTimestampLast(cc)
	if timeElapsed < FIXED_WINDOW_PERIOD {
		return errors.New("FixedWindowOracle: PERIOD_NOT_ELAPSED")
	}

	last0 := big.NewInt(0).SetBytes(cc.ContractData([]byte{tagPrice0Cumulative}))
	last1 := big.NewInt(0).SetBytes(cc.ContractData([]byte{tagPrice1Cumulative}))
	cc.SetContractData([]byte{tagPrice0Average}, averagePrice(last0, price0Cumulative, timeElapsed))
	cc.SetContractData([]byte{tagPrice1Average}, averagePrice(last1, price1Cumulative, timeElapsed))
	cc.SetContractData([]byte{tagPrice0Cumulative}, price0Cumulative.Bytes())
	cc.SetContractData([]byte{tagPrice1Cumulative}, price1Cumulative.Bytes())
	cc.SetContractData([]byte{tagBlockTimestampLast}, bin.Uint64Bytes(blockTimestamp))
	return nil
}

func averagePrice(start, end *big.Int, timeElapsed uint64) []byte {
	s, _ := uint256.FromBig(start)
	e, _ := uint256.FromBig(end)
	avg := new(uint256.Int).Sub(e, s)
	avg.Div(avg, uint256.NewInt(timeElapsed))
	return avg.Bytes()
}

// consult prices amountIn of the given token with the fixed average.
// It returns zero before the first update.
func (cont *FixedWindowOracleContract) consult(cc types.ContractLoader, token common.Address, amountIn *big.Int) (*big.Int, error) {
	var average *big.Int
	switch token {
	case cont.token0(cc):
		average = cont.price0Average(cc)
	case cont.token1(cc):
		average = cont.price1Average(cc)
	default:
		return nil, errors.New("FixedWindowOracle: INVALID_TOKEN")
	}
	avg, _ := uint256.FromBig(average)
	in, _ := uint256.FromBig(amountIn)
	out := new(uint256.Int).Mul(avg, in)
	out.Rsh(out, 112)
	return out.ToBig(), nil
}

//////////////////////////////////////////////////
// Front
//////////////////////////////////////////////////

func (cont *FixedWindowOracleContract) Front() interface{} {
	return &fixedWindowFront{
		cont: cont,
	}
}

type fixedWindowFront struct {
	cont *FixedWindowOracleContract
}

func (f *fixedWindowFront) Pair(cc types.ContractLoader) common.Address {
	return f.cont.pair(cc)
}
func (f *fixedWindowFront) Token0(cc types.ContractLoader) common.Address {
	return f.cont.token0(cc)
}
func (f *fixedWindowFront) Token1(cc types.ContractLoader) common.Address {
	return f.cont.token1(cc)
}
func (f *fixedWindowFront) BlockTimestampLast(cc types.ContractLoader) uint64 {
	return f.cont.blockTimestampLast(cc)
}
func (f *fixedWindowFront) Price0Average(cc types.ContractLoader) *big.Int {
	return f.cont.price0Average(cc)
}
func (f *fixedWindowFront) Price1Average(cc types.ContractLoader) *big.Int {
	return f.cont.price1Average(cc)
}
func (f *fixedWindowFront) Update(cc *types.ContractContext) error {
	return f.cont.update(cc)
}
func (f *fixedWindowFront) Consult(cc types.ContractLoader, Token common.Address, AmountIn *big.Int) (*big.Int, error) {
	return f.cont.consult(cc, Token, AmountIn)
}
