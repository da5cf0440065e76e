package oracle

import (
	"bytes"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// SlidingWindowOracleContract keeps a ring of cumulative-price
// observations per pair, one slot per period, and serves a moving average
// over the whole window. Updates are idempotent within a period, so
// anyone can poke it without skewing the average.
type SlidingWindowOracleContract struct {
	addr   common.Address
	master common.Address
}

func (cont *SlidingWindowOracleContract) Address() common.Address {
	return cont.addr
}
func (cont *SlidingWindowOracleContract) Master() common.Address {
	return cont.master
}
func (cont *SlidingWindowOracleContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *SlidingWindowOracleContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &SlidingWindowOracleContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.Granularity <= 1 {
		return errors.New("SlidingWindowOracle: GRANULARITY")
	}
	if data.WindowSize == 0 || data.WindowSize%data.Granularity != 0 {
		return errors.New("SlidingWindowOracle: WINDOW_NOT_EVENLY_DIVISIBLE")
	}
	cc.SetContractData([]byte{tagFactory}, data.Factory[:])
	cc.SetContractData([]byte{tagWindowSize}, bin.Uint64Bytes(data.WindowSize))
	cc.SetContractData([]byte{tagGranularity}, bin.Uint64Bytes(data.Granularity))
	return nil
}

//////////////////////////////////////////////////
// SlidingWindowOracleContract : getter functions
//////////////////////////////////////////////////

func (cont *SlidingWindowOracleContract) factory(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFactory}))
}
func (cont *SlidingWindowOracleContract) windowSize(cc types.ContractLoader) uint64 {
	return bin.Uint64(cc.ContractData([]byte{tagWindowSize}))
}
func (cont *SlidingWindowOracleContract) granularity(cc types.ContractLoader) uint64 {
	return bin.Uint64(cc.ContractData([]byte{tagGranularity}))
}
func (cont *SlidingWindowOracleContract) periodSize(cc types.ContractLoader) uint64 {
	return cont.windowSize(cc) / cont.granularity(cc)
}

// observationIndexOf maps a timestamp in seconds to its ring-buffer slot
func (cont *SlidingWindowOracleContract) observationIndexOf(cc types.ContractLoader, timestamp uint64) uint64 {
	return (timestamp / cont.periodSize(cc)) % cont.granularity(cc)
}

func (cont *SlidingWindowOracleContract) getObservation(cc types.ContractLoader, pair common.Address, index uint64) *observation {
	obs := &observation{}
	bs := cc.ContractData(makeObservationKey(pair, index))
	if len(bs) > 0 {
		obs.ReadFrom(bytes.NewReader(bs))
	}
	return obs
}

func (cont *SlidingWindowOracleContract) setObservation(cc *types.ContractContext, pair common.Address, index uint64, obs *observation) error {
	bs, _, err := bin.WriterToBytes(obs)
	if err != nil {
		return err
	}
	cc.SetContractData(makeObservationKey(pair, index), bs)
	return nil
}

//////////////////////////////////////////////////
// SlidingWindowOracleContract : core
//////////////////////////////////////////////////

// update records the current cumulative prices into the slot of the
// current period, once per period per pair
func (cont *SlidingWindowOracleContract) update(cc *types.ContractContext, tokenA, tokenB common.Address) error {
	pair, err := trade.PairFor(cont.factory(cc), tokenA, tokenB)
	if err != nil {
		return err
	}
	blockTimestamp := cc.LastTimestamp() / uint64(time.Second)
	index := cont.observationIndexOf(cc, blockTimestamp)
	obs := cont.getObservation(cc, pair, index)

	if blockTimestamp-obs.Timestamp > cont.periodSize(cc) {
		price0Cumulative, price1Cumulative, _, err := currentCumulativePrices(cc, pair)
		if err != nil {
			return err
		}
		return cont.setObservation(cc, pair, index, &observation{
			Timestamp:        blockTimestamp,
			Price0Cumulative: price0Cumulative.Bytes(),
			Price1Cumulative: price1Cumulative.Bytes(),
		})
	}
	return nil
}

// consult prices amountIn of tokenIn in units of tokenOut, averaged over
// the window ending now. The oldest in-window observation anchors the
// average; without one the caller must update and wait.
func (cont *SlidingWindowOracleContract) consult(cc *types.ContractContext, tokenIn common.Address, amountIn *big.Int, tokenOut common.Address) (*big.Int, error) {
	pair, err := trade.PairFor(cont.factory(cc), tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}
	blockTimestamp := cc.LastTimestamp() / uint64(time.Second)
	firstIndex := (cont.observationIndexOf(cc, blockTimestamp) + 1) % cont.granularity(cc)
	first := cont.getObservation(cc, pair, firstIndex)

	timeElapsed := blockTimestamp - first.Timestamp
	if timeElapsed > cont.windowSize(cc) {
		return nil, errors.New("SlidingWindowOracle: MISSING_HISTORICAL_OBSERVATION")
	}
	if timeElapsed < cont.windowSize(cc)-cont.periodSize(cc)*2 {
		return nil, errors.New("SlidingWindowOracle: UNEXPECTED_TIME_ELAPSED")
	}

	price0Cumulative, price1Cumulative, _, err := currentCumulativePrices(cc, pair)
	if err != nil {
		return nil, err
	}
	token0, _, err := trade.SortTokens(tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}
	if tokenIn == token0 {
		start := big.NewInt(0).SetBytes(first.Price0Cumulative)
		return computeAmountOut(start, price0Cumulative, timeElapsed, amountIn), nil
	}
	start := big.NewInt(0).SetBytes(first.Price1Cumulative)
	return computeAmountOut(start, price1Cumulative, timeElapsed, amountIn), nil
}

//////////////////////////////////////////////////
// Front
//////////////////////////////////////////////////

func (cont *SlidingWindowOracleContract) Front() interface{} {
	return &slidingWindowFront{
		cont: cont,
	}
}

type slidingWindowFront struct {
	cont *SlidingWindowOracleContract
}

func (f *slidingWindowFront) Factory(cc types.ContractLoader) common.Address {
	return f.cont.factory(cc)
}
func (f *slidingWindowFront) WindowSize(cc types.ContractLoader) uint64 {
	return f.cont.windowSize(cc)
}
func (f *slidingWindowFront) Granularity(cc types.ContractLoader) uint64 {
	return f.cont.granularity(cc)
}
func (f *slidingWindowFront) PeriodSize(cc types.ContractLoader) uint64 {
	return f.cont.periodSize(cc)
}
func (f *slidingWindowFront) ObservationIndexOf(cc types.ContractLoader, Timestamp uint64) uint64 {
	return f.cont.observationIndexOf(cc, Timestamp)
}
func (f *slidingWindowFront) Observation(cc types.ContractLoader, Pair common.Address, Index uint64) (uint64, *big.Int, *big.Int) {
	obs := f.cont.getObservation(cc, Pair, Index)
	return obs.Timestamp, big.NewInt(0).SetBytes(obs.Price0Cumulative), big.NewInt(0).SetBytes(obs.Price1Cumulative)
}
func (f *slidingWindowFront) Update(cc *types.ContractContext, TokenA, TokenB common.Address) error {
	return f.cont.update(cc, TokenA, TokenB)
}
func (f *slidingWindowFront) Consult(cc *types.ContractContext, TokenIn common.Address, AmountIn *big.Int, TokenOut common.Address) (*big.Int, error) {
	return f.cont.consult(cc, TokenIn, AmountIn, TokenOut)
}
