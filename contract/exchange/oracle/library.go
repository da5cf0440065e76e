package oracle

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/deltaswaplabs/deltaswap/core/types"
)

// currentCumulativePrices returns the pair's accumulators extrapolated to
// the current second. When the pair was last touched in an earlier second
// the stored values are counterfactually advanced with the current
// reserves, so oracles never need the pair to be poked first.
func currentCumulativePrices(cc *types.ContractContext, pair common.Address) (*big.Int, *big.Int, uint64, error) {
	is, err := cc.Exec(cc, pair, "Price0CumulativeLast", []interface{}{})
	if err != nil {
		return nil, nil, 0, err
	}
	price0Cumulative := is[0].(*big.Int)
	is, err = cc.Exec(cc, pair, "Price1CumulativeLast", []interface{}{})
	if err != nil {
		return nil, nil, 0, err
	}
	price1Cumulative := is[0].(*big.Int)
	is, err = cc.Exec(cc, pair, "Reserves", []interface{}{})
	if err != nil {
		return nil, nil, 0, err
	}
	reserve0, reserve1 := is[0].(*big.Int), is[1].(*big.Int)
	blockTimestampLast := is[2].(uint64)

	blockTimestamp := cc.LastTimestamp() / uint64(time.Second)
	if blockTimestampLast != blockTimestamp && reserve0.Sign() > 0 && reserve1.Sign() > 0 {
		timeElapsed := blockTimestamp - blockTimestampLast
		price0Cumulative = addCumulative(price0Cumulative, reserve1, reserve0, timeElapsed)
		price1Cumulative = addCumulative(price1Cumulative, reserve0, reserve1, timeElapsed)
	}
	return price0Cumulative, price1Cumulative, blockTimestamp, nil
}

// addCumulative adds UQ112x112(numerator/denominator)*elapsed with uint256
// wrapping semantics
func addCumulative(acc, numerator, denominator *big.Int, timeElapsed uint64) *big.Int {
	a, _ := uint256.FromBig(acc)
	n, _ := uint256.FromBig(numerator)
	d, _ := uint256.FromBig(denominator)
	price := new(uint256.Int).Lsh(n, 112)
	price.Div(price, d)
	price.Mul(price, uint256.NewInt(timeElapsed))
	a.Add(a, price)
	return a.ToBig()
}

// computeAmountOut turns the accumulator delta over a window into an
// average price and applies it to the input amount. The subtraction wraps
// mod 2^256, which keeps the delta correct across accumulator overflow.
func computeAmountOut(priceCumulativeStart, priceCumulativeEnd *big.Int, timeElapsed uint64, amountIn *big.Int) *big.Int {
	start, _ := uint256.FromBig(priceCumulativeStart)
	end, _ := uint256.FromBig(priceCumulativeEnd)
	priceAverage := new(uint256.Int).Sub(end, start)
	priceAverage.Div(priceAverage, uint256.NewInt(timeElapsed))

	in, _ := uint256.FromBig(amountIn)
	out := new(uint256.Int).Mul(priceAverage, in)
	out.Rsh(out, 112)
	return out.ToBig()
}
