package trade

import (
	"math/big"

	"github.com/pkg/errors"

	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
)

// Quote returns the equivalent amount of the other asset for a given
// amount and pair reserves
func Quote(amountA, reserveA, reserveB *big.Int) (*big.Int, error) {
	if !IsPlus(amountA) {
		return nil, errors.New("DeltaSwapLibrary: INSUFFICIENT_AMOUNT")
	}
	if !IsPlus(reserveA) || !IsPlus(reserveB) {
		return nil, errors.New("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY")
	}
	return MulDiv(amountA, reserveB, reserveA), nil
}

// GetAmountOut returns the maximum output amount of the other asset for an
// input amount, pair reserves and a per-mille fee numerator
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int, fee uint64) (*big.Int, error) {
	if !IsPlus(amountIn) {
		return nil, errors.New("DeltaSwapLibrary: INSUFFICIENT_INPUT_AMOUNT")
	}
	if !IsPlus(reserveIn) || !IsPlus(reserveOut) {
		return nil, errors.New("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY")
	}
	amountInWithFee := MulC(amountIn, FEE_DENOMINATOR-int64(fee))
	numerator := Mul(amountInWithFee, reserveOut)
	denominator := Add(MulC(reserveIn, FEE_DENOMINATOR), amountInWithFee)
	return Div(numerator, denominator), nil
}

// GetAmountIn returns the required input amount of the other asset for a
// desired output amount. The +1 rounds up so the pool is never shortchanged.
func GetAmountIn(amountOut, reserveIn, reserveOut *big.Int, fee uint64) (*big.Int, error) {
	if !IsPlus(amountOut) {
		return nil, errors.New("DeltaSwapLibrary: INSUFFICIENT_OUTPUT_AMOUNT")
	}
	if !IsPlus(reserveIn) || !IsPlus(reserveOut) {
		return nil, errors.New("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY")
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, errors.New("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY")
	}
	numerator := MulC(Mul(reserveIn, amountOut), FEE_DENOMINATOR)
	denominator := MulC(Sub(reserveOut, amountOut), FEE_DENOMINATOR-int64(fee))
	return AddC(Div(numerator, denominator), 1), nil
}
