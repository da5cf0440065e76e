package router

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// feeNum reads the current per-mille fee from the factory
func (cont *RouterContract) feeNumOf(cc *types.ContractContext) (uint64, error) {
	is, err := cc.Exec(cc, cont.factory(cc), "FeeNum", []interface{}{})
	if err != nil {
		return 0, err
	}
	return is[0].(uint64), nil
}

// getReserves fetches a pair's reserves ordered as (tokenA, tokenB)
func (cont *RouterContract) getReserves(cc *types.ContractContext, tokenA, tokenB common.Address) (*big.Int, *big.Int, error) {
	token0, _, err := trade.SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	pair, err := trade.PairFor(cont.factory(cc), tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	is, err := cc.Exec(cc, pair, "Reserves", []interface{}{})
	if err != nil {
		return nil, nil, err
	}
	reserve0, reserve1 := is[0].(*big.Int), is[1].(*big.Int)
	if tokenA == token0 {
		return reserve0, reserve1, nil
	}
	return reserve1, reserve0, nil
}

// getAmountsOut chains GetAmountOut over a swap path
func (cont *RouterContract) getAmountsOut(cc *types.ContractContext, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	if len(path) < 2 {
		return nil, errors.New("DeltaSwapLibrary: INVALID_PATH")
	}
	fee, err := cont.feeNumOf(cc)
	if err != nil {
		return nil, err
	}
	amounts := make([]*big.Int, len(path))
	amounts[0] = Clone(amountIn)
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := cont.getReserves(cc, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		amounts[i+1], err = trade.GetAmountOut(amounts[i], reserveIn, reserveOut, fee)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// getAmountsIn chains GetAmountIn backwards over a swap path
func (cont *RouterContract) getAmountsIn(cc *types.ContractContext, amountOut *big.Int, path []common.Address) ([]*big.Int, error) {
	if len(path) < 2 {
		return nil, errors.New("DeltaSwapLibrary: INVALID_PATH")
	}
	fee, err := cont.feeNumOf(cc)
	if err != nil {
		return nil, err
	}
	amounts := make([]*big.Int, len(path))
	amounts[len(amounts)-1] = Clone(amountOut)
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, err := cont.getReserves(cc, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		amounts[i-1], err = trade.GetAmountIn(amounts[i], reserveIn, reserveOut, fee)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}
