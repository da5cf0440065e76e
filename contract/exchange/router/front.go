package router

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

func (cont *RouterContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *RouterContract
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Factory(cc types.ContractLoader) common.Address {
	return f.cont.factory(cc)
}
func (f *front) Quote(cc *types.ContractContext, AmountA, ReserveA, ReserveB *big.Int) (*big.Int, error) {
	return trade.Quote(AmountA, ReserveA, ReserveB)
}
func (f *front) GetAmountOut(cc *types.ContractContext, AmountIn, ReserveIn, ReserveOut *big.Int) (*big.Int, error) {
	fee, err := f.cont.feeNumOf(cc)
	if err != nil {
		return nil, err
	}
	return trade.GetAmountOut(AmountIn, ReserveIn, ReserveOut, fee)
}
func (f *front) GetAmountIn(cc *types.ContractContext, AmountOut, ReserveIn, ReserveOut *big.Int) (*big.Int, error) {
	fee, err := f.cont.feeNumOf(cc)
	if err != nil {
		return nil, err
	}
	return trade.GetAmountIn(AmountOut, ReserveIn, ReserveOut, fee)
}
func (f *front) GetAmountsOut(cc *types.ContractContext, AmountIn *big.Int, Path []common.Address) ([]*big.Int, error) {
	return f.cont.getAmountsOut(cc, AmountIn, Path)
}
func (f *front) GetAmountsIn(cc *types.ContractContext, AmountOut *big.Int, Path []common.Address) ([]*big.Int, error) {
	return f.cont.getAmountsIn(cc, AmountOut, Path)
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) AddLiquidity(cc *types.ContractContext, TokenA, TokenB common.Address, AmountADesired, AmountBDesired, AmountAMin, AmountBMin *big.Int, To common.Address, Deadline *big.Int) (*big.Int, *big.Int, *big.Int, error) {
	return f.cont.addLiquidity(cc, TokenA, TokenB, AmountADesired, AmountBDesired, AmountAMin, AmountBMin, To, Deadline)
}
func (f *front) RemoveLiquidity(cc *types.ContractContext, TokenA, TokenB common.Address, Liquidity, AmountAMin, AmountBMin *big.Int, To common.Address, Deadline *big.Int) (*big.Int, *big.Int, error) {
	return f.cont.removeLiquidity(cc, TokenA, TokenB, Liquidity, AmountAMin, AmountBMin, To, Deadline)
}
func (f *front) RemoveLiquidityWithPermit(cc *types.ContractContext, TokenA, TokenB common.Address, Liquidity, AmountAMin, AmountBMin *big.Int, To common.Address, Deadline *big.Int, ApproveMax bool, Signature []byte) (*big.Int, *big.Int, error) {
	return f.cont.removeLiquidityWithPermit(cc, TokenA, TokenB, Liquidity, AmountAMin, AmountBMin, To, Deadline, ApproveMax, Signature)
}
func (f *front) RemoveLiquiditySupportingFeeOnTransferTokens(cc *types.ContractContext, TokenA, TokenB common.Address, Liquidity, AmountAMin, AmountBMin *big.Int, To common.Address, Deadline *big.Int) (*big.Int, *big.Int, error) {
	return f.cont.removeLiquiditySupportingFeeOnTransferTokens(cc, TokenA, TokenB, Liquidity, AmountAMin, AmountBMin, To, Deadline)
}
func (f *front) SwapExactTokensForTokens(cc *types.ContractContext, AmountIn, AmountOutMin *big.Int, Path []common.Address, To common.Address, Deadline *big.Int) ([]*big.Int, error) {
	return f.cont.swapExactTokensForTokens(cc, AmountIn, AmountOutMin, Path, To, Deadline)
}
func (f *front) SwapTokensForExactTokens(cc *types.ContractContext, AmountOut, AmountInMax *big.Int, Path []common.Address, To common.Address, Deadline *big.Int) ([]*big.Int, error) {
	return f.cont.swapTokensForExactTokens(cc, AmountOut, AmountInMax, Path, To, Deadline)
}
func (f *front) SwapExactTokensForTokensSupportingFeeOnTransferTokens(cc *types.ContractContext, AmountIn, AmountOutMin *big.Int, Path []common.Address, To common.Address, Deadline *big.Int) error {
	return f.cont.swapExactTokensForTokensSupportingFeeOnTransferTokens(cc, AmountIn, AmountOutMin, Path, To, Deadline)
}
