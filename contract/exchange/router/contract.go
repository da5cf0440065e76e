package router

import (
	"bytes"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// RouterContract is the user-facing entry for liquidity and multi-hop
// swaps. It owns no funds between calls; every flow moves tokens straight
// between the caller and the pairs.
type RouterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *RouterContract) Address() common.Address {
	return cont.addr
}
func (cont *RouterContract) Master() common.Address {
	return cont.master
}
func (cont *RouterContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *RouterContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &RouterContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagFactory}, data.Factory[:])
	return nil
}

func (cont *RouterContract) factory(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFactory}))
}

// ensure fails once the deadline second has passed
func (cont *RouterContract) ensure(cc *types.ContractContext, deadline *big.Int) error {
	now := big.NewInt(0).SetUint64(cc.LastTimestamp() / uint64(time.Second))
	if deadline.Cmp(now) < 0 {
		return errors.New("DeltaSwapRouter: EXPIRED")
	}
	return nil
}

//////////////////////////////////////////////////
// Liquidity
//////////////////////////////////////////////////

// _addLiquidity resolves the deposit amounts against current reserves and
// creates the pair on first use
func (cont *RouterContract) _addLiquidity(cc *types.ContractContext, tokenA, tokenB common.Address, amountADesired, amountBDesired, amountAMin, amountBMin *big.Int) (*big.Int, *big.Int, error) {
	_factory := cont.factory(cc)
	is, err := cc.Exec(cc, _factory, "GetPair", []interface{}{tokenA, tokenB})
	if err != nil {
		return nil, nil, err
	}
	if is[0].(common.Address) == ZeroAddress {
		if _, err := cc.Exec(cc, _factory, "CreatePair", []interface{}{tokenA, tokenB}); err != nil {
			return nil, nil, err
		}
	}
	reserveA, reserveB, err := cont.getReserves(cc, tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	if reserveA.Cmp(Zero) == 0 && reserveB.Cmp(Zero) == 0 {
		return amountADesired, amountBDesired, nil
	}
	amountBOptimal, err := trade.Quote(amountADesired, reserveA, reserveB)
	if err != nil {
		return nil, nil, err
	}
	if amountBOptimal.Cmp(amountBDesired) <= 0 {
		if amountBOptimal.Cmp(amountBMin) < 0 {
			return nil, nil, errors.New("DeltaSwapRouter: INSUFFICIENT_B_AMOUNT")
		}
		return amountADesired, amountBOptimal, nil
	}
	amountAOptimal, err := trade.Quote(amountBDesired, reserveB, reserveA)
	if err != nil {
		return nil, nil, err
	}
	if amountAOptimal.Cmp(amountADesired) > 0 {
		return nil, nil, errors.New("DeltaSwapRouter: EXCESSIVE_A_AMOUNT")
	}
	if amountAOptimal.Cmp(amountAMin) < 0 {
		return nil, nil, errors.New("DeltaSwapRouter: INSUFFICIENT_A_AMOUNT")
	}
	return amountAOptimal, amountBDesired, nil
}

func (cont *RouterContract) addLiquidity(cc *types.ContractContext, tokenA, tokenB common.Address, amountADesired, amountBDesired, amountAMin, amountBMin *big.Int, to common.Address, deadline *big.Int) (*big.Int, *big.Int, *big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, nil, nil, err
	}
	amountA, amountB, err := cont._addLiquidity(cc, tokenA, tokenB, amountADesired, amountBDesired, amountAMin, amountBMin)
	if err != nil {
		return nil, nil, nil, err
	}
	pair, err := trade.PairFor(cont.factory(cc), tokenA, tokenB)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := SafeTransferFrom(cc, tokenA, cc.From(), pair, amountA); err != nil {
		return nil, nil, nil, err
	}
	if err := SafeTransferFrom(cc, tokenB, cc.From(), pair, amountB); err != nil {
		return nil, nil, nil, err
	}
	is, err := cc.Exec(cc, pair, "Mint", []interface{}{to})
	if err != nil {
		return nil, nil, nil, err
	}
	return amountA, amountB, is[0].(*big.Int), nil
}

func (cont *RouterContract) removeLiquidity(cc *types.ContractContext, tokenA, tokenB common.Address, liquidity, amountAMin, amountBMin *big.Int, to common.Address, deadline *big.Int) (*big.Int, *big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, nil, err
	}
	pair, err := trade.PairFor(cont.factory(cc), tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	// send the shares to the pair, then burn
	if _, err := cc.Exec(cc, pair, "TransferFrom", []interface{}{cc.From(), pair, liquidity}); err != nil {
		return nil, nil, err
	}
	is, err := cc.Exec(cc, pair, "Burn", []interface{}{to})
	if err != nil {
		return nil, nil, err
	}
	amount0, amount1 := is[0].(*big.Int), is[1].(*big.Int)
	token0, _, err := trade.SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	amountA, amountB := amount0, amount1
	if tokenA != token0 {
		amountA, amountB = amount1, amount0
	}
	if amountA.Cmp(amountAMin) < 0 {
		return nil, nil, errors.New("DeltaSwapRouter: INSUFFICIENT_A_AMOUNT")
	}
	if amountB.Cmp(amountBMin) < 0 {
		return nil, nil, errors.New("DeltaSwapRouter: INSUFFICIENT_B_AMOUNT")
	}
	return amountA, amountB, nil
}

func (cont *RouterContract) removeLiquidityWithPermit(cc *types.ContractContext, tokenA, tokenB common.Address, liquidity, amountAMin, amountBMin *big.Int, to common.Address, deadline *big.Int, approveMax bool, signature []byte) (*big.Int, *big.Int, error) {
	pair, err := trade.PairFor(cont.factory(cc), tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	value := liquidity
	if approveMax {
		value = MaxUint256
	}
	if _, err := cc.Exec(cc, pair, "Permit", []interface{}{cc.From(), cont.addr, Clone(value), Clone(deadline), signature}); err != nil {
		return nil, nil, err
	}
	return cont.removeLiquidity(cc, tokenA, tokenB, liquidity, amountAMin, amountBMin, to, deadline)
}

// removeLiquiditySupportingFeeOnTransferTokens burns to the router and
// forwards what actually arrived, so taxed tokens cannot trap the call on
// a nominal-amount check
func (cont *RouterContract) removeLiquiditySupportingFeeOnTransferTokens(cc *types.ContractContext, tokenA, tokenB common.Address, liquidity, amountAMin, amountBMin *big.Int, to common.Address, deadline *big.Int) (*big.Int, *big.Int, error) {
	if _, _, err := cont.removeLiquidity(cc, tokenA, tokenB, liquidity, Zero, Zero, cont.addr, deadline); err != nil {
		return nil, nil, err
	}
	amountA, err := TokenBalanceOf(cc, tokenA, cont.addr)
	if err != nil {
		return nil, nil, err
	}
	amountB, err := TokenBalanceOf(cc, tokenB, cont.addr)
	if err != nil {
		return nil, nil, err
	}
	if amountA.Cmp(amountAMin) < 0 {
		return nil, nil, errors.New("DeltaSwapRouter: INSUFFICIENT_A_AMOUNT")
	}
	if amountB.Cmp(amountBMin) < 0 {
		return nil, nil, errors.New("DeltaSwapRouter: INSUFFICIENT_B_AMOUNT")
	}
	if err := SafeTransfer(cc, tokenA, to, amountA); err != nil {
		return nil, nil, err
	}
	if err := SafeTransfer(cc, tokenB, to, amountB); err != nil {
		return nil, nil, err
	}
	return amountA, amountB, nil
}

//////////////////////////////////////////////////
// Swaps
//////////////////////////////////////////////////

// _swap walks the path; each hop delivers to the next pair, the final hop
// to the recipient
func (cont *RouterContract) _swap(cc *types.ContractContext, amounts []*big.Int, path []common.Address, _to common.Address) error {
	_factory := cont.factory(cc)
	for i := 0; i < len(path)-1; i++ {
		input, output := path[i], path[i+1]
		token0, _, err := trade.SortTokens(input, output)
		if err != nil {
			return err
		}
		amountOut := amounts[i+1]
		amount0Out, amount1Out := big.NewInt(0), Clone(amountOut)
		if input != token0 {
			amount0Out, amount1Out = Clone(amountOut), big.NewInt(0)
		}
		to := _to
		if i < len(path)-2 {
			if to, err = trade.PairFor(_factory, output, path[i+2]); err != nil {
				return err
			}
		}
		pair, err := trade.PairFor(_factory, input, output)
		if err != nil {
			return err
		}
		if _, err := cc.Exec(cc, pair, "Swap", []interface{}{amount0Out, amount1Out, to, []byte{}}); err != nil {
			return err
		}
	}
	return nil
}

func (cont *RouterContract) swapExactTokensForTokens(cc *types.ContractContext, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	amounts, err := cont.getAmountsOut(cc, amountIn, path)
	if err != nil {
		return nil, err
	}
	if amounts[len(amounts)-1].Cmp(amountOutMin) < 0 {
		return nil, errors.New("DeltaSwapRouter: INSUFFICIENT_OUTPUT_AMOUNT")
	}
	pair, err := trade.PairFor(cont.factory(cc), path[0], path[1])
	if err != nil {
		return nil, err
	}
	if err := SafeTransferFrom(cc, path[0], cc.From(), pair, amounts[0]); err != nil {
		return nil, err
	}
	if err := cont._swap(cc, amounts, path, to); err != nil {
		return nil, err
	}
	return amounts, nil
}

func (cont *RouterContract) swapTokensForExactTokens(cc *types.ContractContext, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline *big.Int) ([]*big.Int, error) {
	if err := cont.ensure(cc, deadline); err != nil {
		return nil, err
	}
	amounts, err := cont.getAmountsIn(cc, amountOut, path)
	if err != nil {
		return nil, err
	}
	if amounts[0].Cmp(amountInMax) > 0 {
		return nil, errors.New("DeltaSwapRouter: EXCESSIVE_INPUT_AMOUNT")
	}
	pair, err := trade.PairFor(cont.factory(cc), path[0], path[1])
	if err != nil {
		return nil, err
	}
	if err := SafeTransferFrom(cc, path[0], cc.From(), pair, amounts[0]); err != nil {
		return nil, err
	}
	if err := cont._swap(cc, amounts, path, to); err != nil {
		return nil, err
	}
	return amounts, nil
}

// swapExactTokensForTokensSupportingFeeOnTransferTokens measures every
// hop's true input from the pair's balance delta instead of trusting the
// nominal transfer amount
func (cont *RouterContract) swapExactTokensForTokensSupportingFeeOnTransferTokens(cc *types.ContractContext, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) error {
	if err := cont.ensure(cc, deadline); err != nil {
		return err
	}
	if len(path) < 2 {
		return errors.New("DeltaSwapLibrary: INVALID_PATH")
	}
	_factory := cont.factory(cc)
	firstPair, err := trade.PairFor(_factory, path[0], path[1])
	if err != nil {
		return err
	}
	if err := SafeTransferFrom(cc, path[0], cc.From(), firstPair, amountIn); err != nil {
		return err
	}
	balanceBefore, err := TokenBalanceOf(cc, path[len(path)-1], to)
	if err != nil {
		return err
	}

	fee, err := cont.feeNumOf(cc)
	if err != nil {
		return err
	}
	for i := 0; i < len(path)-1; i++ {
		input, output := path[i], path[i+1]
		token0, _, err := trade.SortTokens(input, output)
		if err != nil {
			return err
		}
		pair, err := trade.PairFor(_factory, input, output)
		if err != nil {
			return err
		}
		reserveIn, reserveOut, err := cont.getReserves(cc, input, output)
		if err != nil {
			return err
		}
		pairBalance, err := TokenBalanceOf(cc, input, pair)
		if err != nil {
			return err
		}
		amountInput := Sub(pairBalance, reserveIn)
		amountOutput, err := trade.GetAmountOut(amountInput, reserveIn, reserveOut, fee)
		if err != nil {
			return err
		}
		amount0Out, amount1Out := big.NewInt(0), amountOutput
		if input != token0 {
			amount0Out, amount1Out = amountOutput, big.NewInt(0)
		}
		next := to
		if i < len(path)-2 {
			if next, err = trade.PairFor(_factory, output, path[i+2]); err != nil {
				return err
			}
		}
		if _, err := cc.Exec(cc, pair, "Swap", []interface{}{amount0Out, amount1Out, next, []byte{}}); err != nil {
			return err
		}
	}

	balanceAfter, err := TokenBalanceOf(cc, path[len(path)-1], to)
	if err != nil {
		return err
	}
	if Sub(balanceAfter, balanceBefore).Cmp(amountOutMin) < 0 {
		return errors.New("DeltaSwapRouter: INSUFFICIENT_OUTPUT_AMOUNT")
	}
	return nil
}
