package trade

import (
	"bytes"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/contract/ledger"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// reserves are range checked against 2^112 like the packed layout of the
// reference pool, so accumulator math never sees a wider operand
var maxReserve = Exp(big.NewInt(2), big.NewInt(112))

// PairContract is the constant-product pool. Share accounting lives in the
// embedded ledger; reserve accounting, the swap invariant and the price
// accumulators live here.
type PairContract struct {
	ledger.Ledger
	addr   common.Address
	master common.Address
}

func (self *PairContract) Address() common.Address {
	return self.addr
}

func (self *PairContract) Master() common.Address {
	return self.master
}

func (self *PairContract) Init(addr common.Address, master common.Address) {
	self.addr = addr
	self.master = master
}

func (self *PairContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &PairContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	self.SetName(cc, data.Name)
	self.SetSymbol(cc, data.Symbol)
	cc.SetContractData([]byte{tagFactory}, data.Factory[:])
	cc.SetContractData([]byte{tagToken0}, data.Token0[:])
	cc.SetContractData([]byte{tagToken1}, data.Token1[:])
	return nil
}

//////////////////////////////////////////////////
// PairContract : getter functions
//////////////////////////////////////////////////

func (self *PairContract) factory(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFactory}))
}
func (self *PairContract) token0(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagToken0}))
}
func (self *PairContract) token1(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagToken1}))
}
func (self *PairContract) reserve0(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagReserve0}))
}
func (self *PairContract) reserve1(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagReserve1}))
}
func (self *PairContract) blockTimestampLast(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagBlockTimestampLast})
	if len(bs) == 0 {
		return 0
	}
	return bin.Uint64(bs)
}
func (self *PairContract) reserves(cc types.ContractLoader) (*big.Int, *big.Int, uint64) {
	return self.reserve0(cc), self.reserve1(cc), self.blockTimestampLast(cc)
}
func (self *PairContract) price0CumulativeLast(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagPrice0CumulativeLast}))
}
func (self *PairContract) price1CumulativeLast(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagPrice1CumulativeLast}))
}
func (self *PairContract) kLast(cc types.ContractLoader) *big.Int {
	return big.NewInt(0).SetBytes(cc.ContractData([]byte{tagKLast}))
}
func (self *PairContract) gammaPool(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagGammaPool}))
}

//////////////////////////////////////////////////
// PairContract : setter functions
//////////////////////////////////////////////////

func (self *PairContract) setReserves(cc *types.ContractContext, reserve0, reserve1 *big.Int) {
	cc.SetContractData([]byte{tagReserve0}, reserve0.Bytes())
	cc.SetContractData([]byte{tagReserve1}, reserve1.Bytes())
}
func (self *PairContract) setKLast(cc *types.ContractContext, kLast *big.Int) {
	cc.SetContractData([]byte{tagKLast}, kLast.Bytes())
}
func (self *PairContract) setGammaPool(cc *types.ContractContext, pool common.Address) error {
	if cc.From() != self.factory(cc) {
		return errors.New("DeltaSwap: FORBIDDEN")
	}
	cc.SetContractData([]byte{tagGammaPool}, pool[:])
	return nil
}

// storage based lock: a mutex would not survive the same-goroutine
// reentry of the flash-swap callback
func (self *PairContract) lock(cc *types.ContractContext) error {
	if len(cc.ContractData([]byte{tagLock})) > 0 {
		return errors.New("DeltaSwap: LOCKED")
	}
	cc.SetContractData([]byte{tagLock}, []byte{1})
	return nil
}
func (self *PairContract) unlock(cc *types.ContractContext) {
	cc.SetContractData([]byte{tagLock}, nil)
}

//////////////////////////////////////////////////
// PairContract : factory lookups
//////////////////////////////////////////////////

func (self *PairContract) feeNum(cc *types.ContractContext) (uint64, error) {
	is, err := cc.Exec(cc, self.factory(cc), "FeeNum", []interface{}{})
	if err != nil {
		return 0, err
	}
	return is[0].(uint64), nil
}

func (self *PairContract) feeTo(cc *types.ContractContext) (common.Address, error) {
	is, err := cc.Exec(cc, self.factory(cc), "FeeTo", []interface{}{})
	if err != nil {
		return ZeroAddress, err
	}
	return is[0].(common.Address), nil
}

//////////////////////////////////////////////////
// PairContract : core
//////////////////////////////////////////////////

// _update commits balances as the new reserves and advances the cumulative
// price accumulators. The accumulators are UQ112x112 prices times elapsed
// seconds and wrap mod 2^256; consumers must subtract two readings.
func (self *PairContract) _update(cc *types.ContractContext, balance0, balance1, _reserve0, _reserve1 *big.Int) error {
	if balance0.Cmp(maxReserve) >= 0 || balance1.Cmp(maxReserve) >= 0 {
		return errors.New("DeltaSwap: OVERFLOW")
	}
	blockTimestamp := cc.LastTimestamp() / uint64(time.Second)
	timeElapsed := blockTimestamp - self.blockTimestampLast(cc)
	if timeElapsed > 0 && IsPlus(_reserve0) && IsPlus(_reserve1) {
		price0 := cumulativePriceDelta(_reserve1, _reserve0, timeElapsed)
		price1 := cumulativePriceDelta(_reserve0, _reserve1, timeElapsed)

		acc0, _ := uint256.FromBig(self.price0CumulativeLast(cc))
		acc1, _ := uint256.FromBig(self.price1CumulativeLast(cc))
		acc0.Add(acc0, price0)
		acc1.Add(acc1, price1)
		cc.SetContractData([]byte{tagPrice0CumulativeLast}, acc0.Bytes())
		cc.SetContractData([]byte{tagPrice1CumulativeLast}, acc1.Bytes())
	}
	self.setReserves(cc, balance0, balance1)
	cc.SetContractData([]byte{tagBlockTimestampLast}, bin.Uint64Bytes(blockTimestamp))
	cc.EmitEvent("Sync", Clone(balance0), Clone(balance1))
	return nil
}

// cumulativePriceDelta returns UQ112x112(numerator/denominator) * elapsed
// with uint256 wrapping semantics
func cumulativePriceDelta(numerator, denominator *big.Int, timeElapsed uint64) *uint256.Int {
	n, _ := uint256.FromBig(numerator)
	d, _ := uint256.FromBig(denominator)
	price := new(uint256.Int).Lsh(n, 112)
	price.Div(price, d)
	return price.Mul(price, uint256.NewInt(timeElapsed))
}

// _mintFee mints 1/6 of the sqrt(k) growth to the protocol fee recipient.
// If the recipient is unset the growth marker is cleared so fees are not
// charged retroactively when it is set later.
func (self *PairContract) _mintFee(cc *types.ContractContext, _reserve0, _reserve1 *big.Int) (bool, error) {
	feeTo, err := self.feeTo(cc)
	if err != nil {
		return false, err
	}
	feeOn := feeTo != ZeroAddress
	_kLast := self.kLast(cc)
	if feeOn {
		if _kLast.Cmp(Zero) != 0 {
			rootK := Sqrt(Mul(_reserve0, _reserve1))
			rootKLast := Sqrt(_kLast)
			if rootK.Cmp(rootKLast) > 0 {
				numerator := Mul(self.TotalSupply(cc), Sub(rootK, rootKLast))
				denominator := Add(MulC(rootK, 5), rootKLast)
				liquidity := Div(numerator, denominator)
				if IsPlus(liquidity) {
					if err := self.Ledger.Mint(cc, feeTo, liquidity); err != nil {
						return false, err
					}
				}
			}
		}
	} else if _kLast.Cmp(Zero) != 0 {
		self.setKLast(cc, Zero)
	}
	return feeOn, nil
}

// mint credits shares for token amounts already transferred to the pair
func (self *PairContract) mint(cc *types.ContractContext, to common.Address) (*big.Int, error) {
	if err := self.lock(cc); err != nil {
		return nil, err
	}
	defer self.unlock(cc)

	_reserve0, _reserve1, _ := self.reserves(cc)
	balance0, err := TokenBalanceOf(cc, self.token0(cc), self.addr)
	if err != nil {
		return nil, err
	}
	balance1, err := TokenBalanceOf(cc, self.token1(cc), self.addr)
	if err != nil {
		return nil, err
	}
	amount0 := Sub(balance0, _reserve0)
	amount1 := Sub(balance1, _reserve1)
	if amount0.Cmp(Zero) < 0 || amount1.Cmp(Zero) < 0 {
		return nil, errors.New("DeltaSwap: INSUFFICIENT_INPUT_AMOUNT")
	}

	feeOn, err := self._mintFee(cc, _reserve0, _reserve1)
	if err != nil {
		return nil, err
	}
	_totalSupply := self.TotalSupply(cc)

	var liquidity *big.Int
	if _totalSupply.Cmp(Zero) == 0 {
		liquidity = SubC(Sqrt(Mul(amount0, amount1)), MINIMUM_LIQUIDITY)
		if !IsPlus(liquidity) {
			return nil, errors.New("DeltaSwap: INSUFFICIENT_LIQUIDITY_MINTED")
		}
		if err := self.Ledger.Mint(cc, ZeroAddress, big.NewInt(MINIMUM_LIQUIDITY)); err != nil {
			return nil, err
		}
	} else {
		liquidity = Min(MulDiv(amount0, _totalSupply, _reserve0), MulDiv(amount1, _totalSupply, _reserve1))
	}
	if !IsPlus(liquidity) {
		return nil, errors.New("DeltaSwap: INSUFFICIENT_LIQUIDITY_MINTED")
	}
	if err := self.Ledger.Mint(cc, to, liquidity); err != nil {
		return nil, err
	}

	if err := self._update(cc, balance0, balance1, _reserve0, _reserve1); err != nil {
		return nil, err
	}
	if feeOn {
		self.setKLast(cc, Mul(self.reserve0(cc), self.reserve1(cc)))
	}
	cc.EmitEvent("Mint", cc.From(), amount0, amount1)
	return liquidity, nil
}

// burn redeems the shares previously transferred to the pair itself
func (self *PairContract) burn(cc *types.ContractContext, to common.Address) (*big.Int, *big.Int, error) {
	if err := self.lock(cc); err != nil {
		return nil, nil, err
	}
	defer self.unlock(cc)

	_reserve0, _reserve1, _ := self.reserves(cc)
	_token0, _token1 := self.token0(cc), self.token1(cc)
	balance0, err := TokenBalanceOf(cc, _token0, self.addr)
	if err != nil {
		return nil, nil, err
	}
	balance1, err := TokenBalanceOf(cc, _token1, self.addr)
	if err != nil {
		return nil, nil, err
	}
	liquidity := self.BalanceOf(cc, self.addr)

	feeOn, err := self._mintFee(cc, _reserve0, _reserve1)
	if err != nil {
		return nil, nil, err
	}
	_totalSupply := self.TotalSupply(cc)
	amount0 := MulDiv(liquidity, balance0, _totalSupply)
	amount1 := MulDiv(liquidity, balance1, _totalSupply)
	if !IsPlus(amount0) || !IsPlus(amount1) {
		return nil, nil, errors.New("DeltaSwap: INSUFFICIENT_LIQUIDITY_BURNED")
	}
	if err := self.Ledger.Burn(cc, self.addr, liquidity); err != nil {
		return nil, nil, err
	}
	if err := SafeTransfer(cc, _token0, to, amount0); err != nil {
		return nil, nil, err
	}
	if err := SafeTransfer(cc, _token1, to, amount1); err != nil {
		return nil, nil, err
	}
	balance0, err = TokenBalanceOf(cc, _token0, self.addr)
	if err != nil {
		return nil, nil, err
	}
	balance1, err = TokenBalanceOf(cc, _token1, self.addr)
	if err != nil {
		return nil, nil, err
	}

	if err := self._update(cc, balance0, balance1, _reserve0, _reserve1); err != nil {
		return nil, nil, err
	}
	if feeOn {
		self.setKLast(cc, Mul(self.reserve0(cc), self.reserve1(cc)))
	}
	cc.EmitEvent("Burn", cc.From(), amount0, amount1, to)
	return amount0, amount1, nil
}

// swap sends the requested outputs optimistically, runs the optional
// flash-swap callback and only then enforces the fee-adjusted invariant.
// Every exit path before _update reverts the optimistic transfers through
// the call snapshot.
func (self *PairContract) swap(cc *types.ContractContext, amount0Out, amount1Out *big.Int, to common.Address, data []byte) error {
	if err := self.lock(cc); err != nil {
		return err
	}
	defer self.unlock(cc)

	if amount0Out.Cmp(Zero) < 0 || amount1Out.Cmp(Zero) < 0 {
		return errors.New("DeltaSwap: INSUFFICIENT_OUTPUT_AMOUNT")
	}
	if !IsPlus(amount0Out) && !IsPlus(amount1Out) {
		return errors.New("DeltaSwap: INSUFFICIENT_OUTPUT_AMOUNT")
	}
	_reserve0, _reserve1, _ := self.reserves(cc)
	if amount0Out.Cmp(_reserve0) >= 0 || amount1Out.Cmp(_reserve1) >= 0 {
		return errors.New("DeltaSwap: INSUFFICIENT_LIQUIDITY")
	}
	_token0, _token1 := self.token0(cc), self.token1(cc)
	if to == _token0 || to == _token1 {
		return errors.New("DeltaSwap: INVALID_TO")
	}

	if IsPlus(amount0Out) {
		if err := SafeTransfer(cc, _token0, to, amount0Out); err != nil {
			return err
		}
	}
	if IsPlus(amount1Out) {
		if err := SafeTransfer(cc, _token1, to, amount1Out); err != nil {
			return err
		}
	}
	if len(data) > 0 {
		if _, err := cc.Exec(cc, to, "DeltaSwapCall", []interface{}{cc.From(), Clone(amount0Out), Clone(amount1Out), data}); err != nil {
			return err
		}
	}
	balance0, err := TokenBalanceOf(cc, _token0, self.addr)
	if err != nil {
		return err
	}
	balance1, err := TokenBalanceOf(cc, _token1, self.addr)
	if err != nil {
		return err
	}

	var amount0In, amount1In *big.Int
	if balance0.Cmp(Sub(_reserve0, amount0Out)) > 0 {
		amount0In = Sub(balance0, Sub(_reserve0, amount0Out))
	} else {
		amount0In = big.NewInt(0)
	}
	if balance1.Cmp(Sub(_reserve1, amount1Out)) > 0 {
		amount1In = Sub(balance1, Sub(_reserve1, amount1Out))
	} else {
		amount1In = big.NewInt(0)
	}
	if !IsPlus(amount0In) && !IsPlus(amount1In) {
		return errors.New("DeltaSwap: INSUFFICIENT_INPUT_AMOUNT")
	}

	fee, err := self.feeNum(cc)
	if err != nil {
		return err
	}
	balance0Adjusted := Sub(MulC(balance0, FEE_DENOMINATOR), MulC(amount0In, int64(fee)))
	balance1Adjusted := Sub(MulC(balance1, FEE_DENOMINATOR), MulC(amount1In, int64(fee)))
	if Mul(balance0Adjusted, balance1Adjusted).Cmp(MulC(MulC(Mul(_reserve0, _reserve1), FEE_DENOMINATOR), FEE_DENOMINATOR)) < 0 {
		return errors.New("DeltaSwap: K")
	}

	if err := self._update(cc, balance0, balance1, _reserve0, _reserve1); err != nil {
		return err
	}
	cc.EmitEvent("Swap", cc.From(), amount0In, amount1In, Clone(amount0Out), Clone(amount1Out), to)
	return nil
}

// skim sweeps any balance in excess of the reserves to the caller's target
func (self *PairContract) skim(cc *types.ContractContext, to common.Address) error {
	if err := self.lock(cc); err != nil {
		return err
	}
	defer self.unlock(cc)

	_token0, _token1 := self.token0(cc), self.token1(cc)
	balance0, err := TokenBalanceOf(cc, _token0, self.addr)
	if err != nil {
		return err
	}
	balance1, err := TokenBalanceOf(cc, _token1, self.addr)
	if err != nil {
		return err
	}
	if excess := Sub(balance0, self.reserve0(cc)); IsPlus(excess) {
		if err := SafeTransfer(cc, _token0, to, excess); err != nil {
			return err
		}
	}
	if excess := Sub(balance1, self.reserve1(cc)); IsPlus(excess) {
		if err := SafeTransfer(cc, _token1, to, excess); err != nil {
			return err
		}
	}
	return nil
}

// sync forces the reserves to match the actual balances
func (self *PairContract) sync(cc *types.ContractContext) error {
	if err := self.lock(cc); err != nil {
		return err
	}
	defer self.unlock(cc)

	balance0, err := TokenBalanceOf(cc, self.token0(cc), self.addr)
	if err != nil {
		return err
	}
	balance1, err := TokenBalanceOf(cc, self.token1(cc), self.addr)
	if err != nil {
		return err
	}
	return self._update(cc, balance0, balance1, self.reserve0(cc), self.reserve1(cc))
}
