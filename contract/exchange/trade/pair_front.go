package trade

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/core/types"
)

func (self *PairContract) Front() interface{} {
	return &PairFront{
		cont: self,
	}
}

type PairFront struct {
	cont *PairContract
}

//////////////////////////////////////////////////
// LiquidityToken
//////////////////////////////////////////////////

func (f *PairFront) Name(cc types.ContractLoader) string {
	return f.cont.Name(cc)
}
func (f *PairFront) Symbol(cc types.ContractLoader) string {
	return f.cont.Symbol(cc)
}
func (f *PairFront) Decimals(cc types.ContractLoader) *big.Int {
	return f.cont.Decimals(cc)
}
func (f *PairFront) TotalSupply(cc types.ContractLoader) *big.Int {
	return f.cont.TotalSupply(cc)
}
func (f *PairFront) BalanceOf(cc types.ContractLoader, from common.Address) *big.Int {
	return f.cont.BalanceOf(cc, from)
}
func (f *PairFront) Allowance(cc types.ContractLoader, owner, spender common.Address) *big.Int {
	return f.cont.Allowance(cc, owner, spender)
}
func (f *PairFront) Nonce(cc types.ContractLoader, owner common.Address) *big.Int {
	return f.cont.Nonce(cc, owner)
}
func (f *PairFront) DomainSeparator(cc types.ContractLoader) common.Hash {
	return f.cont.DomainSeparator(cc, f.cont.Address())
}
func (f *PairFront) PermitTypeHash(cc types.ContractLoader) common.Hash {
	return f.cont.PermitTypeHash()
}
func (f *PairFront) Transfer(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	return f.cont.Ledger.Transfer(cc, To, Amount)
}
func (f *PairFront) Approve(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	return f.cont.Ledger.Approve(cc, To, Amount)
}
func (f *PairFront) IncreaseAllowance(cc *types.ContractContext, spender common.Address, addAmount *big.Int) error {
	return f.cont.Ledger.IncreaseAllowance(cc, spender, addAmount)
}
func (f *PairFront) DecreaseAllowance(cc *types.ContractContext, spender common.Address, subtractAmount *big.Int) error {
	return f.cont.Ledger.DecreaseAllowance(cc, spender, subtractAmount)
}
func (f *PairFront) TransferFrom(cc *types.ContractContext, From, To common.Address, Amount *big.Int) error {
	return f.cont.Ledger.TransferFrom(cc, From, To, Amount)
}
func (f *PairFront) Permit(cc *types.ContractContext, Owner, Spender common.Address, Value, Deadline *big.Int, Signature []byte) error {
	return f.cont.Ledger.Permit(cc, f.cont.Address(), Owner, Spender, Value, Deadline, Signature)
}

//////////////////////////////////////////////////
// Pool : public reader functions
//////////////////////////////////////////////////

func (f *PairFront) Factory(cc types.ContractLoader) common.Address {
	return f.cont.factory(cc)
}
func (f *PairFront) Token0(cc types.ContractLoader) common.Address {
	return f.cont.token0(cc)
}
func (f *PairFront) Token1(cc types.ContractLoader) common.Address {
	return f.cont.token1(cc)
}
func (f *PairFront) Reserves(cc types.ContractLoader) (*big.Int, *big.Int, uint64) {
	return f.cont.reserves(cc)
}
func (f *PairFront) Price0CumulativeLast(cc types.ContractLoader) *big.Int {
	return f.cont.price0CumulativeLast(cc)
}
func (f *PairFront) Price1CumulativeLast(cc types.ContractLoader) *big.Int {
	return f.cont.price1CumulativeLast(cc)
}
func (f *PairFront) KLast(cc types.ContractLoader) *big.Int {
	return f.cont.kLast(cc)
}
func (f *PairFront) GammaPool(cc types.ContractLoader) common.Address {
	return f.cont.gammaPool(cc)
}

//////////////////////////////////////////////////
// Pool : public writer functions
//////////////////////////////////////////////////

func (f *PairFront) Mint(cc *types.ContractContext, To common.Address) (*big.Int, error) {
	return f.cont.mint(cc, To)
}
func (f *PairFront) Burn(cc *types.ContractContext, To common.Address) (*big.Int, *big.Int, error) {
	return f.cont.burn(cc, To)
}
func (f *PairFront) Swap(cc *types.ContractContext, Amount0Out, Amount1Out *big.Int, To common.Address, Data []byte) error {
	return f.cont.swap(cc, Amount0Out, Amount1Out, To, Data)
}
func (f *PairFront) Skim(cc *types.ContractContext, To common.Address) error {
	return f.cont.skim(cc, To)
}
func (f *PairFront) Sync(cc *types.ContractContext) error {
	return f.cont.sync(cc)
}
func (f *PairFront) SetGammaPool(cc *types.ContractContext, Pool common.Address) error {
	return f.cont.setGammaPool(cc, Pool)
}
