package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/core/types"
)

func (cont *TokenContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *TokenContract
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Name(cc types.ContractLoader) string {
	return f.cont.Name(cc)
}
func (f *front) Symbol(cc types.ContractLoader) string {
	return f.cont.Symbol(cc)
}
func (f *front) Decimals(cc types.ContractLoader) *big.Int {
	return f.cont.Decimals(cc)
}
func (f *front) TotalSupply(cc types.ContractLoader) *big.Int {
	return f.cont.TotalSupply(cc)
}
func (f *front) BalanceOf(cc types.ContractLoader, from common.Address) *big.Int {
	return f.cont.BalanceOf(cc, from)
}
func (f *front) Allowance(cc types.ContractLoader, owner, spender common.Address) *big.Int {
	return f.cont.Allowance(cc, owner, spender)
}
func (f *front) Nonce(cc types.ContractLoader, owner common.Address) *big.Int {
	return f.cont.Nonce(cc, owner)
}
func (f *front) DomainSeparator(cc types.ContractLoader) common.Hash {
	return f.cont.DomainSeparator(cc, f.cont.Address())
}
func (f *front) TransferTax(cc types.ContractLoader) uint64 {
	return f.cont.transferTax(cc)
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) Mint(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	return f.cont.Mint(cc, To, Amount)
}
func (f *front) Burn(cc *types.ContractContext, Amount *big.Int) error {
	return f.cont.Burn(cc, Amount)
}
func (f *front) Transfer(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	return f.cont.Transfer(cc, To, Amount)
}
func (f *front) Approve(cc *types.ContractContext, To common.Address, Amount *big.Int) error {
	return f.cont.Approve(cc, To, Amount)
}
func (f *front) IncreaseAllowance(cc *types.ContractContext, spender common.Address, addAmount *big.Int) error {
	return f.cont.IncreaseAllowance(cc, spender, addAmount)
}
func (f *front) DecreaseAllowance(cc *types.ContractContext, spender common.Address, subtractAmount *big.Int) error {
	return f.cont.DecreaseAllowance(cc, spender, subtractAmount)
}
func (f *front) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *big.Int) error {
	return f.cont.TransferFrom(cc, From, To, Amount)
}
func (f *front) Permit(cc *types.ContractContext, Owner, Spender common.Address, Value, Deadline *big.Int, Signature []byte) error {
	return f.cont.Permit(cc, f.cont.Address(), Owner, Spender, Value, Deadline, Signature)
}
