package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// Ledger is the fungible share ledger shared by the pair and the plain
// token contract. It owns no storage tags outside its own range, so a
// contract composes it by embedding and everything stays scoped to the
// embedding contract's address.
type Ledger struct {
}

func (self *Ledger) Name(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenName}))
}
func (self *Ledger) Symbol(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenSymbol}))
}
func (self *Ledger) Decimals(cc types.ContractLoader) *big.Int {
	return big.NewInt(18)
}
func (self *Ledger) TotalSupply(cc types.ContractLoader) *big.Int {
	bs := cc.ContractData([]byte{tagTokenTotalSupply})
	return big.NewInt(0).SetBytes(bs)
}

// BalanceOf returns the amount of shares owned by the account
func (self *Ledger) BalanceOf(cc types.ContractLoader, _owner common.Address) *big.Int {
	bs := cc.AccountData(_owner, []byte{tagTokenAmount})
	return big.NewInt(0).SetBytes(bs)
}

// Allowance returns the remaining number of shares that the spender is
// allowed to spend on behalf of the owner through TransferFrom
func (self *Ledger) Allowance(cc types.ContractLoader, owner, spender common.Address) *big.Int {
	bs := cc.AccountData(owner, makeTokenKey(spender, tagTokenApprove))
	return big.NewInt(0).SetBytes(bs)
}

// Nonce returns the next unused permit nonce of the owner
func (self *Ledger) Nonce(cc types.ContractLoader, owner common.Address) *big.Int {
	bs := cc.AccountData(owner, []byte{tagTokenNonce})
	return big.NewInt(0).SetBytes(bs)
}

func (self *Ledger) SetName(cc *types.ContractContext, name string) {
	cc.SetContractData([]byte{tagTokenName}, []byte(name))
}
func (self *Ledger) SetSymbol(cc *types.ContractContext, symbol string) {
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(symbol))
}

func (self *Ledger) addNonce(cc *types.ContractContext, owner common.Address) {
	nonce := AddC(self.Nonce(cc, owner), 1)
	cc.SetAccountData(owner, []byte{tagTokenNonce}, nonce.Bytes())
}

func (self *Ledger) Mint(cc *types.ContractContext, to common.Address, amount *big.Int) error {
	if amount.Cmp(Zero) < 0 {
		return errors.New("Ledger: MINT_NEGATIVE_AMOUNT")
	}
	balance := Add(self.BalanceOf(cc, to), amount)
	total := Add(self.TotalSupply(cc), amount)

	cc.SetAccountData(to, []byte{tagTokenAmount}, balance.Bytes())
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	cc.EmitEvent("Transfer", ZeroAddress, to, Clone(amount))
	return nil
}

func (self *Ledger) Burn(cc *types.ContractContext, from common.Address, amount *big.Int) error {
	if amount.Cmp(Zero) < 0 {
		return errors.New("Ledger: BURN_NEGATIVE_AMOUNT")
	}
	balance := self.BalanceOf(cc, from)
	if balance.Cmp(amount) < 0 {
		return errors.New("Ledger: BURN_EXCEED_BALANCE")
	}
	balance = Sub(balance, amount)
	total := Sub(self.TotalSupply(cc), amount)

	cc.SetAccountData(from, []byte{tagTokenAmount}, balance.Bytes())
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	cc.EmitEvent("Transfer", from, ZeroAddress, Clone(amount))
	return nil
}

func (self *Ledger) approve(cc *types.ContractContext, owner, spender common.Address, amount *big.Int) error {
	if owner == ZeroAddress {
		return errors.New("Ledger: APPROVE_FROM_ZEROADDRESS")
	}
	if spender == ZeroAddress {
		return errors.New("Ledger: APPROVE_TO_ZEROADDRESS")
	}
	if amount.Cmp(Zero) < 0 {
		return errors.New("Ledger: APPROVE_NEGATIVE_AMOUNT")
	}
	cc.SetAccountData(owner, makeTokenKey(spender, tagTokenApprove), amount.Bytes())
	cc.EmitEvent("Approval", owner, spender, Clone(amount))
	return nil
}

func (self *Ledger) transfer(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	if from == ZeroAddress {
		return errors.New("Ledger: TRANSFER_FROM_ZEROADDRESS")
	}
	if to == ZeroAddress {
		return errors.New("Ledger: TRANSFER_TO_ZEROADDRESS")
	}
	if amount.Cmp(Zero) < 0 {
		return errors.New("Ledger: TRANSFER_NEGATIVE_AMOUNT")
	}
	fromBalance := self.BalanceOf(cc, from)
	if fromBalance.Cmp(amount) < 0 {
		return errors.New("Ledger: TRANSFER_EXCEED_BALANCE")
	}
	fromBalance = Sub(fromBalance, amount)
	cc.SetAccountData(from, []byte{tagTokenAmount}, fromBalance.Bytes())
	cc.SetAccountData(to, []byte{tagTokenAmount}, Add(self.BalanceOf(cc, to), amount).Bytes())
	cc.EmitEvent("Transfer", from, to, Clone(amount))
	return nil
}

// TransferRaw moves shares between arbitrary accounts without consulting
// allowances. Only embedding contracts call it; they are responsible for
// authorization.
func (self *Ledger) TransferRaw(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	return self.transfer(cc, from, to, amount)
}

// ApproveRaw sets the allowance of an arbitrary owner. Only embedding
// contracts call it, from flows that authenticated the owner themselves.
func (self *Ledger) ApproveRaw(cc *types.ContractContext, owner, spender common.Address, amount *big.Int) error {
	return self.approve(cc, owner, spender, amount)
}

// Approve sets the allowance of the spender over the caller's shares
func (self *Ledger) Approve(cc *types.ContractContext, spender common.Address, amount *big.Int) error {
	return self.approve(cc, cc.From(), spender, amount)
}

func (self *Ledger) IncreaseAllowance(cc *types.ContractContext, spender common.Address, addAmount *big.Int) error {
	if addAmount.Cmp(Zero) < 0 {
		return errors.New("Ledger: INCREASEALLOWANCE_NEGATIVE_AMOUNT")
	}
	allowance := Add(self.Allowance(cc, cc.From(), spender), addAmount)
	return self.approve(cc, cc.From(), spender, allowance)
}

func (self *Ledger) DecreaseAllowance(cc *types.ContractContext, spender common.Address, subtractAmount *big.Int) error {
	if subtractAmount.Cmp(Zero) < 0 {
		return errors.New("Ledger: DECREASEALLOWANCE_NEGATIVE_AMOUNT")
	}
	allowance := Sub(self.Allowance(cc, cc.From(), spender), subtractAmount)
	return self.approve(cc, cc.From(), spender, allowance)
}

// Transfer moves shares from the caller's account to the recipient
func (self *Ledger) Transfer(cc *types.ContractContext, to common.Address, amount *big.Int) error {
	return self.transfer(cc, cc.From(), to, amount)
}

// TransferFrom moves shares using the allowance mechanism. An allowance of
// max uint256 is treated as infinite and is not decremented.
func (self *Ledger) TransferFrom(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	spender := cc.From()
	currentAllowance := self.Allowance(cc, from, spender)
	if amount.Cmp(currentAllowance) > 0 {
		return errors.New("Ledger: TRANSFER_EXCEED_ALLOWANCE")
	}
	if currentAllowance.Cmp(MaxUint256) != 0 {
		if err := self.approve(cc, from, spender, Sub(currentAllowance, amount)); err != nil {
			return err
		}
	}
	return self.transfer(cc, from, to, amount)
}
