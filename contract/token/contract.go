package token

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/contract/ledger"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// TokenContract is a plain fungible token. An optional per-mille transfer
// tax burns part of every transfer, which is how fee-on-transfer tokens
// behave against the router.
type TokenContract struct {
	ledger.Ledger
	addr   common.Address
	master common.Address
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

func (cont *TokenContract) Master() common.Address {
	return cont.master
}

func (cont *TokenContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *TokenContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &TokenContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cont.SetName(cc, data.Name)
	cont.SetSymbol(cc, data.Symbol)
	if data.TransferTax > 0 {
		if data.TransferTax >= 1000 {
			return errors.New("Token: INVALID_TRANSFER_TAX")
		}
		cc.SetContractData([]byte{tagTransferTax}, bin.Uint64Bytes(data.TransferTax))
	}
	if data.InitialSupply != nil && IsPlus(data.InitialSupply) {
		if err := cont.Ledger.Mint(cc, cont.master, data.InitialSupply); err != nil {
			return err
		}
	}
	return nil
}

func (cont *TokenContract) transferTax(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagTransferTax})
	if len(bs) == 0 {
		return 0
	}
	return bin.Uint64(bs)
}

// taxedTransfer burns the tax share and delivers the rest
func (cont *TokenContract) taxedTransfer(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	tax := cont.transferTax(cc)
	if tax == 0 {
		return cont.TransferRaw(cc, from, to, amount)
	}
	burned := DivC(MulC(amount, int64(tax)), 1000)
	if IsPlus(burned) {
		if err := cont.Ledger.Burn(cc, from, burned); err != nil {
			return err
		}
	}
	return cont.TransferRaw(cc, from, to, Sub(amount, burned))
}

func (cont *TokenContract) Mint(cc *types.ContractContext, to common.Address, amount *big.Int) error {
	if cc.From() != cont.master {
		return errors.New("Token: FORBIDDEN")
	}
	return cont.Ledger.Mint(cc, to, amount)
}

func (cont *TokenContract) Burn(cc *types.ContractContext, amount *big.Int) error {
	return cont.Ledger.Burn(cc, cc.From(), amount)
}

func (cont *TokenContract) Transfer(cc *types.ContractContext, to common.Address, amount *big.Int) error {
	return cont.taxedTransfer(cc, cc.From(), to, amount)
}

func (cont *TokenContract) TransferFrom(cc *types.ContractContext, from, to common.Address, amount *big.Int) error {
	spender := cc.From()
	currentAllowance := cont.Allowance(cc, from, spender)
	if amount.Cmp(currentAllowance) > 0 {
		return errors.New("Ledger: TRANSFER_EXCEED_ALLOWANCE")
	}
	if currentAllowance.Cmp(MaxUint256) != 0 {
		if err := cont.ApproveRaw(cc, from, spender, Sub(currentAllowance, amount)); err != nil {
			return err
		}
	}
	return cont.taxedTransfer(cc, from, to, amount)
}
