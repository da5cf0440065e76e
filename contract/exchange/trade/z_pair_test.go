package trade_test

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// flash-swap callback behaviors, selected by the first data byte
const (
	flashRepayWithFee byte = iota + 1
	flashKeepFunds
	flashReenter
	flashRepayNoFee
)

var flashBorrowerClassID uint64

func init() {
	var err error
	if flashBorrowerClassID, err = types.RegisterContractType(&flashBorrowerContract{}); err != nil {
		panic(err)
	}
}

// flashBorrowerContract drives the pair's swap callback in tests. It is
// pre-funded with both tokens and repays (or misbehaves) according to the
// mode byte passed through the swap data.
type flashBorrowerContract struct {
	addr   common.Address
	master common.Address
}

func (cont *flashBorrowerContract) Address() common.Address { return cont.addr }
func (cont *flashBorrowerContract) Master() common.Address  { return cont.master }
func (cont *flashBorrowerContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}
func (cont *flashBorrowerContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	return nil
}
func (cont *flashBorrowerContract) Front() interface{} {
	return &flashBorrowerFront{cont: cont}
}

type flashBorrowerFront struct {
	cont *flashBorrowerContract
}

func (f *flashBorrowerFront) DeltaSwapCall(cc *types.ContractContext, Sender common.Address, Amount0, Amount1 *big.Int, Data []byte) error {
	pair := cc.From()
	switch Data[0] {
	case flashKeepFunds:
		return nil
	case flashReenter:
		_, err := cc.Exec(cc, pair, "Swap", []interface{}{big.NewInt(1), big.NewInt(0), f.cont.addr, []byte{}})
		return err
	}

	is, err := cc.Exec(cc, pair, "Token0", []interface{}{})
	if err != nil {
		return err
	}
	pairToken0 := is[0].(common.Address)
	is, err = cc.Exec(cc, pair, "Token1", []interface{}{})
	if err != nil {
		return err
	}
	pairToken1 := is[0].(common.Address)

	repay := func(amount *big.Int) *big.Int {
		if Data[0] == flashRepayNoFee {
			return Clone(amount)
		}
		return Add(amount, AddC(DivC(MulC(amount, 3), 997), 1))
	}
	if IsPlus(Amount0) {
		if err := SafeTransfer(cc, pairToken0, pair, repay(Amount0)); err != nil {
			return err
		}
	}
	if IsPlus(Amount1) {
		if err := SafeTransfer(cc, pairToken1, pair, repay(Amount1)); err != nil {
			return err
		}
	}
	return nil
}

var _ = Describe("Pair", func() {

	BeforeEach(beforeEachPair)

	Describe("Mint", func() {
		It("locks the minimum liquidity on the first mint", func() {
			liquidity := addLiquidity(Amount(1), Amount(4))
			expected := Sub(Amount(2), big.NewInt(1000))
			Expect(liquidity).To(Equal(expected))
			Expect(tokenBalanceOf(pairAddr, alice)).To(Equal(expected))
			Expect(tokenBalanceOf(pairAddr, ZeroAddress)).To(Equal(big.NewInt(1000)))
			Expect(tokenTotalSupply(pairAddr)).To(Equal(Amount(2)))

			reserve0, reserve1, _ := pairReserves()
			Expect(reserve0).To(Equal(Amount(1)))
			Expect(reserve1).To(Equal(Amount(4)))
		})

		It("mints proportional shares afterwards", func() {
			addLiquidity(Amount(1), Amount(4))
			liquidity := addLiquidity(Amount(2), Amount(8))
			Expect(liquidity).To(Equal(Amount(4)))
			Expect(tokenTotalSupply(pairAddr)).To(Equal(Amount(6)))
		})

		It("mints the lesser proportional share on unbalanced deposits", func() {
			addLiquidity(Amount(2), Amount(2))
			liquidity := addLiquidity(Amount(1), Amount(2))
			Expect(liquidity).To(Equal(Amount(1)))
		})

		It("rejects an empty deposit", func() {
			addLiquidity(Amount(1), Amount(4))
			_, err := Exec(ctx, alice, pairAddr, "Mint", []interface{}{alice})
			Expect(err).To(MatchError("DeltaSwap: INSUFFICIENT_LIQUIDITY_MINTED"))
		})

		It("rejects a first deposit below the minimum liquidity", func() {
			_, err := Exec(ctx, alice, token0, "Transfer", []interface{}{pairAddr, big.NewInt(1000)})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, token1, "Transfer", []interface{}{pairAddr, big.NewInt(1000)})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, pairAddr, "Mint", []interface{}{alice})
			Expect(err).To(MatchError("DeltaSwap: INSUFFICIENT_LIQUIDITY_MINTED"))
		})
	})

	Describe("Burn", func() {
		It("redeems the pro-rata share of both tokens", func() {
			liquidity := addLiquidity(Amount(3), Amount(3))
			_, err := Exec(ctx, alice, pairAddr, "Transfer", []interface{}{pairAddr, liquidity})
			Expect(err).To(Succeed())

			balance0Before := tokenBalanceOf(token0, alice)
			balance1Before := tokenBalanceOf(token1, alice)
			is, err := Exec(ctx, alice, pairAddr, "Burn", []interface{}{alice})
			Expect(err).To(Succeed())

			expected := Sub(Amount(3), big.NewInt(1000))
			Expect(is[0].(*big.Int)).To(Equal(expected))
			Expect(is[1].(*big.Int)).To(Equal(expected))
			Expect(tokenBalanceOf(token0, alice)).To(Equal(Add(balance0Before, expected)))
			Expect(tokenBalanceOf(token1, alice)).To(Equal(Add(balance1Before, expected)))
			Expect(tokenBalanceOf(pairAddr, alice)).To(Equal(Zero))
			Expect(tokenTotalSupply(pairAddr)).To(Equal(big.NewInt(1000)))

			reserve0, reserve1, _ := pairReserves()
			Expect(reserve0).To(Equal(big.NewInt(1000)))
			Expect(reserve1).To(Equal(big.NewInt(1000)))
		})

		It("rejects burning without shares on the pair", func() {
			addLiquidity(Amount(3), Amount(3))
			_, err := Exec(ctx, alice, pairAddr, "Burn", []interface{}{alice})
			Expect(err).To(MatchError("DeltaSwap: INSUFFICIENT_LIQUIDITY_BURNED"))
		})
	})

	Describe("Swap", func() {
		BeforeEach(func() {
			addLiquidity(Amount(5), Amount(10))
		})

		It("pays out the fee-adjusted amount", func() {
			expected := ToAmount("1662497915624478906")
			_, err := Exec(ctx, alice, token0, "Transfer", []interface{}{pairAddr, Amount(1)})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, pairAddr, "Swap", []interface{}{big.NewInt(0), expected, bob, []byte{}})
			Expect(err).To(Succeed())

			Expect(tokenBalanceOf(token1, bob)).To(Equal(expected))
			reserve0, reserve1, _ := pairReserves()
			Expect(reserve0).To(Equal(Amount(6)))
			Expect(reserve1).To(Equal(Sub(Amount(10), expected)))
		})

		It("rejects one token unit above the invariant", func() {
			expected := ToAmount("1662497915624478906")
			_, err := Exec(ctx, alice, token0, "Transfer", []interface{}{pairAddr, Amount(1)})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, pairAddr, "Swap", []interface{}{big.NewInt(0), AddC(expected, 1), bob, []byte{}})
			Expect(err).To(MatchError("DeltaSwap: K"))
		})

		It("rejects swaps without output", func() {
			_, err := Exec(ctx, alice, pairAddr, "Swap", []interface{}{big.NewInt(0), big.NewInt(0), bob, []byte{}})
			Expect(err).To(MatchError("DeltaSwap: INSUFFICIENT_OUTPUT_AMOUNT"))
		})

		It("rejects outputs covering the whole reserve", func() {
			_, err := Exec(ctx, alice, pairAddr, "Swap", []interface{}{Amount(5), big.NewInt(0), bob, []byte{}})
			Expect(err).To(MatchError("DeltaSwap: INSUFFICIENT_LIQUIDITY"))
		})

		It("rejects a token address as recipient", func() {
			_, err := Exec(ctx, alice, token0, "Transfer", []interface{}{pairAddr, Amount(1)})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, pairAddr, "Swap", []interface{}{big.NewInt(0), Amount(1), token1, []byte{}})
			Expect(err).To(MatchError("DeltaSwap: INVALID_TO"))
		})

		It("rejects swaps without input", func() {
			_, err := Exec(ctx, alice, pairAddr, "Swap", []interface{}{big.NewInt(0), Amount(1), bob, []byte{}})
			Expect(err).To(MatchError("DeltaSwap: INSUFFICIENT_INPUT_AMOUNT"))
		})
	})

	Describe("Flash swap", func() {
		var borrower common.Address

		BeforeEach(func() {
			addLiquidity(Amount(5), Amount(10))
			cont, err := ctx.DeployContract(admin, flashBorrowerClassID, []byte{})
			Expect(err).To(Succeed())
			borrower = cont.Address()
			_, err = Exec(ctx, admin, token0, "Transfer", []interface{}{borrower, Amount(10)})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, admin, token1, "Transfer", []interface{}{borrower, Amount(10)})
			Expect(err).To(Succeed())
		})

		It("lets the callback repay in the borrowed token plus fee", func() {
			_, err := Exec(ctx, alice, pairAddr, "Swap", []interface{}{Amount(1), big.NewInt(0), borrower, []byte{flashRepayWithFee}})
			Expect(err).To(Succeed())

			reserve0, _, _ := pairReserves()
			Expect(reserve0.Cmp(Amount(5)) > 0).To(BeTrue())
		})

		It("reverts the optimistic transfer when the callback keeps the funds", func() {
			_, err := Exec(ctx, alice, pairAddr, "Swap", []interface{}{Amount(1), big.NewInt(0), borrower, []byte{flashKeepFunds}})
			Expect(err).To(MatchError("DeltaSwap: INSUFFICIENT_INPUT_AMOUNT"))

			Expect(tokenBalanceOf(token0, borrower)).To(Equal(Amount(10)))
			reserve0, reserve1, _ := pairReserves()
			Expect(reserve0).To(Equal(Amount(5)))
			Expect(reserve1).To(Equal(Amount(10)))
		})

		It("rejects repayment without the fee", func() {
			_, err := Exec(ctx, alice, pairAddr, "Swap", []interface{}{Amount(1), big.NewInt(0), borrower, []byte{flashRepayNoFee}})
			Expect(err).To(MatchError("DeltaSwap: K"))
		})

		It("blocks reentry from the callback", func() {
			_, err := Exec(ctx, alice, pairAddr, "Swap", []interface{}{Amount(1), big.NewInt(0), borrower, []byte{flashReenter}})
			Expect(err).To(MatchError("DeltaSwap: LOCKED"))
		})
	})

	Describe("Protocol fee", func() {
		It("keeps kLast cleared while the fee is off", func() {
			addLiquidity(Amount(1), Amount(4))
			is, err := Exec(ctx, admin, pairAddr, "KLast", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(Zero))
		})

		It("records kLast once the fee recipient is set", func() {
			_, err := Exec(ctx, admin, factoryAddr, "SetFeeTo", []interface{}{bob})
			Expect(err).To(Succeed())
			addLiquidity(Amount(1), Amount(4))
			is, err := Exec(ctx, admin, pairAddr, "KLast", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(Mul(Amount(1), Amount(4))))
		})

		It("mints one sixth of the growth to the fee recipient", func() {
			_, err := Exec(ctx, admin, factoryAddr, "SetFeeTo", []interface{}{bob})
			Expect(err).To(Succeed())

			liquidity := addLiquidity(Amount(1000), Amount(1000))

			expectedOutput := ToAmount("996006981039903216")
			_, err = Exec(ctx, alice, token1, "Transfer", []interface{}{pairAddr, Amount(1)})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, pairAddr, "Swap", []interface{}{expectedOutput, big.NewInt(0), alice, []byte{}})
			Expect(err).To(Succeed())

			_, err = Exec(ctx, alice, pairAddr, "Transfer", []interface{}{pairAddr, liquidity})
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, pairAddr, "Burn", []interface{}{alice})
			Expect(err).To(Succeed())

			feeLiquidity := ToAmount("249750499251388")
			Expect(tokenBalanceOf(pairAddr, bob)).To(Equal(feeLiquidity))
			Expect(tokenTotalSupply(pairAddr)).To(Equal(Add(big.NewInt(1000), feeLiquidity)))
		})
	})

	Describe("Price accumulators", func() {
		It("advance with the spot price per elapsed second", func() {
			addLiquidity(Amount(3), Amount(3))
			ctx = Sleep(ctx, 1)
			_, err := Exec(ctx, alice, pairAddr, "Sync", []interface{}{})
			Expect(err).To(Succeed())

			one := Exp(big.NewInt(2), big.NewInt(112))
			is, err := Exec(ctx, admin, pairAddr, "Price0CumulativeLast", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(one))
			is, err = Exec(ctx, admin, pairAddr, "Price1CumulativeLast", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(one))

			ctx = Sleep(ctx, 9)
			_, err = Exec(ctx, alice, pairAddr, "Sync", []interface{}{})
			Expect(err).To(Succeed())
			is, err = Exec(ctx, admin, pairAddr, "Price0CumulativeLast", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(MulC(one, 10)))
		})

		It("weight the price by the reserves before the update", func() {
			addLiquidity(Amount(2), Amount(8))
			ctx = Sleep(ctx, 5)
			_, err := Exec(ctx, alice, pairAddr, "Sync", []interface{}{})
			Expect(err).To(Succeed())

			// price0 = 8/2 = 4, price1 = 2/8 = 1/4, both over 5 seconds
			scale := Exp(big.NewInt(2), big.NewInt(112))
			is, err := Exec(ctx, admin, pairAddr, "Price0CumulativeLast", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(MulC(MulC(scale, 4), 5)))
			is, err = Exec(ctx, admin, pairAddr, "Price1CumulativeLast", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(MulC(DivC(scale, 4), 5)))
		})
	})

	Describe("Skim and Sync", func() {
		It("skim sweeps only the excess over the reserves", func() {
			addLiquidity(Amount(2), Amount(2))
			_, err := Exec(ctx, alice, token0, "Transfer", []interface{}{pairAddr, Amount(1)})
			Expect(err).To(Succeed())

			_, err = Exec(ctx, alice, pairAddr, "Skim", []interface{}{bob})
			Expect(err).To(Succeed())
			Expect(tokenBalanceOf(token0, bob)).To(Equal(Amount(1)))
			Expect(tokenBalanceOf(token0, pairAddr)).To(Equal(Amount(2)))

			reserve0, reserve1, _ := pairReserves()
			Expect(reserve0).To(Equal(Amount(2)))
			Expect(reserve1).To(Equal(Amount(2)))
		})

		It("sync lifts the reserves to the balances", func() {
			addLiquidity(Amount(2), Amount(2))
			_, err := Exec(ctx, alice, token1, "Transfer", []interface{}{pairAddr, Amount(3)})
			Expect(err).To(Succeed())

			_, err = Exec(ctx, alice, pairAddr, "Sync", []interface{}{})
			Expect(err).To(Succeed())
			reserve0, reserve1, _ := pairReserves()
			Expect(reserve0).To(Equal(Amount(2)))
			Expect(reserve1).To(Equal(Amount(5)))
		})
	})

	Describe("GammaPool", func() {
		It("only accepts the hook address from the factory", func() {
			pool := common.HexToAddress("0x00000000000000000000000000000000000000aa")
			_, err := Exec(ctx, admin, pairAddr, "SetGammaPool", []interface{}{pool})
			Expect(err).To(MatchError("DeltaSwap: FORBIDDEN"))

			is, err := Exec(ctx, admin, pairAddr, "GammaPool", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(common.Address)).To(Equal(ZeroAddress))
		})
	})
})
