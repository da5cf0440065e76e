package trade_test

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Library", func() {

	tokenA := common.HexToAddress("0x1000000000000000000000000000000000000001")
	tokenB := common.HexToAddress("0x2000000000000000000000000000000000000002")

	Describe("SortTokens", func() {
		It("orders by byte comparison regardless of argument order", func() {
			t0, t1, err := trade.SortTokens(tokenA, tokenB)
			Expect(err).To(Succeed())
			Expect(t0).To(Equal(tokenA))
			Expect(t1).To(Equal(tokenB))

			t0, t1, err = trade.SortTokens(tokenB, tokenA)
			Expect(err).To(Succeed())
			Expect(t0).To(Equal(tokenA))
			Expect(t1).To(Equal(tokenB))
		})

		It("rejects identical tokens", func() {
			_, _, err := trade.SortTokens(tokenA, tokenA)
			Expect(err).To(MatchError("DeltaSwap: IDENTICAL_ADDRESSES"))
		})

		It("rejects the zero address", func() {
			_, _, err := trade.SortTokens(ZeroAddress, tokenB)
			Expect(err).To(MatchError("DeltaSwap: ZERO_ADDRESS"))
		})
	})

	Describe("PairFor", func() {
		factoryA := common.HexToAddress("0xf00000000000000000000000000000000000000a")
		factoryB := common.HexToAddress("0xf00000000000000000000000000000000000000b")

		It("is deterministic and order independent", func() {
			p1, err := trade.PairFor(factoryA, tokenA, tokenB)
			Expect(err).To(Succeed())
			p2, err := trade.PairFor(factoryA, tokenB, tokenA)
			Expect(err).To(Succeed())
			Expect(p1).To(Equal(p2))
			Expect(p1).ToNot(Equal(ZeroAddress))
		})

		It("depends on the factory address", func() {
			p1, err := trade.PairFor(factoryA, tokenA, tokenB)
			Expect(err).To(Succeed())
			p2, err := trade.PairFor(factoryB, tokenA, tokenB)
			Expect(err).To(Succeed())
			Expect(p1).ToNot(Equal(p2))
		})
	})

	Describe("Quote", func() {
		It("scales by the reserve ratio", func() {
			amountB, err := trade.Quote(big.NewInt(1), big.NewInt(100), big.NewInt(200))
			Expect(err).To(Succeed())
			Expect(amountB).To(Equal(big.NewInt(2)))

			amountB, err = trade.Quote(big.NewInt(2), big.NewInt(200), big.NewInt(100))
			Expect(err).To(Succeed())
			Expect(amountB).To(Equal(big.NewInt(1)))
		})

		It("rejects zero amount and empty reserves", func() {
			_, err := trade.Quote(big.NewInt(0), big.NewInt(100), big.NewInt(200))
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_AMOUNT"))
			_, err = trade.Quote(big.NewInt(1), big.NewInt(0), big.NewInt(200))
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY"))
			_, err = trade.Quote(big.NewInt(1), big.NewInt(100), big.NewInt(0))
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY"))
		})
	})

	DescribeTable("GetAmountOut",
		func(amountIn, reserveIn, reserveOut *big.Int, feeNum uint64, expected *big.Int) {
			amountOut, err := trade.GetAmountOut(amountIn, reserveIn, reserveOut, feeNum)
			Expect(err).To(Succeed())
			Expect(amountOut).To(Equal(expected))
		},
		Entry("1 in 5:10 fee 3", Amount(1), Amount(5), Amount(10), uint64(3), ToAmount("1662497915624478906")),
		Entry("2 in 5:10 fee 3", Amount(2), Amount(5), Amount(10), uint64(3), ToAmount("2851015155847869602")),
		Entry("2 in 10:5 fee 3", Amount(2), Amount(10), Amount(5), uint64(3), ToAmount("831248957812239453")),
		Entry("1 in 10:5 fee 2", Amount(1), Amount(10), Amount(5), uint64(2), ToAmount("453718857974177123")),
		Entry("1 in 10:10 fee 2", Amount(1), Amount(10), Amount(10), uint64(2), ToAmount("907437715948354246")),
		Entry("1 in 100:100 fee 0", Amount(1), Amount(100), Amount(100), uint64(0), ToAmount("990099009900990099")),
		Entry("1 in 1000:1000 fee 0", Amount(1), Amount(1000), Amount(1000), uint64(0), ToAmount("999000999000999000")),
	)

	Describe("GetAmountOut edge cases", func() {
		It("rejects zero input", func() {
			_, err := trade.GetAmountOut(big.NewInt(0), Amount(5), Amount(10), 3)
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_INPUT_AMOUNT"))
		})

		It("rejects empty reserves", func() {
			_, err := trade.GetAmountOut(Amount(1), big.NewInt(0), Amount(10), 3)
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY"))
			_, err = trade.GetAmountOut(Amount(1), Amount(5), big.NewInt(0), 3)
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY"))
		})
	})

	Describe("GetAmountIn", func() {
		It("rounds the required input up", func() {
			amountIn, err := trade.GetAmountIn(big.NewInt(1), big.NewInt(100), big.NewInt(100), 3)
			Expect(err).To(Succeed())
			Expect(amountIn).To(Equal(big.NewInt(2)))
		})

		It("inverts GetAmountOut up to rounding", func() {
			amountOut, err := trade.GetAmountOut(Amount(1), Amount(5), Amount(10), 3)
			Expect(err).To(Succeed())
			amountIn, err := trade.GetAmountIn(amountOut, Amount(5), Amount(10), 3)
			Expect(err).To(Succeed())
			Expect(amountIn.Cmp(Amount(1)) >= 0).To(BeTrue())
			Expect(amountIn.Cmp(Add(Amount(1), big.NewInt(2))) <= 0).To(BeTrue())
		})

		It("rejects zero output", func() {
			_, err := trade.GetAmountIn(big.NewInt(0), Amount(5), Amount(10), 3)
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_OUTPUT_AMOUNT"))
		})

		It("rejects outputs that drain the reserve", func() {
			_, err := trade.GetAmountIn(Amount(10), Amount(5), Amount(10), 3)
			Expect(err).To(MatchError("DeltaSwapLibrary: INSUFFICIENT_LIQUIDITY"))
		})
	})
})
