package test

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	"github.com/deltaswaplabs/deltaswap/contract/exchange/oracle"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const day = uint64(24 * 60 * 60)

var _ = Describe("Oracles", func() {

	BeforeEach(func() {
		beforeEachExchange()
		// a 1:2 pool, so token0 is worth two token1
		_, err := Exec(ctx, alice, routerAddr, "AddLiquidity", []interface{}{
			tokenA, tokenB, amount(5), amount(10), Zero, Zero, alice, deadline(),
		})
		Expect(err).To(Succeed())
	})

	deployFixedWindow := func() (common.Address, error) {
		construction := &oracle.FixedWindowOracleContractConstruction{
			Factory: factoryAddr,
			TokenA:  tokenA,
			TokenB:  tokenB,
		}
		bs, _, err := bin.WriterToBytes(construction)
		Expect(err).To(Succeed())
		cont, err := ctx.DeployContract(admin, oracle.FixedWindowOracleClassID, bs)
		if err != nil {
			return common.Address{}, err
		}
		return cont.Address(), nil
	}

	deploySlidingWindow := func(windowSize, granularity uint64) (common.Address, error) {
		construction := &oracle.SlidingWindowOracleContractConstruction{
			Factory:     factoryAddr,
			WindowSize:  windowSize,
			Granularity: granularity,
		}
		bs, _, err := bin.WriterToBytes(construction)
		Expect(err).To(Succeed())
		cont, err := ctx.DeployContract(admin, oracle.SlidingWindowOracleClassID, bs)
		if err != nil {
			return common.Address{}, err
		}
		return cont.Address(), nil
	}

	Describe("FixedWindowOracle", func() {
		It("rejects pools without reserves", func() {
			construction := &oracle.FixedWindowOracleContractConstruction{
				Factory: factoryAddr,
				TokenA:  tokenA,
				TokenB:  tokenC,
			}
			_, err := Exec(ctx, alice, factoryAddr, "CreatePair", []interface{}{tokenA, tokenC})
			Expect(err).To(Succeed())
			bs, _, err := bin.WriterToBytes(construction)
			Expect(err).To(Succeed())
			_, err = ctx.DeployContract(admin, oracle.FixedWindowOracleClassID, bs)
			Expect(err).To(MatchError("FixedWindowOracle: NO_RESERVES"))
		})

		It("refuses to update before the period elapsed", func() {
			addr, err := deployFixedWindow()
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, addr, "Update", []interface{}{})
			Expect(err).To(MatchError("FixedWindowOracle: PERIOD_NOT_ELAPSED"))
		})

		It("consults zero before the first update", func() {
			addr, err := deployFixedWindow()
			Expect(err).To(Succeed())
			is, err := Exec(ctx, alice, addr, "Consult", []interface{}{tokenA, amount(1)})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int).Sign()).To(Equal(0))
		})

		It("fixes the average over a full period", func() {
			addr, err := deployFixedWindow()
			Expect(err).To(Succeed())

			ctx = Sleep(ctx, day)
			_, err = Exec(ctx, alice, addr, "Update", []interface{}{})
			Expect(err).To(Succeed())

			// reserves never moved, the average is the 2:1 spot price
			is, err := Exec(ctx, alice, addr, "Consult", []interface{}{tokenA, amount(1)})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(amount(2)))

			is, err = Exec(ctx, alice, addr, "Consult", []interface{}{tokenB, amount(2)})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(amount(1)))
		})

		It("rejects tokens outside the pair", func() {
			addr, err := deployFixedWindow()
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, addr, "Consult", []interface{}{tokenC, amount(1)})
			Expect(err).To(MatchError("FixedWindowOracle: INVALID_TOKEN"))
		})

		It("tracks a price move across two periods", func() {
			addr, err := deployFixedWindow()
			Expect(err).To(Succeed())

			ctx = Sleep(ctx, day)
			_, err = Exec(ctx, alice, addr, "Update", []interface{}{})
			Expect(err).To(Succeed())

			// double the token0 reserve, halving its price
			_, err = Exec(ctx, alice, routerAddr, "SwapExactTokensForTokens", []interface{}{
				amount(5), Zero, []common.Address{tokenA, tokenB}, alice, deadline(),
			})
			Expect(err).To(Succeed())

			ctx = Sleep(ctx, day)
			_, err = Exec(ctx, alice, addr, "Update", []interface{}{})
			Expect(err).To(Succeed())

			is, err := Exec(ctx, alice, addr, "Consult", []interface{}{tokenA, amount(1)})
			Expect(err).To(Succeed())
			// the averaged price sits below the old 2:1 spot
			Expect(is[0].(*big.Int).Cmp(amount(2)) < 0).To(BeTrue())
			Expect(IsPlus(is[0].(*big.Int))).To(BeTrue())
		})
	})

	Describe("SlidingWindowOracle", func() {
		It("rejects a degenerate granularity", func() {
			_, err := deploySlidingWindow(day, 1)
			Expect(err).To(MatchError("SlidingWindowOracle: GRANULARITY"))
		})

		It("rejects a window the granularity does not divide", func() {
			_, err := deploySlidingWindow(day, 7)
			Expect(err).To(MatchError("SlidingWindowOracle: WINDOW_NOT_EVENLY_DIVISIBLE"))
		})

		It("maps timestamps onto the ring", func() {
			addr, err := deploySlidingWindow(day, 8)
			Expect(err).To(Succeed())
			period := day / 8

			is, err := Exec(ctx, alice, addr, "PeriodSize", []interface{}{})
			Expect(err).To(Succeed())
			Expect(is[0].(uint64)).To(Equal(period))

			is, err = Exec(ctx, alice, addr, "ObservationIndexOf", []interface{}{uint64(0)})
			Expect(err).To(Succeed())
			Expect(is[0].(uint64)).To(Equal(uint64(0)))
			is, err = Exec(ctx, alice, addr, "ObservationIndexOf", []interface{}{period})
			Expect(err).To(Succeed())
			Expect(is[0].(uint64)).To(Equal(uint64(1)))
			is, err = Exec(ctx, alice, addr, "ObservationIndexOf", []interface{}{period * 9})
			Expect(err).To(Succeed())
			Expect(is[0].(uint64)).To(Equal(uint64(1)))
		})

		DescribeTable("hourly ring of a 24h window",
			func(timestamp, expected uint64) {
				addr, err := deploySlidingWindow(day, 24)
				Expect(err).To(Succeed())
				is, err := Exec(ctx, alice, addr, "ObservationIndexOf", []interface{}{timestamp})
				Expect(err).To(Succeed())
				Expect(is[0].(uint64)).To(Equal(expected))
			},
			Entry("epoch", uint64(0), uint64(0)),
			Entry("last second of the first hour", uint64(3599), uint64(0)),
			Entry("second hour", uint64(3600), uint64(1)),
			Entry("third hour", uint64(7200), uint64(2)),
			Entry("last hour of the day", uint64(86399), uint64(23)),
			Entry("wraps after a day", uint64(86400), uint64(0)),
		)

		It("refuses to consult without in-window history", func() {
			addr, err := deploySlidingWindow(day, 8)
			Expect(err).To(Succeed())
			_, err = Exec(ctx, alice, addr, "Consult", []interface{}{tokenA, amount(1), tokenB})
			Expect(err).To(MatchError("SlidingWindowOracle: MISSING_HISTORICAL_OBSERVATION"))
		})

		It("updates once per period per pair", func() {
			addr, err := deploySlidingWindow(day, 8)
			Expect(err).To(Succeed())
			pair := pairOf(tokenA, tokenB)

			_, err = Exec(ctx, alice, addr, "Update", []interface{}{tokenA, tokenB})
			Expect(err).To(Succeed())
			index := ctx.LastTimestamp() / uint64(time.Second) / (day / 8) % 8
			is, err := Exec(ctx, alice, addr, "Observation", []interface{}{pair, index})
			Expect(err).To(Succeed())
			recordedAt := is[0].(uint64)
			Expect(recordedAt).ToNot(Equal(uint64(0)))

			// a second poke in the same period leaves the slot alone
			ctx = Sleep(ctx, 60)
			_, err = Exec(ctx, alice, addr, "Update", []interface{}{tokenA, tokenB})
			Expect(err).To(Succeed())
			is, err = Exec(ctx, alice, addr, "Observation", []interface{}{pair, index})
			Expect(err).To(Succeed())
			Expect(is[0].(uint64)).To(Equal(recordedAt))
		})

		It("averages over the window after steady updates", func() {
			addr, err := deploySlidingWindow(day, 8)
			Expect(err).To(Succeed())
			period := day / 8

			for i := 0; i < 9; i++ {
				_, err = Exec(ctx, alice, addr, "Update", []interface{}{tokenA, tokenB})
				Expect(err).To(Succeed())
				if i < 8 {
					ctx = Sleep(ctx, period)
				}
			}

			is, err := Exec(ctx, alice, addr, "Consult", []interface{}{tokenA, amount(1), tokenB})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(amount(2)))

			is, err = Exec(ctx, alice, addr, "Consult", []interface{}{tokenB, amount(2), tokenA})
			Expect(err).To(Succeed())
			Expect(is[0].(*big.Int)).To(Equal(amount(1)))
		})
	})
})
