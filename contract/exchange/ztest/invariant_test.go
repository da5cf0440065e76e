package test

import (
	"math/big"
	"math/rand"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/contract/exchange/trade"
	. "github.com/deltaswaplabs/deltaswap/contract/exchange/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Swap invariant", func() {

	BeforeEach(func() {
		beforeEachExchange()
		_, err := Exec(ctx, alice, routerAddr, "AddLiquidity", []interface{}{
			tokenA, tokenB, amount(100), amount(100), Zero, Zero, alice, deadline(),
		})
		Expect(err).To(Succeed())
	})

	It("never lets the reserve product shrink under random trading", func() {
		pair := pairOf(tokenA, tokenB)
		rnd := rand.New(rand.NewSource(42))
		token0, token1, err := trade.SortTokens(tokenA, tokenB)
		Expect(err).To(Succeed())

		reserves := func() (*big.Int, *big.Int) {
			is, err := Exec(ctx, admin, pair, "Reserves", []interface{}{})
			Expect(err).To(Succeed())
			return is[0].(*big.Int), is[1].(*big.Int)
		}

		r0, r1 := reserves()
		k := Mul(r0, r1)
		for i := 0; i < 50; i++ {
			amountIn := Add(big.NewInt(rnd.Int63n(1e18)), big.NewInt(1))
			path := []common.Address{tokenA, tokenB}
			if rnd.Intn(2) == 0 {
				path = []common.Address{tokenB, tokenA}
			}
			_, err := Exec(ctx, alice, routerAddr, "SwapExactTokensForTokens", []interface{}{
				amountIn, Zero, path, alice, deadline(),
			})
			Expect(err).To(Succeed())

			r0, r1 = reserves()
			next := Mul(r0, r1)
			Expect(next.Cmp(k) >= 0).To(BeTrue())
			k = next

			// the router leaves nothing stranded on the pair
			Expect(balanceOf(token0, pair)).To(Equal(r0))
			Expect(balanceOf(token1, pair)).To(Equal(r1))
		}
	})
})
