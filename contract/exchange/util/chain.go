package util

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/core/types"
)

// Exec invokes a contract method on behalf of an externally owned account.
// The whole call runs under a snapshot inside the interactor, so a failure
// leaves the context untouched.
func Exec(ctx *types.Context, user common.Address, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, error) {
	cont, err := ctx.Contract(contAddr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, user)
	intr := types.NewInteractor(ctx, cont, cc)
	cc.Exec = intr.Exec
	return intr.Exec(cc, contAddr, methodName, args)
}

// Sleep advances the context clock by the given seconds
func Sleep(ctx *types.Context, seconds uint64) *types.Context {
	return ctx.NextContext(ctx.LastTimestamp() + seconds*uint64(time.Second))
}
