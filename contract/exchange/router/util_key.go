package router

import (
	"github.com/deltaswaplabs/deltaswap/core/types"
)

var (
	tagFactory = byte(0x01)
)

// RouterClassID identifies the router contract code for deployment
var RouterClassID uint64

func init() {
	classID, err := types.RegisterContractType(&RouterContract{})
	if err != nil {
		panic(err)
	}
	RouterClassID = classID
}
