package token

import "github.com/deltaswaplabs/deltaswap/core/types"

// ledger tags occupy 0x01-0x06
var (
	tagTransferTax = byte(0x10)
)

// TokenClassID identifies the token contract code for deployment
var TokenClassID uint64

func init() {
	classID, err := types.RegisterContractType(&TokenContract{})
	if err != nil {
		panic(err)
	}
	TokenClassID = classID
}
