package types

import "github.com/ethereum/go-ethereum/common"

// Event is a structured notification emitted by a contract during a call.
// Events recorded inside a reverted call are discarded with the call.
type Event struct {
	Contract common.Address
	Name     string
	Args     []interface{}
}
