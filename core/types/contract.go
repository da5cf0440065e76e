package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Contract defines the functions a deployable contract must provide
type Contract interface {
	Address() common.Address
	Master() common.Address
	Init(addr common.Address, master common.Address)
	OnCreate(cc *ContractContext, Args []byte) error
	Front() interface{}
}

// ContractLoader is the read-only view of a contract's state
type ContractLoader interface {
	ChainID() *big.Int
	LastTimestamp() uint64
	ContractData(name []byte) []byte
	AccountData(addr common.Address, name []byte) []byte
	IsContract(addr common.Address) bool
}

// ContractDefine records a deployed contract
type ContractDefine struct {
	Address common.Address
	Owner   common.Address
	ClassID uint64
}
