package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/common/bin"
)

// Context is the in-memory transactional state all contracts run over.
// Every externally triggered call is wrapped in a snapshot, so a failed
// call leaves no partial effects behind.
type Context struct {
	chainID       *big.Int
	lastTimestamp uint64
	stack         []*ContextData
}

// NewEmptyContext returns an empty Context on the chain id
func NewEmptyContext(chainID *big.Int) *Context {
	return &Context{
		chainID:       chainID,
		lastTimestamp: 0,
		stack:         []*ContextData{NewContextData(nil)},
	}
}

// ChainID returns the id of the chain
func (ctx *Context) ChainID() *big.Int {
	return ctx.chainID
}

// LastTimestamp returns the timestamp of the current execution unit in nanoseconds
func (ctx *Context) LastTimestamp() uint64 {
	return ctx.lastTimestamp
}

// NextContext advances the context to the next execution unit
func (ctx *Context) NextContext(timestamp uint64) *Context {
	ctx.lastTimestamp = timestamp
	return ctx
}

// Top returns the top snapshot layer
func (ctx *Context) Top() *ContextData {
	return ctx.stack[len(ctx.stack)-1]
}

// Snapshot pushes a snapshot layer and returns its index
func (ctx *Context) Snapshot() int {
	ctx.stack = append(ctx.stack, NewContextData(ctx.Top()))
	return len(ctx.stack) - 1
}

// Revert discards all layers from the snapshot index upward
func (ctx *Context) Revert(sn int) {
	if sn <= 0 || sn >= len(ctx.stack) {
		return
	}
	ctx.stack = ctx.stack[:sn]
}

// Commit merges all layers from the snapshot index upward into their parents
func (ctx *Context) Commit(sn int) {
	if sn <= 0 {
		return
	}
	for len(ctx.stack) > sn {
		top := ctx.Top()
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		top.commitTo(ctx.Top())
	}
}

// IsContract returns whether a contract is deployed at the address
func (ctx *Context) IsContract(addr common.Address) bool {
	return ctx.Top().IsContract(addr)
}

// Contract instantiates the contract deployed at the address
func (ctx *Context) Contract(addr common.Address) (Contract, error) {
	def := ctx.Top().ContractDefine(addr)
	if def == nil {
		return nil, errors.WithStack(ErrNotExistContract)
	}
	return CreateContract(def)
}

// EventList returns all committed events
func (ctx *Context) EventList() []*Event {
	list := []*Event{}
	for _, cd := range ctx.stack {
		list = append(list, cd.events...)
	}
	return list
}

// ContractContext returns a contract context of the contract with the caller
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	return &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
	}
}

// contractAddress derives the deploy address from the deployer, the class id and the sequence
func contractAddress(owner common.Address, ClassID uint64, seq uint64) common.Address {
	base := make([]byte, 1+common.AddressLength+8+8)
	base[0] = 0xff
	copy(base[1:], owner[:])
	copy(base[1+common.AddressLength:], bin.Uint64Bytes(ClassID))
	copy(base[1+common.AddressLength+8:], bin.Uint64Bytes(seq))
	h := crypto.Keccak256(base)
	return common.BytesToAddress(h[12:])
}

// DeployContract deploys the contract at the deployer's next sequence address
func (ctx *Context) DeployContract(owner common.Address, ClassID uint64, Args []byte) (Contract, error) {
	seq := ctx.Top().AddrSeq(owner)
	addr := contractAddress(owner, ClassID, seq)
	ctx.Top().AddAddrSeq(owner)
	return ctx.DeployContractWithAddress(owner, ClassID, addr, Args)
}

// DeployContractWithAddress deploys the contract at the given address
func (ctx *Context) DeployContractWithAddress(owner common.Address, ClassID uint64, addr common.Address, Args []byte) (Contract, error) {
	def := &ContractDefine{
		Address: addr,
		Owner:   owner,
		ClassID: ClassID,
	}
	sn := ctx.Snapshot()
	if err := ctx.Top().SetContractDefine(def); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	cont, err := CreateContract(def)
	if err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	cc := ctx.ContractContext(cont, owner)
	intr := NewInteractor(ctx, cont, cc)
	cc.Exec = intr.Exec
	if err := cont.OnCreate(cc, Args); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return cont, nil
}

// ExecFunc calls into the contract at the address through the dispatcher
type ExecFunc = func(cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)

// ContractContext is the view a contract has while it executes
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// ChainID returns the id of the chain
func (cc *ContractContext) ChainID() *big.Int {
	return cc.ctx.ChainID()
}

// From returns the caller of the current call
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// LastTimestamp returns the timestamp of the current execution unit in nanoseconds
func (cc *ContractContext) LastTimestamp() uint64 {
	return cc.ctx.LastTimestamp()
}

// IsContract returns whether a contract is deployed at the address
func (cc *ContractContext) IsContract(addr common.Address) bool {
	return cc.ctx.IsContract(addr)
}

// ContractData returns the contract-scoped data
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, common.Address{}, name)
}

// SetContractData stores the contract-scoped data
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, common.Address{}, name, value)
}

// AccountData returns the account-scoped data of the contract
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, addr, name)
}

// SetAccountData stores the account-scoped data of the contract
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, addr, name, value)
}

// DeployContractWithAddress deploys a contract from inside a call
func (cc *ContractContext) DeployContractWithAddress(owner common.Address, ClassID uint64, addr common.Address, Args []byte) (Contract, error) {
	return cc.ctx.DeployContractWithAddress(owner, ClassID, addr, Args)
}

// EmitEvent records a structured notification on the current layer
func (cc *ContractContext) EmitEvent(name string, args ...interface{}) {
	cc.ctx.Top().EmitEvent(&Event{
		Contract: cc.cont,
		Name:     name,
		Args:     args,
	})
}
