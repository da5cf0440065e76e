package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ContextData is one snapshot layer of the context state.
// Reads walk up the parent chain; writes always land in the top layer.
type ContextData struct {
	Parent      *ContextData
	dataMap     map[string][]byte
	contractMap map[common.Address]*ContractDefine
	seqMap      map[common.Address]uint64
	events      []*Event
}

// NewContextData returns a ContextData layered on the parent
func NewContextData(parent *ContextData) *ContextData {
	return &ContextData{
		Parent:      parent,
		dataMap:     map[string][]byte{},
		contractMap: map[common.Address]*ContractDefine{},
		seqMap:      map[common.Address]uint64{},
	}
}

func dataKey(cont common.Address, addr common.Address, name []byte) string {
	bs := make([]byte, common.AddressLength*2+len(name))
	copy(bs, cont[:])
	copy(bs[common.AddressLength:], addr[:])
	copy(bs[common.AddressLength*2:], name)
	return string(bs)
}

// Data returns the stored value scoped to the contract and the account
func (cd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	key := dataKey(cont, addr, name)
	for c := cd; c != nil; c = c.Parent {
		if bs, has := c.dataMap[key]; has {
			return bs
		}
	}
	return nil
}

// SetData stores the value scoped to the contract and the account
func (cd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	cd.dataMap[dataKey(cont, addr, name)] = value
}

// ContractDefine returns the define of the deployed contract
func (cd *ContextData) ContractDefine(addr common.Address) *ContractDefine {
	for c := cd; c != nil; c = c.Parent {
		if def, has := c.contractMap[addr]; has {
			return def
		}
	}
	return nil
}

// IsContract returns whether a contract is deployed at the address
func (cd *ContextData) IsContract(addr common.Address) bool {
	return cd.ContractDefine(addr) != nil
}

// SetContractDefine records the deployed contract
func (cd *ContextData) SetContractDefine(def *ContractDefine) error {
	if cd.IsContract(def.Address) {
		return errors.WithStack(ErrExistContract)
	}
	cd.contractMap[def.Address] = def
	return nil
}

// AddrSeq returns the deploy sequence of the address
func (cd *ContextData) AddrSeq(addr common.Address) uint64 {
	for c := cd; c != nil; c = c.Parent {
		if seq, has := c.seqMap[addr]; has {
			return seq
		}
	}
	return 0
}

// AddAddrSeq increases the deploy sequence of the address
func (cd *ContextData) AddAddrSeq(addr common.Address) {
	cd.seqMap[addr] = cd.AddrSeq(addr) + 1
}

// EmitEvent appends the event to the layer
func (cd *ContextData) EmitEvent(ev *Event) {
	cd.events = append(cd.events, ev)
}

// commitTo merges the layer into its parent
func (cd *ContextData) commitTo(parent *ContextData) {
	for k, v := range cd.dataMap {
		parent.dataMap[k] = v
	}
	for k, v := range cd.contractMap {
		parent.contractMap[k] = v
	}
	for k, v := range cd.seqMap {
		parent.seqMap[k] = v
	}
	parent.events = append(parent.events, cd.events...)
}
