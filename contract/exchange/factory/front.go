package factory

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/deltaswaplabs/deltaswap/core/types"
)

func (cont *FactoryContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *FactoryContract
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) FeeTo(cc types.ContractLoader) common.Address {
	return f.cont.feeTo(cc)
}
func (f *front) FeeToSetter(cc types.ContractLoader) common.Address {
	return f.cont.feeToSetter(cc)
}
func (f *front) FeeNum(cc types.ContractLoader) uint64 {
	return f.cont.feeNum(cc)
}
func (f *front) GetPair(cc types.ContractLoader, TokenA, TokenB common.Address) common.Address {
	return f.cont.getPair(cc, TokenA, TokenB)
}
func (f *front) AllPairs(cc types.ContractLoader) []common.Address {
	return f.cont.allPairs(cc)
}
func (f *front) AllPairsLength(cc types.ContractLoader) uint64 {
	return f.cont.allPairsLength(cc)
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) CreatePair(cc *types.ContractContext, TokenA, TokenB common.Address) (common.Address, error) {
	return f.cont.createPair(cc, TokenA, TokenB)
}
func (f *front) SetFeeTo(cc *types.ContractContext, FeeTo common.Address) error {
	return f.cont.setFeeTo(cc, FeeTo)
}
func (f *front) SetFeeToSetter(cc *types.ContractContext, FeeToSetter common.Address) error {
	return f.cont.setFeeToSetter(cc, FeeToSetter)
}
func (f *front) SetFeeNum(cc *types.ContractContext, FeeNum uint64) error {
	return f.cont.setFeeNum(cc, FeeNum)
}
func (f *front) SetGammaPool(cc *types.ContractContext, TokenA, TokenB, GsFactory, Implementation common.Address, ProtocolID uint16) error {
	return f.cont.setGammaPool(cc, TokenA, TokenB, GsFactory, Implementation, ProtocolID)
}
func (f *front) UpdateGammaPool(cc *types.ContractContext, TokenA, TokenB, Pool common.Address) error {
	return f.cont.updateGammaPool(cc, TokenA, TokenB, Pool)
}
