package types

import (
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Interactor dispatches calls between contracts. Each dispatched call runs
// under its own snapshot, so a failing callee rolls back alone without
// disturbing the caller's state.
type Interactor struct {
	ctx  *Context
	cont Contract
	cc   *ContractContext
}

// NewInteractor returns an Interactor bound to the entry contract call
func NewInteractor(ctx *Context, cont Contract, cc *ContractContext) *Interactor {
	return &Interactor{
		ctx:  ctx,
		cont: cont,
		cc:   cc,
	}
}

// Exec calls the method of the contract at the address with the caller set
// to the contract behind cc
func (i *Interactor) Exec(cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) (result []interface{}, err error) {
	if len(MethodName) < 1 {
		return nil, errors.WithStack(ErrInvalidMethod)
	}
	cont, err := i.ctx.Contract(Addr)
	if err != nil {
		return nil, err
	}

	sn := i.ctx.Snapshot()
	defer func() {
		if v := recover(); v != nil {
			if e, ok := v.(error); ok {
				err = errors.WithStack(e)
			} else {
				err = errors.Errorf("%v", v)
			}
		}
		if err != nil {
			i.ctx.Revert(sn)
		} else {
			i.ctx.Commit(sn)
		}
	}()

	ecc := i.currentContractContext(cc, Addr)

	method, err := contractMethod(cont, MethodName)
	if err != nil {
		return nil, err
	}

	in := make([]reflect.Value, 1, len(Args)+1)
	in[0] = reflect.ValueOf(ecc)
	for _, arg := range Args {
		in = append(in, reflect.ValueOf(arg))
	}
	if method.Type().NumIn() != len(in) {
		return nil, errors.WithStack(ErrInvalidArgument)
	}

	outs := method.Call(in)
	result = []interface{}{}
	for _, out := range outs {
		if out.Type().Implements(errType) {
			if !out.IsNil() {
				err = out.Interface().(error)
			}
		} else {
			result = append(result, out.Interface())
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// currentContractContext keeps the original caller when a contract is
// entered through its own bound context and switches the caller to the
// invoking contract for every cross-contract call
func (i *Interactor) currentContractContext(cc *ContractContext, Addr common.Address) *ContractContext {
	if cc.cont == Addr {
		if cc.Exec == nil {
			cc.Exec = i.Exec
		}
		return cc
	}
	ecc := &ContractContext{
		cont: Addr,
		from: cc.cont,
		ctx:  i.ctx,
	}
	ecc.Exec = i.Exec
	return ecc
}

func contractMethod(cont Contract, MethodName string) (reflect.Value, error) {
	front := cont.Front()
	if front == nil {
		return reflect.Value{}, errors.WithStack(ErrInvalidMethod)
	}
	method := reflect.ValueOf(front).MethodByName(MethodName)
	if !method.IsValid() {
		return reflect.Value{}, errors.WithStack(ErrInvalidMethod)
	}
	return method, nil
}
