package types

import "github.com/pkg/errors"

var (
	ErrExistContractType = errors.New("exist contract type")
	ErrInvalidClassID    = errors.New("invalid class id")
	ErrExistContract     = errors.New("exist contract")
	ErrNotExistContract  = errors.New("not exist contract")
	ErrInvalidMethod     = errors.New("invalid method")
	ErrInvalidArgument   = errors.New("invalid argument")
)
