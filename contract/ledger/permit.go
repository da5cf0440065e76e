package ledger

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/deltaswaplabs/deltaswap/core/types"
)

var (
	eip712DomainTypeHash = crypto.Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	permitTypeHash       = crypto.Keccak256([]byte("Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline)"))
)

// PermitTypeHash returns the EIP-712 type hash of the Permit struct
func (self *Ledger) PermitTypeHash() common.Hash {
	return common.BytesToHash(permitTypeHash)
}

// word left-pads a byte slice to one 32-byte abi word
func word(bs []byte) []byte {
	w := make([]byte, 32)
	copy(w[32-len(bs):], bs)
	return w
}

func addressWord(addr common.Address) []byte {
	return word(addr[:])
}

func bigWord(v *big.Int) []byte {
	return word(v.Bytes())
}

// DomainSeparator returns the EIP-712 domain separator of the embedding
// contract. It depends on the token name, the chain id and the contract
// address, so every pair has its own.
func (self *Ledger) DomainSeparator(cc types.ContractLoader, cont common.Address) common.Hash {
	bs := make([]byte, 0, 160)
	bs = append(bs, eip712DomainTypeHash...)
	bs = append(bs, crypto.Keccak256([]byte(self.Name(cc)))...)
	bs = append(bs, crypto.Keccak256([]byte("1"))...)
	bs = append(bs, bigWord(cc.ChainID())...)
	bs = append(bs, addressWord(cont)...)
	return common.BytesToHash(crypto.Keccak256(bs))
}

// PermitDigest returns the digest an owner signs to approve a spender
// off-chain. The nonce is the owner's current one.
func (self *Ledger) PermitDigest(cc types.ContractLoader, cont, owner, spender common.Address, value, nonce, deadline *big.Int) common.Hash {
	bs := make([]byte, 0, 192)
	bs = append(bs, permitTypeHash...)
	bs = append(bs, addressWord(owner)...)
	bs = append(bs, addressWord(spender)...)
	bs = append(bs, bigWord(value)...)
	bs = append(bs, bigWord(nonce)...)
	bs = append(bs, bigWord(deadline)...)
	structHash := crypto.Keccak256(bs)

	ds := self.DomainSeparator(cc, cont)
	msg := make([]byte, 0, 66)
	msg = append(msg, 0x19, 0x01)
	msg = append(msg, ds[:]...)
	msg = append(msg, structHash...)
	return common.BytesToHash(crypto.Keccak256(msg))
}

// Permit consumes a signed approval: it verifies the 65-byte [R||S||V]
// signature over the owner's current nonce, burns that nonce and sets the
// allowance. The deadline is compared in seconds.
func (self *Ledger) Permit(cc *types.ContractContext, cont, owner, spender common.Address, value, deadline *big.Int, signature []byte) error {
	now := big.NewInt(0).SetUint64(cc.LastTimestamp() / uint64(time.Second))
	if deadline.Cmp(now) < 0 {
		return errors.New("DeltaSwap: EXPIRED")
	}
	if len(signature) != 65 {
		return errors.New("DeltaSwap: INVALID_SIGNATURE")
	}

	nonce := self.Nonce(cc, owner)
	digest := self.PermitDigest(cc, cont, owner, spender, value, nonce, deadline)

	sig := make([]byte, 65)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	pubkey, err := crypto.SigToPub(digest[:], sig)
	if err != nil {
		return errors.New("DeltaSwap: INVALID_SIGNATURE")
	}
	signer := crypto.PubkeyToAddress(*pubkey)
	if signer == (common.Address{}) || signer != owner {
		return errors.New("DeltaSwap: INVALID_SIGNATURE")
	}

	self.addNonce(cc, owner)
	return self.approve(cc, owner, spender, value)
}
