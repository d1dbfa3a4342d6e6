package pending

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Kind is the action a pending record defers.
type Kind uint8

const (
	// KindTransfer is an outbound asset transfer.
	KindTransfer Kind = 0
)

// Request is the canonical tuple a pending id is derived from.
type Request struct {
	Kind        Kind
	Token       common.Address
	Target      common.Address
	Amount      *uint256.Int
	Data        []byte
	CreationRef uint64
}

// ID derives the identifier of a pending record:
//
//	keccak256(uint8 kind ‖ address token ‖ address target ‖ uint256 amount ‖ bytes data ‖ uint256 creationRef)
//
// with the packed (non-padded) encoding for kind, addresses and data and
// 32-byte big-endian words for the integers. Callers may recompute it from
// the same tuple.
func ID(r Request) common.Hash {
	buf := make([]byte, 0, 1+20+20+32+len(r.Data)+32)
	buf = append(buf, byte(r.Kind))
	buf = append(buf, r.Token.Bytes()...)
	buf = append(buf, r.Target.Bytes()...)
	amount := new(uint256.Int)
	if r.Amount != nil {
		amount = r.Amount
	}
	word := amount.Bytes32()
	buf = append(buf, word[:]...)
	buf = append(buf, r.Data...)
	ref := uint256.NewInt(r.CreationRef).Bytes32()
	buf = append(buf, ref[:]...)
	return crypto.Keccak256Hash(buf)
}
