package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// ErrInvalidInput is returned for a request field that cannot be parsed.
var ErrInvalidInput = errors.New("invalid input")

func invalid(field, value, reason string) error {
	return fmt.Errorf("%w: %s %q %s", ErrInvalidInput, field, value, reason)
}

// ParseAddress accepts a 0x-prefixed 20-byte hex address.
func ParseAddress(field, s string) (common.Address, error) {
	hasPrefix := strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
	if !hasPrefix || !common.IsHexAddress(s) {
		return common.Address{}, invalid(field, s, "is not an address")
	}
	return common.HexToAddress(s), nil
}

// ParseAddresses parses every element of ss.
func ParseAddresses(field string, ss []string) ([]common.Address, error) {
	out := make([]common.Address, 0, len(ss))
	for _, s := range ss {
		a, err := ParseAddress(field, s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ParseAmount accepts a non-negative decimal integer that fits in 256 bits.
func ParseAmount(field, s string) (*uint256.Int, error) {
	if s == "" {
		return nil, invalid(field, s, "is empty")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, invalid(field, s, "is not a 256-bit decimal amount")
	}
	return v, nil
}

// ParseOptionalAmount treats a missing amount as zero.
func ParseOptionalAmount(field string, s *string) (*uint256.Int, error) {
	if s == nil || *s == "" {
		return new(uint256.Int), nil
	}
	return ParseAmount(field, *s)
}

// ParseData decodes optional 0x-prefixed hex call data.
func ParseData(field string, s *string) ([]byte, error) {
	if s == nil || *s == "" || *s == "0x" {
		return nil, nil
	}
	b, err := hexutil.Decode(*s)
	if err != nil {
		return nil, invalid(field, *s, "is not hex data")
	}
	return b, nil
}

// ParseHash accepts a 0x-prefixed 32-byte hex id.
func ParseHash(field, s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, invalid(field, s, "is not a 32-byte id")
	}
	return common.BytesToHash(b), nil
}
