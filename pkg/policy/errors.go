package policy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	// ErrUnauthorized is returned when the caller may not act as the account's owner.
	ErrUnauthorized = auth.ErrUnauthorized

	// ErrAlreadyWhitelisted is returned when whitelisting a target twice.
	ErrAlreadyWhitelisted = whitelist.ErrAlreadyWhitelisted

	// ErrNotWhitelisted is returned when removing a target that is not whitelisted.
	ErrNotWhitelisted = whitelist.ErrNotWhitelisted

	// ErrOutsideExecutionWindow is returned when executing a pending transfer outside its window.
	ErrOutsideExecutionWindow = pending.ErrOutsideExecutionWindow

	// ErrNotFound is returned for an unknown pending transfer id.
	ErrNotFound = pending.ErrNotFound

	// ErrDuplicateID is returned when a pending transfer id is already queued.
	ErrDuplicateID = pending.ErrDuplicateID

	// ErrInsufficientBalance is returned when the account cannot cover the amount.
	ErrInsufficientBalance = custody.ErrInsufficientBalance

	// ErrCallFailed is returned when the invoked contract reverts.
	ErrCallFailed = custody.ErrCallFailed
)

// ErrInvalidArgument is returned when a required argument is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrAboveDailyLimit is returned by operations that never queue when the
// value exceeds the unspent daily limit and the counterparty is not whitelisted.
var ErrAboveDailyLimit = errors.New("above daily limit")

// ErrForbiddenTarget is returned when calling the account itself, one of its
// modules, or a priced token contract that is not whitelisted.
var ErrForbiddenTarget = errors.New("forbidden target")

// ErrInsufficientAmountForCall is returned when a call consumed more
// allowance than it was granted.
var ErrInsufficientAmountForCall = errors.New("insufficient amount for call")

// Error describes a failed policy operation with the figures needed to decide
// whether to retry with different parameters.
type Error struct {
	Op      string
	Account common.Address
	Err     error

	Requested *uint256.Int
	Limit     *uint256.Int
	Unspent   *uint256.Int

	WindowStart time.Time
	WindowEnd   time.Time
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %v", e.Op, e.Account.Hex(), e.Err)
	var details []string
	if e.Requested != nil {
		details = append(details, "requested "+e.Requested.Dec())
	}
	if e.Unspent != nil {
		details = append(details, "unspent "+e.Unspent.Dec())
	}
	if e.Limit != nil {
		details = append(details, "limit "+e.Limit.Dec())
	}
	if !e.WindowStart.IsZero() {
		details = append(details, fmt.Sprintf("window %s..%s", e.WindowStart.Format(time.RFC3339), e.WindowEnd.Format(time.RFC3339)))
	}
	if len(details) > 0 {
		b.WriteString(" (" + strings.Join(details, ", ") + ")")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, account common.Address, err error) error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		return err
	}
	e := &Error{Op: op, Account: account, Err: err}
	var werr *pending.WindowError
	if errors.As(err, &werr) {
		e.WindowStart, e.WindowEnd = werr.Start, werr.End
	}
	return e
}
