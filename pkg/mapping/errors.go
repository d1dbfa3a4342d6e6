package mapping

import (
	"errors"
	"net/http"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/custody"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
)

// statuses is checked in order; the first match wins.
var statuses = []struct {
	err    error
	status int
}{
	{ErrInvalidInput, http.StatusBadRequest},
	{policy.ErrInvalidArgument, http.StatusBadRequest},
	{policy.ErrUnauthorized, http.StatusForbidden},
	{policy.ErrNotFound, http.StatusNotFound},
	{policy.ErrNotWhitelisted, http.StatusNotFound},
	{auth.ErrUnknownAccount, http.StatusNotFound},
	{storage.ErrNotFound, http.StatusNotFound},
	{policy.ErrAlreadyWhitelisted, http.StatusConflict},
	{policy.ErrDuplicateID, http.StatusConflict},
	{policy.ErrOutsideExecutionWindow, http.StatusConflict},
	{storage.ErrAlreadyExists, http.StatusConflict},
	{storage.ErrVersionConflict, http.StatusConflict},
	{policy.ErrAboveDailyLimit, http.StatusUnprocessableEntity},
	{policy.ErrForbiddenTarget, http.StatusUnprocessableEntity},
	{policy.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	{policy.ErrInsufficientAmountForCall, http.StatusUnprocessableEntity},
	{policy.ErrCallFailed, http.StatusUnprocessableEntity},
	{custody.ErrInsufficientAllowance, http.StatusUnprocessableEntity},
}

// StatusCode maps an error to the HTTP status reported for it.
func StatusCode(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// ToApiError builds the error body. Internal errors are not echoed.
func ToApiError(err error) (int, *api.Error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		return status, &api.Error{Error: "internal server error"}
	}
	out := &api.Error{Error: err.Error()}
	var perr *policy.Error
	if errors.As(err, &perr) {
		if perr.Requested != nil {
			v := perr.Requested.Dec()
			out.Requested = &v
		}
		if perr.Limit != nil {
			v := perr.Limit.Dec()
			out.Limit = &v
		}
		if perr.Unspent != nil {
			v := perr.Unspent.Dec()
			out.Unspent = &v
		}
		if !perr.WindowStart.IsZero() {
			start, end := perr.WindowStart.UTC(), perr.WindowEnd.UTC()
			out.WindowStart = &start
			out.WindowEnd = &end
		}
	}
	return status, out
}
