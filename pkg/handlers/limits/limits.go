package limits

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
)

// LimitsHandler serves the daily limit of an account.
type LimitsHandler struct {
	Engine policy.API
	Clock  clock.Clock
}

// NewLimitsHandler creates a new LimitsHandler.
func NewLimitsHandler(engine policy.API, clk clock.Clock) *LimitsHandler {
	return &LimitsHandler{Engine: engine, Clock: clk}
}

// GetLimit reports the limit in force and any scheduled change.
func (h *LimitsHandler) GetLimit(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	ctx := r.Context()
	current, err := h.Engine.CurrentLimit(ctx, address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	disabled, err := h.Engine.IsLimitDisabled(ctx, address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	pendingLimit, changeAfter, err := h.Engine.PendingLimit(ctx, address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiLimitState(current, disabled, pendingLimit, changeAfter, h.Clock.Now()))
}

// GetDailySpending reports what was spent in the current period and what is left.
func (h *LimitsHandler) GetDailySpending(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	ctx := r.Context()
	spent, periodEnd, err := h.Engine.DailySpent(ctx, address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	unspent, _, err := h.Engine.DailyUnspent(ctx, address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, &api.DailySpending{
		Spent:     spent.Dec(),
		Unspent:   unspent.Dec(),
		PeriodEnd: periodEnd,
	})
}

// ChangeLimit requests a new daily limit. Increases wait out the security period.
func (h *LimitsHandler) ChangeLimit(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	var newLimit api.NewLimit
	if !reply.Decode(w, r, &newLimit) {
		return
	}
	limit, err := mapping.ParseAmount("limit", newLimit.Limit)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	change, err := h.Engine.ChangeLimit(r.Context(), address, limit)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiLimitChange(change))
}

func (h *LimitsHandler) DisableLimit(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	change, err := h.Engine.DisableLimit(r.Context(), address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiLimitChange(change))
}
