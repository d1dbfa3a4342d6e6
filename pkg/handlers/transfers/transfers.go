package transfers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
	"github.com/chris/wallet-transfer-policy/pkg/scheduler"
)

// TransfersHandler holds the dependencies for transfer and pending-transfer handlers.
type TransfersHandler struct {
	Engine         policy.API
	Scheduler      scheduler.CronScheduler
	Clock          clock.Clock
	SecurityWindow time.Duration
}

// NewTransfersHandler creates a new TransfersHandler. A nil scheduler leaves
// deferred transfers to the local sweeper.
func NewTransfersHandler(engine policy.API, sched scheduler.CronScheduler, clk clock.Clock, securityWindow time.Duration) *TransfersHandler {
	return &TransfersHandler{Engine: engine, Scheduler: sched, Clock: clk, SecurityWindow: securityWindow}
}

// TransferToken moves value now when within limit or whitelisted, otherwise
// queues it and schedules its execution.
func (h *TransfersHandler) TransferToken(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	var newTransfer api.NewTransfer
	if !reply.Decode(w, r, &newTransfer) {
		return
	}
	token, err := mapping.ParseAddress("token", newTransfer.Token)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	to, err := mapping.ParseAddress("to", newTransfer.To)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	amount, err := mapping.ParseAmount("amount", newTransfer.Amount)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	data, err := mapping.ParseData("data", newTransfer.Data)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	res, err := h.Engine.TransferToken(r.Context(), address, token, to, amount, data)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	now := h.Clock.Now()
	status := http.StatusOK
	if res.Decision == policy.DecisionDeferred {
		status = http.StatusAccepted
		// The transfer is already queued; reconciliation picks it up if enqueueing fails.
		if h.Scheduler != nil && res.Pending != nil {
			if err := h.Scheduler.SchedulePendingTransfer(r.Context(), res.Pending, res.Pending.ExecuteAfter.Sub(now)); err != nil {
				slog.ErrorContext(r.Context(), "pending transfer queued but failed to schedule",
					"account", address.Hex(), "id", res.Pending.ID.Hex(), "error", err)
			}
		}
	}

	reply.JSON(w, status, mapping.ToApiTransferResult(res, now, h.SecurityWindow))
}

// ListPendingTransfers returns the queued transfers of an account, oldest first.
func (h *TransfersHandler) ListPendingTransfers(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	transfers, err := h.Engine.PendingTransfers(r.Context(), address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	now := h.Clock.Now()
	apiTransfers := make([]*api.PendingTransfer, len(transfers))
	for i := range transfers {
		apiTransfers[i] = mapping.ToApiPendingTransfer(&transfers[i], now, h.SecurityWindow)
	}

	reply.JSON(w, http.StatusOK, apiTransfers)
}

func (h *TransfersHandler) GetPendingTransfer(w http.ResponseWriter, r *http.Request, account string, id string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	transferID, err := mapping.ParseHash("id", id)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	transfer, err := h.Engine.PendingTransfer(r.Context(), address, transferID)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiPendingTransfer(transfer, h.Clock.Now(), h.SecurityWindow))
}

// CancelPendingTransfer drops a queued transfer whatever its state.
func (h *TransfersHandler) CancelPendingTransfer(w http.ResponseWriter, r *http.Request, account string, id string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	transferID, err := mapping.ParseHash("id", id)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	if err := h.Engine.CancelPendingTransfer(r.Context(), address, transferID); err != nil {
		reply.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExecutePendingTransfer delivers a queued transfer inside its window. Anyone
// may call it; the id is recomputed from the body.
func (h *TransfersHandler) ExecutePendingTransfer(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	var req api.ExecutePendingTransfer
	if !reply.Decode(w, r, &req) {
		return
	}
	token, err := mapping.ParseAddress("token", req.Token)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	to, err := mapping.ParseAddress("to", req.To)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	amount, err := mapping.ParseAmount("amount", req.Amount)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	data, err := mapping.ParseData("data", req.Data)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	executed, err := h.Engine.ExecutePendingTransfer(r.Context(), address, token, to, amount, data, req.CreationRef)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiPendingTransfer(executed, h.Clock.Now(), h.SecurityWindow))
}
