package calls

import (
	"net/http"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
)

// CallsHandler serves approvals and contract calls. None of these are queued:
// over-limit calls to non-whitelisted targets fail.
type CallsHandler struct {
	Engine policy.API
}

// NewCallsHandler creates a new CallsHandler.
func NewCallsHandler(engine policy.API) *CallsHandler {
	return &CallsHandler{Engine: engine}
}

func (h *CallsHandler) ApproveToken(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	var req api.NewApproval
	if !reply.Decode(w, r, &req) {
		return
	}
	token, err := mapping.ParseAddress("token", req.Token)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	spender, err := mapping.ParseAddress("spender", req.Spender)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	amount, err := mapping.ParseAmount("amount", req.Amount)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	res, err := h.Engine.ApproveToken(r.Context(), address, token, spender, amount)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiApprovalResult(res))
}

func (h *CallsHandler) CallContract(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	var req api.NewCall
	if !reply.Decode(w, r, &req) {
		return
	}
	target, err := mapping.ParseAddress("target", req.Target)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	value, err := mapping.ParseOptionalAmount("value", req.Value)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	data, err := mapping.ParseData("data", req.Data)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	res, err := h.Engine.CallContract(r.Context(), address, target, value, data)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiCallResult(res))
}

func (h *CallsHandler) ApproveTokenAndCallContract(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	var req api.NewApproveAndCall
	if !reply.Decode(w, r, &req) {
		return
	}
	token, err := mapping.ParseAddress("token", req.Token)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	spender, err := mapping.ParseAddress("spender", req.Spender)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	target, err := mapping.ParseAddress("target", req.Target)
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

	res, err := h.Engine.ApproveTokenAndCallContract(r.Context(), address, token, spender, amount, target, data)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiCallResult(res))
}

func (h *CallsHandler) ApproveWrappedAndCallContract(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	var req api.NewApproveWrappedAndCall
	if !reply.Decode(w, r, &req) {
		return
	}
	spender, err := mapping.ParseAddress("spender", req.Spender)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	target, err := mapping.ParseAddress("target", req.Target)
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

	res, err := h.Engine.ApproveWrappedAndCallContract(r.Context(), address, spender, amount, target, data)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiCallResult(res))
}
