package whitelist

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
)

// WhitelistHandler serves the trusted destinations of an account.
type WhitelistHandler struct {
	Engine policy.API
	Clock  clock.Clock
}

// NewWhitelistHandler creates a new WhitelistHandler.
func NewWhitelistHandler(engine policy.API, clk clock.Clock) *WhitelistHandler {
	return &WhitelistHandler{Engine: engine, Clock: clk}
}

func (h *WhitelistHandler) ListWhitelist(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	entries, err := h.Engine.Whitelist(r.Context(), address)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	now := h.Clock.Now()
	apiEntries := make([]*api.WhitelistEntry, len(entries))
	for i := range entries {
		apiEntries[i] = mapping.ToApiWhitelistEntry(&entries[i], now)
	}

	reply.JSON(w, http.StatusOK, apiEntries)
}

// AddToWhitelist whitelists target. The entry activates after the security period.
func (h *WhitelistHandler) AddToWhitelist(w http.ResponseWriter, r *http.Request, account string, target string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	to, err := mapping.ParseAddress("target", target)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	entry, err := h.Engine.AddToWhitelist(r.Context(), address, to)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusCreated, mapping.ToApiWhitelistEntry(entry, h.Clock.Now()))
}

func (h *WhitelistHandler) RemoveFromWhitelist(w http.ResponseWriter, r *http.Request, account string, target string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	to, err := mapping.ParseAddress("target", target)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	if err := h.Engine.RemoveFromWhitelist(r.Context(), address, to); err != nil {
		reply.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
