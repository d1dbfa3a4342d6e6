package ledger

import (
	"net/http"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
)

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Store storage.LedgerReader
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.LedgerReader) *LedgerHandler {
	return &LedgerHandler{Store: store}
}

// ListLedgerEntries returns the most recent ledger entries. Each entry names
// the asset it moved, and an asset parameter keeps only that asset's entries
// among the limit most recent.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	limit := int32(20)
	if params.Limit != nil && *params.Limit > 0 {
		limit = int32(*params.Limit)
	}
	asset := ""
	if params.Asset != nil {
		addr, err := mapping.ParseAddress("asset", *params.Asset)
		if err != nil {
			reply.Error(w, r, err)
			return
		}
		asset = addr.Hex()
	}

	domainEntries, err := h.Store.ListLedgerEntries(r.Context(), limit)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	apiEntries := make([]*api.LedgerEntry, 0, len(domainEntries))
	for i := range domainEntries {
		if asset != "" && domainEntries[i].Asset != asset {
			continue
		}
		apiEntries = append(apiEntries, mapping.ToApiLedgerEntry(&domainEntries[i]))
	}

	reply.JSON(w, http.StatusOK, apiEntries)
}
