package events

import (
	"net/http"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
)

const defaultLimit = 50

// EventsHandler serves the journaled policy signals of an account.
type EventsHandler struct {
	Store storage.EventStore
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(store storage.EventStore) *EventsHandler {
	return &EventsHandler{Store: store}
}

// ListEvents returns the newest signals first.
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request, account string, params api.ListEventsParams) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	limit := int32(defaultLimit)
	if params.Limit != nil && *params.Limit > 0 {
		limit = int32(*params.Limit)
	}

	domainEvents, err := h.Store.ListEventsByAccount(r.Context(), address.Hex(), limit)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	apiEvents := make([]*api.Event, len(domainEvents))
	for i := range domainEvents {
		apiEvents[i] = mapping.ToApiEvent(&domainEvents[i])
	}

	reply.JSON(w, http.StatusOK, apiEvents)
}
