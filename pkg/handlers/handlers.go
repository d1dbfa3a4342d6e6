package handlers

import (
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/accounts"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/calls"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/events"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/ledger"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/limits"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/prices"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/transfers"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/whitelist"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*accounts.AccountsHandler
	*limits.LimitsHandler
	*whitelist.WhitelistHandler
	*transfers.TransfersHandler
	*calls.CallsHandler
	*events.EventsHandler
	*ledger.LedgerHandler
	*prices.PricesHandler
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
