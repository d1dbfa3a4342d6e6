package accounts

import (
	"net/http"
	"sort"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
)

// AccountsHandler holds the dependencies for account directory handlers.
type AccountsHandler struct {
	Store storage.AccountStore
	Clock clock.Clock
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.AccountStore, clk clock.Clock) *AccountsHandler {
	return &AccountsHandler{Store: store, Clock: clk}
}

// CreateAccount registers an account with its owner and modules.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if !reply.Decode(w, r, &newAccount) {
		return
	}

	domainAccount, err := mapping.ToDomainNewAccount(&newAccount, h.Clock.Now().UTC())
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	created, err := h.Store.CreateAccount(r.Context(), domainAccount)
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusCreated, mapping.ToApiAccount(created))
}

// DeleteAccount removes an account from the directory.
func (h *AccountsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	if err := h.Store.DeleteAccount(r.Context(), address.Hex()); err != nil {
		reply.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccounts returns every account ordered by creation time.
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	domainAccounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	sort.Slice(domainAccounts, func(i, j int) bool {
		return domainAccounts[i].CreatedAt.Before(domainAccounts[j].CreatedAt)
	})

	apiAccounts := make([]*api.Account, len(domainAccounts))
	for i := range domainAccounts {
		apiAccounts[i] = mapping.ToApiAccount(&domainAccounts[i])
	}

	reply.JSON(w, http.StatusOK, apiAccounts)
}

func (h *AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request, account string) {
	address, err := mapping.ParseAddress("account", account)
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	domainAccount, err := h.Store.GetAccount(r.Context(), address.Hex())
	if err != nil {
		reply.Error(w, r, err)
		return
	}

	reply.JSON(w, http.StatusOK, mapping.ToApiAccount(domainAccount))
}
