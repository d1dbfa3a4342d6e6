package mapping

import (
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

func dec(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	out := &api.Account{
		Address:   account.Address,
		Owner:     account.Owner,
		Version:   account.Version,
		CreatedAt: account.CreatedAt,
	}
	if len(account.Modules) > 0 {
		modules := append([]string(nil), account.Modules...)
		out.Modules = &modules
	}
	return out
}

// ToDomainNewAccount converts an API NewAccount model to a domain Account
// model, normalising every address to its checksummed form.
func ToDomainNewAccount(newAccount *api.NewAccount, now time.Time) (*models.Account, error) {
	address, err := ParseAddress("address", newAccount.Address)
	if err != nil {
		return nil, err
	}
	owner, err := ParseAddress("owner", newAccount.Owner)
	if err != nil {
		return nil, err
	}
	account := &models.Account{
		Address:   address.Hex(),
		Owner:     owner.Hex(),
		CreatedAt: now,
	}
	if newAccount.Modules != nil {
		for _, m := range *newAccount.Modules {
			module, err := ParseAddress("modules", m)
			if err != nil {
				return nil, err
			}
			account.Modules = append(account.Modules, module.Hex())
		}
	}
	return account, nil
}

// ToApiPendingTransfer converts a queued transfer, resolving its status at now.
func ToApiPendingTransfer(t *pending.Transfer, now time.Time, securityWindow time.Duration) *api.PendingTransfer {
	start, end := t.Window(securityWindow)
	out := &api.PendingTransfer{
		Id:            t.ID.Hex(),
		Token:         t.Token.Hex(),
		Target:        t.Target.Hex(),
		Amount:        dec(t.Amount),
		CreationRef:   t.CreationRef,
		ExecuteAfter:  start,
		ExecuteBefore: end,
		Status:        api.PendingTransferStatus(t.State(now, securityWindow)),
	}
	if len(t.Data) > 0 {
		data := hexutil.Encode(t.Data)
		out.Data = &data
	}
	return out
}

// ToApiTransferResult converts the outcome of a transfer.
func ToApiTransferResult(res *policy.TransferResult, now time.Time, securityWindow time.Duration) *api.TransferResult {
	out := &api.TransferResult{
		Decision: api.TransferResultDecision(res.Decision),
		Unspent:  dec(res.Unspent),
	}
	if res.Pending != nil {
		out.Pending = ToApiPendingTransfer(res.Pending, now, securityWindow)
	}
	return out
}

func ToApiCallResult(res *policy.CallResult) *api.CallResult {
	out := &api.CallResult{
		Result:  hexutil.Encode(res.Result),
		Unspent: dec(res.Unspent),
	}
	if res.Consumed != nil {
		consumed := res.Consumed.Dec()
		out.Consumed = &consumed
	}
	return out
}

func ToApiApprovalResult(res *policy.ApprovalResult) *api.ApprovalResult {
	return &api.ApprovalResult{
		Allowance: dec(res.Allowance),
		Unspent:   dec(res.Unspent),
	}
}

func ToApiLimitChange(change *policy.LimitChange) *api.LimitChange {
	return &api.LimitChange{
		Limit:      dec(change.Limit),
		StartAfter: change.StartAfter,
	}
}

// ToApiLimitState reports the limit in force and, when one is scheduled, the
// pending limit with its effective time.
func ToApiLimitState(current *uint256.Int, disabled bool, pendingLimit *uint256.Int, changeAfter time.Time, now time.Time) *api.LimitState {
	out := &api.LimitState{
		Current:  dec(current),
		Disabled: disabled,
	}
	if changeAfter.After(now) {
		p := dec(pendingLimit)
		out.Pending = &p
		out.ChangeAfter = &changeAfter
	}
	return out
}

func ToApiWhitelistEntry(entry *whitelist.Entry, now time.Time) *api.WhitelistEntry {
	return &api.WhitelistEntry{
		Target:         entry.Target.Hex(),
		WhitelistAfter: entry.WhitelistAfter,
		Active:         entry.State(now) == whitelist.StateActive,
	}
}

func ToApiEvent(event *models.Event) *api.Event {
	out := &api.Event{
		EventId:   event.EventID,
		Account:   event.Account,
		Type:      event.Type,
		Timestamp: event.Timestamp,
	}
	if len(event.Attributes) > 0 {
		attrs := make(map[string]string, len(event.Attributes))
		for k, v := range event.Attributes {
			attrs[k] = v
		}
		out.Attributes = &attrs
	}
	return out
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	out := &api.LedgerEntry{
		EntryId:     &entry.EntryID,
		Reference:   &entry.Reference,
		AccountId:   &entry.AccountID,
		Asset:       &entry.Asset,
		Description: &entry.Description,
		Timestamp:   &entry.Timestamp,
	}
	if entry.Debit != "" {
		out.Debit = &entry.Debit
	}
	if entry.Credit != "" {
		out.Credit = &entry.Credit
	}
	return out
}

func ToApiTokenPrice(token common.Address, price *uint256.Int) api.TokenPrice {
	return api.TokenPrice{Token: token.Hex(), Price: dec(price)}
}
