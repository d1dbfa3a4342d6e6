package transfers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
	policy_mocks "github.com/chris/wallet-transfer-policy/pkg/policy/mocks"
	scheduler_mocks "github.com/chris/wallet-transfer-policy/pkg/scheduler/mocks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	account = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	token   = common.HexToAddress("0x00000000000000000000000000000000000000d4")
	target  = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	now     = time.Unix(1_700_000_000, 0).UTC()
)

func newHandler(engine policy.API, sched *scheduler_mocks.CronScheduler) *TransfersHandler {
	clk := clock.NewMock()
	clk.Set(now)
	h := NewTransfersHandler(engine, nil, clk, time.Hour)
	if sched != nil {
		h.Scheduler = sched
	}
	return h
}

func transferBody(amount string) *bytes.Reader {
	body, _ := json.Marshal(api.NewTransfer{Token: token.Hex(), To: target.Hex(), Amount: amount})
	return bytes.NewReader(body)
}

func TestTransferToken(t *testing.T) {
	t.Run("Direct", func(t *testing.T) {
		engine := new(policy_mocks.API)
		sched := new(scheduler_mocks.CronScheduler)
		engine.On("TransferToken", mock.Anything, account, token, target, uint256.NewInt(100), []byte(nil)).
			Return(&policy.TransferResult{Decision: policy.DecisionDirect, Unspent: uint256.NewInt(900)}, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/transfers", transferBody("100"))
		newHandler(engine, sched).TransferToken(rr, req, account.Hex())

		assert.Equal(t, http.StatusOK, rr.Code)
		var res api.TransferResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, api.Direct, res.Decision)
		assert.Equal(t, "900", res.Unspent)
		assert.Nil(t, res.Pending)
		sched.AssertNotCalled(t, "SchedulePendingTransfer", mock.Anything, mock.Anything, mock.Anything)
		engine.AssertExpectations(t)
	})

	t.Run("Deferred Is Scheduled", func(t *testing.T) {
		queued := &pending.Transfer{
			ID:           common.Hash{31: 1},
			Account:      account,
			Token:        token,
			Target:       target,
			Amount:       uint256.NewInt(5_000),
			CreationRef:  1,
			ExecuteAfter: now.Add(24 * time.Hour),
		}
		engine := new(policy_mocks.API)
		sched := new(scheduler_mocks.CronScheduler)
		engine.On("TransferToken", mock.Anything, account, token, target, uint256.NewInt(5_000), []byte(nil)).
			Return(&policy.TransferResult{Decision: policy.DecisionDeferred, Pending: queued, Unspent: uint256.NewInt(1_000)}, nil)
		sched.On("SchedulePendingTransfer", mock.Anything, queued, 24*time.Hour).Return(nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/transfers", transferBody("5000"))
		newHandler(engine, sched).TransferToken(rr, req, account.Hex())

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var res api.TransferResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		require.NotNil(t, res.Pending)
		assert.Equal(t, queued.ID.Hex(), res.Pending.Id)
		assert.Equal(t, api.WAITING, res.Pending.Status)
		sched.AssertExpectations(t)
	})

	t.Run("Deferred Survives Schedule Error", func(t *testing.T) {
		queued := &pending.Transfer{ID: common.Hash{31: 2}, Account: account, Amount: uint256.NewInt(1), ExecuteAfter: now.Add(time.Hour)}
		engine := new(policy_mocks.API)
		sched := new(scheduler_mocks.CronScheduler)
		engine.On("TransferToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&policy.TransferResult{Decision: policy.DecisionDeferred, Pending: queued, Unspent: new(uint256.Int)}, nil)
		sched.On("SchedulePendingTransfer", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("queue unavailable"))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/transfers", transferBody("1"))
		newHandler(engine, sched).TransferToken(rr, req, account.Hex())

		assert.Equal(t, http.StatusAccepted, rr.Code)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		engine := new(policy_mocks.API)
		engine.On("TransferToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &policy.Error{Op: "TransferToken", Account: account, Err: policy.ErrUnauthorized})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/transfers", transferBody("1"))
		newHandler(engine, nil).TransferToken(rr, req, account.Hex())

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		engine := new(policy_mocks.API)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/transfers", transferBody("-5"))
		newHandler(engine, nil).TransferToken(rr, req, account.Hex())

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		engine.AssertNotCalled(t, "TransferToken")
	})

	t.Run("Invalid Body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/transfers", bytes.NewReader([]byte("{")))
		newHandler(new(policy_mocks.API), nil).TransferToken(rr, req, account.Hex())

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestExecutePendingTransfer(t *testing.T) {
	body, _ := json.Marshal(api.ExecutePendingTransfer{Token: token.Hex(), To: target.Hex(), Amount: "5000", CreationRef: 1})

	t.Run("Success", func(t *testing.T) {
		executed := &pending.Transfer{ID: common.Hash{31: 1}, Account: account, Token: token, Target: target, Amount: uint256.NewInt(5_000), CreationRef: 1, ExecuteAfter: now}
		engine := new(policy_mocks.API)
		engine.On("ExecutePendingTransfer", mock.Anything, account, token, target, uint256.NewInt(5_000), []byte(nil), uint64(1)).Return(executed, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/pending-transfers/execute", bytes.NewReader(body))
		newHandler(engine, nil).ExecutePendingTransfer(rr, req, account.Hex())

		assert.Equal(t, http.StatusOK, rr.Code)
		engine.AssertExpectations(t)
	})

	t.Run("Outside Window", func(t *testing.T) {
		engine := new(policy_mocks.API)
		engine.On("ExecutePendingTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &policy.Error{Op: "ExecutePendingTransfer", Account: account, Err: &pending.WindowError{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Now: now}, WindowStart: now.Add(time.Hour), WindowEnd: now.Add(2 * time.Hour)})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/pending-transfers/execute", bytes.NewReader(body))
		newHandler(engine, nil).ExecutePendingTransfer(rr, req, account.Hex())

		assert.Equal(t, http.StatusConflict, rr.Code)
		var apiErr api.Error
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
		require.NotNil(t, apiErr.WindowStart)
		assert.Equal(t, now.Add(time.Hour), *apiErr.WindowStart)
	})

	t.Run("Unknown Id", func(t *testing.T) {
		engine := new(policy_mocks.API)
		engine.On("ExecutePendingTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &policy.Error{Op: "ExecutePendingTransfer", Account: account, Err: policy.ErrNotFound})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounts/x/pending-transfers/execute", bytes.NewReader(body))
		newHandler(engine, nil).ExecutePendingTransfer(rr, req, account.Hex())

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCancelPendingTransfer(t *testing.T) {
	id := common.Hash{31: 1}

	t.Run("Success", func(t *testing.T) {
		engine := new(policy_mocks.API)
		engine.On("CancelPendingTransfer", mock.Anything, account, id).Return(nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		newHandler(engine, nil).CancelPendingTransfer(rr, req, account.Hex(), id.Hex())

		assert.Equal(t, http.StatusNoContent, rr.Code)
		engine.AssertExpectations(t)
	})

	t.Run("Invalid Id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		newHandler(new(policy_mocks.API), nil).CancelPendingTransfer(rr, req, account.Hex(), "0x01")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListPendingTransfers(t *testing.T) {
	engine := new(policy_mocks.API)
	engine.On("PendingTransfers", mock.Anything, account).Return([]pending.Transfer{
		{ID: common.Hash{31: 1}, Account: account, Amount: uint256.NewInt(1), CreationRef: 1, ExecuteAfter: now.Add(-2 * time.Hour)},
		{ID: common.Hash{31: 2}, Account: account, Amount: uint256.NewInt(2), CreationRef: 2, ExecuteAfter: now.Add(-time.Minute)},
	}, nil)

	rr := httptest.NewRecorder()
	newHandler(engine, nil).ListPendingTransfers(rr, httptest.NewRequest(http.MethodGet, "/", nil), account.Hex())

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.PendingTransfer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, api.EXPIRED, got[0].Status)
	assert.Equal(t, api.EXECUTABLE, got[1].Status)
}
