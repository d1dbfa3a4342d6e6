package accounts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/chris/wallet-transfer-policy/pkg/storage/mocks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	address = common.HexToAddress("0x00000000000000000000000000000000000000a1").Hex()
	owner   = common.HexToAddress("0x00000000000000000000000000000000000000e5").Hex()
	now     = time.Unix(1_700_000_000, 0).UTC()
)

func newHandler(store storage.AccountStore) *AccountsHandler {
	clk := clock.NewMock()
	clk.Set(now)
	return NewAccountsHandler(store, clk)
}

func TestCreateAccount(t *testing.T) {
	body, _ := json.Marshal(api.NewAccount{Address: address, Owner: owner})

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		expected := &models.Account{Address: address, Owner: owner, CreatedAt: now}
		mockStorage.On("CreateAccount", mock.Anything, expected).Return(expected, nil)

		rr := httptest.NewRecorder()
		newHandler(mockStorage).CreateAccount(rr, httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Account
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, address, got.Address)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateAccount", mock.Anything, mock.Anything).Return(nil, storage.ErrAlreadyExists)

		rr := httptest.NewRecorder()
		newHandler(mockStorage).CreateAccount(rr, httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Invalid Owner", func(t *testing.T) {
		bad, _ := json.Marshal(api.NewAccount{Address: address, Owner: "bob"})
		mockStorage := new(mocks.Storage)

		rr := httptest.NewRecorder()
		newHandler(mockStorage).CreateAccount(rr, httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(bad)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, address).Return(&models.Account{Address: address, Owner: owner}, nil)

		rr := httptest.NewRecorder()
		newHandler(mockStorage).GetAccount(rr, httptest.NewRequest(http.MethodGet, "/", nil), address)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, address).Return(nil, storage.ErrNotFound)

		rr := httptest.NewRecorder()
		newHandler(mockStorage).GetAccount(rr, httptest.NewRequest(http.MethodGet, "/", nil), address)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteAccount(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("DeleteAccount", mock.Anything, address).Return(nil)

	rr := httptest.NewRecorder()
	newHandler(mockStorage).DeleteAccount(rr, httptest.NewRequest(http.MethodDelete, "/", nil), address)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestListAccounts(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("ListAccounts", mock.Anything).Return([]models.Account{
		{Address: "second", CreatedAt: now.Add(time.Minute)},
		{Address: "first", CreatedAt: now},
	}, nil)

	rr := httptest.NewRecorder()
	newHandler(mockStorage).ListAccounts(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Address)
}
