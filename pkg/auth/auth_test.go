package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/storage/memory"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	account  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	owner    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	module   = common.HexToAddress("0x3000000000000000000000000000000000000003")
	stranger = common.HexToAddress("0x4000000000000000000000000000000000000004")
)

func TestDirectoryAuthorizer(t *testing.T) {
	dir := NewMemoryDirectory()
	dir.Register(account, owner, module)
	authz := DirectoryAuthorizer{Directory: dir}

	t.Run("Owner", func(t *testing.T) {
		got, err := authz.ActingOwner(WithCaller(context.Background(), owner), account)
		require.NoError(t, err)
		assert.Equal(t, owner, got)
	})

	t.Run("Module", func(t *testing.T) {
		got, err := authz.ActingOwner(WithCaller(context.Background(), module), account)
		require.NoError(t, err)
		assert.Equal(t, owner, got)
	})

	t.Run("Stranger", func(t *testing.T) {
		_, err := authz.ActingOwner(WithCaller(context.Background(), stranger), account)
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})

	t.Run("No Caller", func(t *testing.T) {
		_, err := authz.ActingOwner(context.Background(), account)
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})

	t.Run("Unknown Account", func(t *testing.T) {
		_, err := authz.ActingOwner(WithCaller(context.Background(), owner), stranger)
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})
}

func TestStoreDirectory(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateAccount(ctx, &models.Account{
		Address: account.Hex(),
		Owner:   owner.Hex(),
		Modules: []string{module.Hex()},
	})
	require.NoError(t, err)
	dir := StoreDirectory{Store: store}

	got, err := dir.OwnerOf(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	ok, err := dir.IsAuthorisedModule(ctx, account, module)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dir.IsAuthorisedModule(ctx, account, stranger)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = dir.OwnerOf(ctx, stranger)
	assert.True(t, errors.Is(err, ErrUnknownAccount))
}
