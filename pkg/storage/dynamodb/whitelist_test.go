package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/chris/wallet-transfer-policy/pkg/storage/dynamodb/mocks"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTarget = common.HexToAddress("0x00000000000000000000000000000000000000b2")

func testEntry() *whitelist.Entry {
	return &whitelist.Entry{
		Account:        testAccount,
		Target:         testTarget,
		WhitelistAfter: time.Unix(1_700_000_002, 0).UTC(),
	}
}

func TestGetWhitelistEntry(t *testing.T) {
	entry := testEntry()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		av, err := attributevalue.MarshalMap(whitelistItem{
			Account:        entry.Account.Hex(),
			Target:         entry.Target.Hex(),
			WhitelistAfter: entry.WhitelistAfter,
		})
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: av}, nil)

		store := New(mockClient, testTables)
		got, err := store.GetWhitelistEntry(context.Background(), testAccount, testTarget)

		require.NoError(t, err)
		assert.Equal(t, entry, got)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		store := New(mockClient, testTables)
		_, err := store.GetWhitelistEntry(context.Background(), testAccount, testTarget)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestInsertWhitelistEntry(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			target, ok := in.Item["target"].(*types.AttributeValueMemberS)
			return ok && target.Value == testTarget.Hex()
		})).Return(&dynamodb.PutItemOutput{}, nil)

		store := New(mockClient, testTables)
		err := store.InsertWhitelistEntry(context.Background(), testEntry())

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := New(mockClient, testTables)
		err := store.InsertWhitelistEntry(context.Background(), testEntry())

		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, testTables)
		err := store.InsertWhitelistEntry(context.Background(), testEntry())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert whitelist entry in DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestDeleteWhitelistEntry(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(&dynamodb.DeleteItemOutput{}, nil)

		store := New(mockClient, testTables)
		err := store.DeleteWhitelistEntry(context.Background(), testAccount, testTarget)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := New(mockClient, testTables)
		err := store.DeleteWhitelistEntry(context.Background(), testAccount, testTarget)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestListWhitelistEntries(t *testing.T) {
	t.Run("Success Across Pages", func(t *testing.T) {
		first := testEntry()
		second := testEntry()
		second.Target = common.HexToAddress("0x00000000000000000000000000000000000000c3")

		marshal := func(e *whitelist.Entry) map[string]types.AttributeValue {
			av, err := attributevalue.MarshalMap(whitelistItem{Account: e.Account.Hex(), Target: e.Target.Hex(), WhitelistAfter: e.WhitelistAfter})
			require.NoError(t, err)
			return av
		}
		lastKey := map[string]types.AttributeValue{"target": &types.AttributeValueMemberS{Value: first.Target.Hex()}}

		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey == nil
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{marshal(first)}, LastEvaluatedKey: lastKey}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{marshal(second)}}, nil).Once()

		store := New(mockClient, testTables)
		entries, err := store.ListWhitelistEntries(context.Background(), testAccount)

		require.NoError(t, err)
		assert.Equal(t, []whitelist.Entry{*first, *second}, entries)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, testTables)
		_, err := store.ListWhitelistEntries(context.Background(), testAccount)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query whitelist entries")
		mockClient.AssertExpectations(t)
	})
}
