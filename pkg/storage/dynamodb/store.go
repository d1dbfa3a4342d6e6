package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wallet-transfer-policy/pkg/limits"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Tables names the DynamoDB tables backing the store.
type Tables struct {
	Limits    string
	Whitelist string
	Pending   string
	Accounts  string
	Events    string
}

// Store implements the policy state stores, the account directory and the
// signal journal using AWS DynamoDB.
type Store struct {
	Client DynamoDBAPI

	LimitsTableName    string
	WhitelistTableName string
	PendingTableName   string
	AccountsTableName  string
	EventsTableName    string
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:             client,
		LimitsTableName:    tables.Limits,
		WhitelistTableName: tables.Whitelist,
		PendingTableName:   tables.Pending,
		AccountsTableName:  tables.Accounts,
		EventsTableName:    tables.Events,
	}
}

// Make sure we conform to the interfaces
var (
	_ storage.Storage = (*Store)(nil)
	_ limits.Store    = (*Store)(nil)
	_ whitelist.Store = (*Store)(nil)
	_ pending.Store   = (*Store)(nil)
	_ pending.Scanner = (*Store)(nil)
)

// queryAll follows LastEvaluatedKey until the query is exhausted.
func (s *Store) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		out, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// scanAll follows LastEvaluatedKey until the scan is exhausted.
func (s *Store) scanAll(ctx context.Context, input *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		out, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func conditionFailed(err error) bool {
	var condCheckFailed *types.ConditionalCheckFailedException
	return errors.As(err, &condCheckFailed)
}
