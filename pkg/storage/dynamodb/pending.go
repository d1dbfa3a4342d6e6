package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// PendingDueIndex is the sparse GSI over queued transfers ordered by execute_after.
	PendingDueIndex = "due-index"

	pendingPartition = "PENDING"
	counterID        = "counter"
)

// pendingItem is a row of the pending table, keyed by account and id. The
// per-account creation counter lives in the same partition under id "counter".
type pendingItem struct {
	Account      string `dynamodbav:"account"`
	ID           string `dynamodbav:"id"`
	Token        string `dynamodbav:"token"`
	Target       string `dynamodbav:"target"`
	Amount       string `dynamodbav:"amount"`
	Data         []byte `dynamodbav:"data,omitempty"`
	CreationRef  uint64 `dynamodbav:"creation_ref"`
	ExecuteAfter int64  `dynamodbav:"execute_after"`
	DuePartition string `dynamodbav:"gsi1pk"`
}

func toPendingItem(t *pending.Transfer) pendingItem {
	return pendingItem{
		Account:      t.Account.Hex(),
		ID:           t.ID.Hex(),
		Token:        t.Token.Hex(),
		Target:       t.Target.Hex(),
		Amount:       decString(t.Amount),
		Data:         t.Data,
		CreationRef:  t.CreationRef,
		ExecuteAfter: t.ExecuteAfter.UnixNano(),
		DuePartition: pendingPartition,
	}
}

func (it pendingItem) transfer() (*pending.Transfer, error) {
	amount, err := parseDec(it.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount of %s: %w", it.ID, err)
	}
	return &pending.Transfer{
		ID:           common.HexToHash(it.ID),
		Account:      common.HexToAddress(it.Account),
		Token:        common.HexToAddress(it.Token),
		Target:       common.HexToAddress(it.Target),
		Amount:       amount,
		Data:         it.Data,
		CreationRef:  it.CreationRef,
		ExecuteAfter: time.Unix(0, it.ExecuteAfter).UTC(),
	}, nil
}

func pendingKey(account common.Address, id string) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account": account.Hex(), "id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pending transfer key: %w", err)
	}
	return key, nil
}

func unmarshalTransfers(items []map[string]types.AttributeValue) ([]pending.Transfer, error) {
	var rows []pendingItem
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending transfers: %w", err)
	}
	out := make([]pending.Transfer, 0, len(rows))
	for _, row := range rows {
		t, err := row.transfer()
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

// GetPendingTransfer retrieves a queued transfer.
func (s *Store) GetPendingTransfer(ctx context.Context, account common.Address, id common.Hash) (*pending.Transfer, error) {
	key, err := pendingKey(account, id.Hex())
	if err != nil {
		return nil, err
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.PendingTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transfer from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("pending transfer %s: %w", id.Hex(), storage.ErrNotFound)
	}

	var item pendingItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending transfer: %w", err)
	}
	return item.transfer()
}

// InsertPendingTransfer enqueues a transfer.
func (s *Store) InsertPendingTransfer(ctx context.Context, transfer *pending.Transfer) error {
	item, err := attributevalue.MarshalMap(toPendingItem(transfer))
	if err != nil {
		return fmt.Errorf("failed to marshal pending transfer: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.PendingTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("pending transfer %s: %w", transfer.ID.Hex(), storage.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert pending transfer in DynamoDB: %w", err)
	}
	return nil
}

// DeletePendingTransfer removes a queued transfer.
func (s *Store) DeletePendingTransfer(ctx context.Context, account common.Address, id common.Hash) error {
	key, err := pendingKey(account, id.Hex())
	if err != nil {
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.PendingTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("pending transfer %s: %w", id.Hex(), storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete pending transfer from DynamoDB: %w", err)
	}
	return nil
}

// ListPendingTransfers returns the account's queue in creation order.
func (s *Store) ListPendingTransfers(ctx context.Context, account common.Address) ([]pending.Transfer, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.PendingTableName),
		KeyConditionExpression: aws.String("account = :account AND begins_with(id, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account": &types.AttributeValueMemberS{Value: account.Hex()},
			":prefix":  &types.AttributeValueMemberS{Value: "0x"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pending transfers: %w", err)
	}
	transfers, err := unmarshalTransfers(items)
	if err != nil {
		return nil, err
	}

	sort.Slice(transfers, func(i, j int) bool { return transfers[i].CreationRef < transfers[j].CreationRef })
	return transfers, nil
}

// NextCreationRef atomically increments the account's creation counter.
func (s *Store) NextCreationRef(ctx context.Context, account common.Address) (uint64, error) {
	key, err := pendingKey(account, counterID)
	if err != nil {
		return 0, err
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.PendingTableName),
		Key:              key,
		UpdateExpression: aws.String("ADD creation_ref :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment creation ref in DynamoDB: %w", err)
	}

	n, ok := result.Attributes["creation_ref"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("creation ref of %s missing from update result", account.Hex())
	}
	ref, err := strconv.ParseUint(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse creation ref: %w", err)
	}
	return ref, nil
}

// ScanPendingTransfers returns transfers across all accounts that became
// executable at or before dueBy, oldest first.
func (s *Store) ScanPendingTransfers(ctx context.Context, dueBy time.Time) ([]pending.Transfer, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.PendingTableName),
		IndexName:              aws.String(PendingDueIndex),
		KeyConditionExpression: aws.String("gsi1pk = :pk AND execute_after <= :due"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  &types.AttributeValueMemberS{Value: pendingPartition},
			":due": &types.AttributeValueMemberN{Value: strconv.FormatInt(dueBy.UnixNano(), 10)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query due pending transfers: %w", err)
	}
	transfers, err := unmarshalTransfers(items)
	if err != nil {
		return nil, err
	}
	return transfers, nil
}
