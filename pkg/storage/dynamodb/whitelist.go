package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/chris/wallet-transfer-policy/pkg/whitelist"
	"github.com/ethereum/go-ethereum/common"
)

// whitelistItem is a row of the whitelist table, keyed by account and target.
type whitelistItem struct {
	Account        string    `dynamodbav:"account"`
	Target         string    `dynamodbav:"target"`
	WhitelistAfter time.Time `dynamodbav:"whitelist_after"`
}

func (it whitelistItem) entry() whitelist.Entry {
	return whitelist.Entry{
		Account:        common.HexToAddress(it.Account),
		Target:         common.HexToAddress(it.Target),
		WhitelistAfter: it.WhitelistAfter,
	}
}

func whitelistKey(account, target common.Address) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account": account.Hex(), "target": target.Hex()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal whitelist key: %w", err)
	}
	return key, nil
}

// GetWhitelistEntry retrieves the entry for a target.
func (s *Store) GetWhitelistEntry(ctx context.Context, account, target common.Address) (*whitelist.Entry, error) {
	key, err := whitelistKey(account, target)
	if err != nil {
		return nil, err
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.WhitelistTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get whitelist entry from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("whitelist entry %s for %s: %w", target.Hex(), account.Hex(), storage.ErrNotFound)
	}

	var item whitelistItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal whitelist entry: %w", err)
	}
	entry := item.entry()
	return &entry, nil
}

// InsertWhitelistEntry stores a new entry.
func (s *Store) InsertWhitelistEntry(ctx context.Context, entry *whitelist.Entry) error {
	item, err := attributevalue.MarshalMap(whitelistItem{
		Account:        entry.Account.Hex(),
		Target:         entry.Target.Hex(),
		WhitelistAfter: entry.WhitelistAfter,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal whitelist entry: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.WhitelistTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(target)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("whitelist entry %s for %s: %w", entry.Target.Hex(), entry.Account.Hex(), storage.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert whitelist entry in DynamoDB: %w", err)
	}
	return nil
}

// DeleteWhitelistEntry removes an entry.
func (s *Store) DeleteWhitelistEntry(ctx context.Context, account, target common.Address) error {
	key, err := whitelistKey(account, target)
	if err != nil {
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.WhitelistTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(target)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("whitelist entry %s for %s: %w", target.Hex(), account.Hex(), storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete whitelist entry from DynamoDB: %w", err)
	}
	return nil
}

// ListWhitelistEntries returns every entry of an account ordered by target.
func (s *Store) ListWhitelistEntries(ctx context.Context, account common.Address) ([]whitelist.Entry, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.WhitelistTableName),
		KeyConditionExpression: aws.String("account = :account"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account": &types.AttributeValueMemberS{Value: account.Hex()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query whitelist entries: %w", err)
	}

	var rows []whitelistItem
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal whitelist entries: %w", err)
	}
	entries := make([]whitelist.Entry, 0, len(rows))
	for _, it := range rows {
		entries = append(entries, it.entry())
	}
	return entries, nil
}
