package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wallet-transfer-policy/pkg/limits"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// limitItem is a row of the limits table. Amounts are decimal strings.
type limitItem struct {
	Account      string    `dynamodbav:"account"`
	CurrentLimit string    `dynamodbav:"current_limit"`
	PendingLimit string    `dynamodbav:"pending_limit"`
	ChangeAfter  time.Time `dynamodbav:"change_after"`
	Spent        string    `dynamodbav:"spent"`
	PeriodEnd    time.Time `dynamodbav:"period_end"`
	Version      int64     `dynamodbav:"version"`
}

func toLimitItem(st *limits.State, version int64) limitItem {
	return limitItem{
		Account:      st.Account.Hex(),
		CurrentLimit: decString(st.Limit.Current),
		PendingLimit: decString(st.Limit.Pending),
		ChangeAfter:  st.Limit.ChangeAfter,
		Spent:        decString(st.Spent.Amount),
		PeriodEnd:    st.Spent.PeriodEnd,
		Version:      version,
	}
}

func (it limitItem) state() (*limits.State, error) {
	current, err := parseDec(it.CurrentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current limit: %w", err)
	}
	pendingLimit, err := parseDec(it.PendingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pending limit: %w", err)
	}
	spent, err := parseDec(it.Spent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse daily spent: %w", err)
	}
	return &limits.State{
		Account: common.HexToAddress(it.Account),
		Limit:   limits.Limit{Current: current, Pending: pendingLimit, ChangeAfter: it.ChangeAfter},
		Spent:   limits.DailySpent{Amount: spent, PeriodEnd: it.PeriodEnd},
		Version: it.Version,
	}, nil
}

// GetLimitState retrieves the limit record of an account.
func (s *Store) GetLimitState(ctx context.Context, account common.Address) (*limits.State, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account": account.Hex()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal limit key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.LimitsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get limit state from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("limit state for %s: %w", account.Hex(), storage.ErrNotFound)
	}

	var item limitItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal limit state: %w", err)
	}
	return item.state()
}

// SaveLimitState writes the record if nobody else wrote it since it was read.
func (s *Store) SaveLimitState(ctx context.Context, state *limits.State) error {
	item, err := attributevalue.MarshalMap(toLimitItem(state, state.Version+1))
	if err != nil {
		return fmt.Errorf("failed to marshal limit state: %w", err)
	}

	condition := "version = :version"
	if state.Version == 0 {
		condition = "attribute_not_exists(account) OR version = :version"
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.LimitsTableName),
		Item:                item,
		ConditionExpression: aws.String(condition),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(state.Version, 10)},
		},
	})
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("limit state of %s changed since version %d: %w", state.Account.Hex(), state.Version, storage.ErrVersionConflict)
		}
		return fmt.Errorf("failed to save limit state in DynamoDB: %w", err)
	}
	return nil
}

func decString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func parseDec(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	return uint256.FromDecimal(s)
}
