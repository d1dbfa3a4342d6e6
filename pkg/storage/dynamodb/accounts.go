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
	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
)

// CreateAccount registers a new account record in DynamoDB.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Item:                accountAV,
		ConditionExpression: aws.String("attribute_not_exists(account)"), // Prevent overwriting existing accounts.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		if conditionFailed(err) {
			return nil, fmt.Errorf("account %s already exists: %w", account.Address, storage.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return account, nil
}

// UpdateAccount replaces the owner and modules of an account, bumping its version.
func (s *Store) UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account": account.Address})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account key: %w", err)
	}
	modules, err := attributevalue.Marshal(account.Modules)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account modules: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Key:                 key,
		UpdateExpression:    aws.String("SET #owner = :owner, modules = :modules, version = version + :one"),
		ConditionExpression: aws.String("attribute_exists(account) AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#owner": "owner",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner":   &types.AttributeValueMemberS{Value: account.Owner},
			":modules": modules,
			":one":     &types.AttributeValueMemberN{Value: "1"},
			":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(account.Version, 10)},
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if conditionFailed(err) {
			return nil, fmt.Errorf("account %s missing or changed since version %d: %w", account.Address, account.Version, storage.ErrVersionConflict)
		}
		return nil, fmt.Errorf("failed to update account in DynamoDB: %w", err)
	}

	var updated models.Account
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated account: %w", err)
	}
	return &updated, nil
}

// DeleteAccount deletes an account record from DynamoDB.
func (s *Store) DeleteAccount(ctx context.Context, address string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"account": address})
	if err != nil {
		return fmt.Errorf("failed to marshal account key for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(account)"), // Ensure the account exists before deleting.
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("account %s: %w", address, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete account from DynamoDB: %w", err)
	}

	return nil
}

// GetAccount retrieves an account from DynamoDB by its address.
func (s *Store) GetAccount(ctx context.Context, address string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account": address})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account key: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.AccountsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("account %s: %w", address, storage.ErrNotFound)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// ListAccounts retrieves all accounts from DynamoDB.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	items, err := s.scanAll(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.AccountsTableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts table: %w", err)
	}

	var accounts []models.Account
	if err := attributevalue.UnmarshalListOfMaps(items, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}

	return accounts, nil
}
