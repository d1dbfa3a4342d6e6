package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wallet-transfer-policy/pkg/models"
)

// eventItem wraps an event with a sort key that orders the journal by time.
type eventItem struct {
	models.Event
	SortKey string `dynamodbav:"sk"`
}

func eventSortKey(e *models.Event) string {
	return fmt.Sprintf("%020d#%s", e.Timestamp.UnixNano(), e.EventID)
}

// AppendEvent journals a policy signal.
func (s *Store) AppendEvent(ctx context.Context, event *models.Event) error {
	item, err := attributevalue.MarshalMap(eventItem{Event: *event, SortKey: eventSortKey(event)})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.EventsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to append event in DynamoDB: %w", err)
	}
	return nil
}

// ListEventsByAccount retrieves the most recent signals of an account, newest first.
func (s *Store) ListEventsByAccount(ctx context.Context, account string, limit int32) ([]models.Event, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.EventsTableName),
		KeyConditionExpression: aws.String("account = :account"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account": &types.AttributeValueMemberS{Value: account},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	var items []eventItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}
	events := make([]models.Event, 0, len(items))
	for _, it := range items {
		events = append(events, it.Event)
	}
	return events, nil
}
