package alerts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// DynamoConditionStore is the ConditionStore backed by a DynamoDB table
// keyed by alert_id. Symbol lookups are filtered scans; the condition set
// is expected to stay small.
type DynamoConditionStore struct {
	client *dynamodb.Client
	table  string
	log    zerolog.Logger
}

// NewDynamoConditionStore creates a store over an existing table
func NewDynamoConditionStore(client *dynamodb.Client, table string, log zerolog.Logger) *DynamoConditionStore {
	return &DynamoConditionStore{
		client: client,
		table:  table,
		log:    log.With().Str("repository", "conditions").Str("table", table).Logger(),
	}
}

// List returns every stored condition
func (s *DynamoConditionStore) List(ctx context.Context) ([]AlertCondition, error) {
	return s.scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
}

// ListBySymbol returns the conditions matching a symbol exactly
func (s *DynamoConditionStore) ListBySymbol(ctx context.Context, symbol string) ([]AlertCondition, error) {
	return s.scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.table),
		FilterExpression: aws.String("stock_symbol = :symbol"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":symbol": &types.AttributeValueMemberS{Value: symbol},
		},
	})
}

func (s *DynamoConditionStore) scan(ctx context.Context, input *dynamodb.ScanInput) ([]AlertCondition, error) {
	conditions := make([]AlertCondition, 0)
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.table, err)
		}

		var page []AlertCondition
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal conditions: %w", err)
		}
		conditions = append(conditions, page...)

		if out.LastEvaluatedKey == nil {
			return conditions, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Put inserts or replaces a condition by alert_id
func (s *DynamoConditionStore) Put(ctx context.Context, cond AlertCondition) error {
	item, err := attributevalue.MarshalMap(cond)
	if err != nil {
		return fmt.Errorf("failed to marshal condition %s: %w", cond.AlertID, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store alert condition %s: %w", cond.AlertID, err)
	}
	return nil
}

// Delete removes a condition by alert_id
func (s *DynamoConditionStore) Delete(ctx context.Context, alertID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"alert_id": &types.AttributeValueMemberS{Value: alertID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete alert condition %s: %w", alertID, err)
	}
	return nil
}
