package portfolio

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// DynamoStore is the portfolio Store backed by a DynamoDB table keyed by
// portfolio_id.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
	log    zerolog.Logger
}

// NewDynamoStore creates a store over an existing table
func NewDynamoStore(client *dynamodb.Client, table string, log zerolog.Logger) *DynamoStore {
	return &DynamoStore{
		client: client,
		table:  table,
		log:    log.With().Str("repository", "portfolios").Str("table", table).Logger(),
	}
}

// List returns every portfolio item
func (s *DynamoStore) List(ctx context.Context) ([]Item, error) {
	return s.scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
}

// ListByUser returns the items belonging to one user
func (s *DynamoStore) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	return s.scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.table),
		FilterExpression: aws.String("user_id = :user"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		},
	})
}

// Symbols returns the distinct stock symbols across all items
func (s *DynamoStore) Symbols(ctx context.Context) ([]string, error) {
	items, err := s.scan(ctx, &dynamodb.ScanInput{
		TableName:            aws.String(s.table),
		ProjectionExpression: aws.String("portfolio_id, stock_symbol"),
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	symbols := make([]string, 0, len(items))
	for _, item := range items {
		if item.StockSymbol == "" || seen[item.StockSymbol] {
			continue
		}
		seen[item.StockSymbol] = true
		symbols = append(symbols, item.StockSymbol)
	}
	return symbols, nil
}

func (s *DynamoStore) scan(ctx context.Context, input *dynamodb.ScanInput) ([]Item, error) {
	items := make([]Item, 0)
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.table, err)
		}

		var page []Item
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal portfolio items: %w", err)
		}
		items = append(items, page...)

		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Put inserts or replaces an item by portfolio_id
func (s *DynamoStore) Put(ctx context.Context, item Item) error {
	record, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio item %s: %w", item.PortfolioID, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      record,
	})
	if err != nil {
		return fmt.Errorf("failed to store portfolio item %s: %w", item.PortfolioID, err)
	}
	return nil
}

// Update applies a partial update to the named fields of an item
func (s *DynamoStore) Update(ctx context.Context, portfolioID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	expression := "SET "
	names := make(map[string]string, len(fields))
	values := make(map[string]types.AttributeValue, len(fields))
	i := 0
	for field, value := range fields {
		placeholder := strconv.Itoa(i)
		if i > 0 {
			expression += ", "
		}
		expression += "#f" + placeholder + " = :v" + placeholder
		names["#f"+placeholder] = field

		attr, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal update value for %s: %w", field, err)
		}
		values[":v"+placeholder] = attr
		i++
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"portfolio_id": &types.AttributeValueMemberS{Value: portfolioID},
		},
		UpdateExpression:          aws.String(expression),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("failed to update portfolio item %s: %w", portfolioID, err)
	}
	return nil
}

// Delete removes an item by portfolio_id
func (s *DynamoStore) Delete(ctx context.Context, portfolioID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"portfolio_id": &types.AttributeValueMemberS{Value: portfolioID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete portfolio item %s: %w", portfolioID, err)
	}
	return nil
}
