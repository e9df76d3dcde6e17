package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/stockbook/inventory-service/internal/domain"
)

var ErrSaleNotFound = errors.New("sale not found")

// GSI keyed HASH user_id / RANGE sale_date (unix seconds), so date
// ranges are a single key-condition query per owner.
const saleDateIndexName = "user_id-sale_date-index"

type SaleRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewSaleRepository(client *dynamodb.Client, tableName string) *SaleRepository {
	return &SaleRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *SaleRepository) Insert(ctx context.Context, sale *domain.Sale) error {
	av, err := attributevalue.MarshalMap(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *SaleRepository) Get(ctx context.Context, saleID string) (*domain.Sale, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"sale_id": &types.AttributeValueMemberS{Value: saleID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrSaleNotFound
	}

	var sale domain.Sale
	if err := attributevalue.UnmarshalMap(result.Item, &sale); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sale: %w", err)
	}

	return &sale, nil
}

func (r *SaleRepository) Update(ctx context.Context, sale *domain.Sale) error {
	sale.UpdatedAt = time.Now()
	return r.Insert(ctx, sale)
}

func (r *SaleRepository) SoftDelete(ctx context.Context, saleID string) error {
	update := expression.Set(
		expression.Name("is_deleted"),
		expression.Value(true),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)
	condition := expression.AttributeExists(expression.Name("sale_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"sale_id": &types.AttributeValueMemberS{Value: saleID},
		},
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	return nil
}

// FindByDateRange returns the owner's active sales with sale_date in
// [start, end], oldest first.
func (r *SaleRepository) FindByDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Sale, error) {
	keyCond := expression.Key("user_id").Equal(expression.Value(userID)).
		And(expression.Key("sale_date").Between(
			expression.Value(start.Unix()),
			expression.Value(end.Unix()),
		))
	filter := expression.Name("is_deleted").Equal(expression.Value(false))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(saleDateIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var sales []domain.Sale
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query sales: %w", err)
		}
		var batch []domain.Sale
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sales: %w", err)
		}
		sales = append(sales, batch...)
	}

	return sales, nil
}

// FindPaginated lists the owner's active sales newest first, optionally
// filtered by a product-name substring. Offset pagination is applied to
// the full query result; result sets are small at this service's scale.
func (r *SaleRepository) FindPaginated(ctx context.Context, userID string, page, limit int, search string) ([]domain.Sale, int, error) {
	keyCond := expression.Key("user_id").Equal(expression.Value(userID))
	filter := expression.Name("is_deleted").Equal(expression.Value(false))
	if search != "" {
		filter = filter.And(expression.Contains(expression.Name("product_name"), search))
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, 0, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(saleDateIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}

	var sales []domain.Sale
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		pageOut, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query sales: %w", err)
		}
		var batch []domain.Sale
		if err := attributevalue.UnmarshalListOfMaps(pageOut.Items, &batch); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal sales: %w", err)
		}
		sales = append(sales, batch...)
	}

	total := len(sales)
	startIdx := (page - 1) * limit
	if startIdx >= total {
		return []domain.Sale{}, total, nil
	}
	endIdx := startIdx + limit
	if endIdx > total {
		endIdx = total
	}

	return sales[startIdx:endIdx], total, nil
}
