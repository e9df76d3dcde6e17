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

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewCustomerRepository(client *dynamodb.Client, tableName string) *CustomerRepository {
	return &CustomerRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	av, err := attributevalue.MarshalMap(customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer: %w", err)
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

func (r *CustomerRepository) Get(ctx context.Context, customerID string) (*domain.Customer, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"customer_id": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrCustomerNotFound
	}

	var customer domain.Customer
	if err := attributevalue.UnmarshalMap(result.Item, &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}

	return &customer, nil
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, userID, email string) (*domain.Customer, error) {
	keyCond := expression.Key("user_id").Equal(expression.Value(userID))
	filter := expression.Name("email").Equal(expression.Value(email)).
		And(expression.Name("is_deleted").Equal(expression.Value(false)))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, err
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(userIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, ErrCustomerNotFound
	}

	var customer domain.Customer
	if err := attributevalue.UnmarshalMap(result.Items[0], &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}

	return &customer, nil
}

func (r *CustomerRepository) ListActive(ctx context.Context, userID string) ([]domain.Customer, error) {
	keyCond := expression.Key("user_id").Equal(expression.Value(userID))
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
		IndexName:                 aws.String(userIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var customers []domain.Customer
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query customers: %w", err)
		}
		var batch []domain.Customer
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal customers: %w", err)
		}
		customers = append(customers, batch...)
	}

	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	customer.UpdatedAt = time.Now()
	return r.Create(ctx, customer)
}

func (r *CustomerRepository) SoftDelete(ctx context.Context, customerID string) error {
	update := expression.Set(
		expression.Name("is_deleted"),
		expression.Value(true),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)
	condition := expression.AttributeExists(expression.Name("customer_id"))

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
			"customer_id": &types.AttributeValueMemberS{Value: customerID},
		},
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}
