package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/patch"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/pointers"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
)

// DynamoDB is the implementation of the store Driver for AWS DynamoDB
type DynamoDB struct {
	config aws.Config
}

// NewDynamoDB returns a new DynamoDB
func NewDynamoDB(storeConfig DynamoDBConfiguration) (*DynamoDB, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(storeConfig.AWSRegion),
	}
	if storeConfig.AccessID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(storeConfig.AccessID, storeConfig.AccessKey, "")))
	}

	config, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, err
	}
	logger.Default().Debugln("DynamoDB store enabled")
	s := DynamoDB{config}
	return &s, nil
}

// Put writes item unconditionally, overwriting any record with the same id
func (s DynamoDB) Put(ctx context.Context, table string, item record.Record) error {
	client := dynamodb.NewFromConfig(s.config)

	av, err := attributevalue.MarshalMap(map[string]interface{}(item))
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: pointers.StringPtr(table),
		Item:      av,
	})
	return err
}

// Scan returns the records of the table, within the given bounds
func (s DynamoDB) Scan(ctx context.Context, table string, opts ScanOptions) ([]record.Record, error) {
	client := dynamodb.NewFromConfig(s.config)

	input := &dynamodb.ScanInput{
		TableName: pointers.StringPtr(table),
	}
	if opts.Limit > 0 {
		input.Limit = pointers.Int32Ptr(opts.Limit)
	}
	resp, err := client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}

	items := make([]record.Record, 0, len(resp.Items))
	for _, av := range resp.Items {
		var item record.Record
		if err := attributevalue.UnmarshalMap(av, &item); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		items = append(items, item)
	}
	if opts.NewestFirst {
		sortNewestFirst(items)
	}
	return items, nil
}

// Update applies the compiled mutation as a field-scoped UpdateItem and
// returns the full post-update record. A condition on the id attribute
// rejects updates to records that do not exist.
func (s DynamoDB) Update(ctx context.Context, table string, m patch.Mutation) (record.Record, error) {
	client := dynamodb.NewFromConfig(s.config)

	var update expression.UpdateBuilder
	for _, a := range m.Assignments {
		update = update.Set(expression.Name(a.Field), expression.Value(a.Value))
	}
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(record.FieldID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build update expression: %w", err)
	}

	returnValues := types.ReturnValueNone
	if m.ReturnUpdated {
		returnValues = types.ReturnValueAllNew
	}
	resp, err := client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 pointers.StringPtr(table),
		Key:                       keyOf(m.ID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              returnValues,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var item record.Record
	if err := attributevalue.UnmarshalMap(resp.Attributes, &item); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return item, nil
}

// Delete removes the record with the given id. Deleting an absent id
// succeeds.
func (s DynamoDB) Delete(ctx context.Context, table string, id string) error {
	client := dynamodb.NewFromConfig(s.config)

	_, err := client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: pointers.StringPtr(table),
		Key:       keyOf(id),
	})
	return err
}

func keyOf(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		record.FieldID: &types.AttributeValueMemberS{Value: id},
	}
}

// sortNewestFirst orders items by createdAt descending. DynamoDB scans have
// no traversal order, so the page is sorted after the fact.
func sortNewestFirst(items []record.Record) {
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i][record.FieldCreatedAt].(string)
		b, _ := items[j][record.FieldCreatedAt].(string)
		return a > b
	})
}
