package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/restom-api/internal/domain"
)

// RegistrationRepo manages pending registrations awaiting OTP confirmation.
// Keyed by email: a PutItem replaces any prior record for the same address,
// so at most one live registration exists per email.
// Expired records are swept by the table's TTL on expires_at; callers must
// still check expiry themselves because TTL deletion lags.
type RegistrationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRegistrationRepo(client *dynamodb.Client, tableName string) *RegistrationRepo {
	return &RegistrationRepo{client: client, tableName: tableName}
}

// Upsert creates or replaces the pending registration for reg.Email.
// Last writer wins; any previously issued OTP for that email is invalidated.
func (r *RegistrationRepo) Upsert(ctx context.Context, reg *domain.PendingRegistration) error {
	item, err := attributevalue.MarshalMap(reg)
	if err != nil {
		return fmt.Errorf("marshal pending registration: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Get reads the pending registration with a strongly consistent read, so a
// just-upserted record is always visible to the verifying request.
func (r *RegistrationRepo) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey("email", email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("pending registration for %s: %w", email, domain.ErrNotFound)
	}
	var reg domain.PendingRegistration
	if err := attributevalue.UnmarshalMap(out.Item, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// IncrementAttempts bumps the failed-verification counter by one. ADD is
// atomic, so concurrent failures never lose an increment.
func (r *RegistrationRepo) IncrementAttempts(ctx context.Context, email string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("email", email),
		UpdateExpression: aws.String("ADD attempts :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	return err
}

func (r *RegistrationRepo) Delete(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	return err
}
