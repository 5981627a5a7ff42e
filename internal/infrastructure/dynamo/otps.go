package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/incial/crm-api/internal/domain"
)

// OtpRepo manages password-reset codes.
// PK: email — one item per recipient. Supersession is not a delete followed
// by an insert: PutItem on the same key replaces the previous code in a
// single write, which is what keeps the at-most-one-active-code invariant
// race-free under concurrent generates (last committed write wins).
type OtpRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOtpRepo(client *dynamodb.Client, tableName string) *OtpRepo {
	return &OtpRepo{client: client, tableName: tableName}
}

// Put stores the code, atomically replacing any prior code for the email.
func (r *OtpRepo) Put(ctx context.Context, o *domain.Otp) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Get fetches the stored code for an email, expired or not.
func (r *OtpRepo) Get(ctx context.Context, email string) (*domain.Otp, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	var o domain.Otp
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteByEmail removes the stored code for an email. Idempotent.
func (r *OtpRepo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	return err
}

// MarkVerified flips the stored code to verified iff it matches, is still
// unverified, and has not expired — one conditional update, so concurrent
// verifiers cannot both consume the same code. Returns false when the
// condition fails, without distinguishing wrong from expired from used.
func (r *OtpRepo) MarkVerified(ctx context.Context, email, code string, now time.Time) (bool, error) {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("email", email),
		UpdateExpression:    aws.String("SET verified = :t"),
		ConditionExpression: aws.String("#c = :c AND verified = :f AND expires_at > :now"),
		// "code" is a DynamoDB reserved word.
		ExpressionAttributeNames: map[string]string{"#c": "code"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":   &types.AttributeValueMemberBOOL{Value: true},
			":f":   &types.AttributeValueMemberBOOL{Value: false},
			":c":   &types.AttributeValueMemberS{Value: code},
			":now": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteExpired removes every code with expires_at < before and returns how
// many were deleted. Housekeeping only — MarkVerified already filters by
// expiry, and the table TTL reaps leftovers.
func (r *OtpRepo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	deleted := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.tableName),
			FilterExpression:     aws.String("expires_at < :before"),
			ProjectionExpression: aws.String("email"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":before": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", before.Unix())},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return deleted, err
		}
		for _, item := range out.Items {
			email, ok := item["email"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			if err := r.DeleteByEmail(ctx, email.Value); err != nil {
				return deleted, err
			}
			deleted++
		}
		if out.LastEvaluatedKey == nil {
			return deleted, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
