package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/incial/crm-api/internal/domain"
)

// MeetingRepo provides typed DynamoDB operations for the meetings table.
type MeetingRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMeetingRepo(client *dynamodb.Client, tableName string) *MeetingRepo {
	return &MeetingRepo{client: client, tableName: tableName}
}

func (r *MeetingRepo) Put(ctx context.Context, m *domain.Meeting) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal meeting: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MeetingRepo) Get(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("meeting_id", meetingID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("meeting not found: %w", domain.ErrNotFound)
	}
	var m domain.Meeting
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Scan returns all meetings. The CRM meeting list is small and unfiltered.
func (r *MeetingRepo) Scan(ctx context.Context) ([]domain.Meeting, error) {
	var meetings []domain.Meeting
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Meeting
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		meetings = append(meetings, page...)
		if out.LastEvaluatedKey == nil {
			return meetings, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// Update applies a partial update. The condition fails with ErrNotFound when
// the meeting does not exist, so a patch never creates a phantom row.
func (r *MeetingRepo) Update(ctx context.Context, meetingID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("meeting_id", meetingID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(meeting_id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("meeting not found: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

// HardDelete removes the meeting row. ErrNotFound when it never existed.
func (r *MeetingRepo) HardDelete(ctx context.Context, meetingID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("meeting_id", meetingID),
		ConditionExpression: aws.String("attribute_exists(meeting_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("meeting not found: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}
