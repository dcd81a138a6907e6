package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSQS is a mock implementation of SQSAPI for testing
type MockSQS struct {
	mock.Mock
}

func (m *MockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.SendMessageOutput), args.Error(1)
}

func TestSQSPublisher_PublishDepositCreated(t *testing.T) {
	ctx := context.Background()
	client := new(MockSQS)
	pub := NewSQSPublisher(client, "https://sqs.us-east-1.amazonaws.com/123/deposits")

	event := domain.DepositCreated{
		InvoiceID:   uuid.New(),
		DepositID:   uuid.New(),
		Amount:      decimal.RequireFromString("42.10"),
		DepositDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	client.On("SendMessage", ctx, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
		if aws.ToString(in.QueueUrl) != "https://sqs.us-east-1.amazonaws.com/123/deposits" {
			return false
		}
		var decoded domain.DepositCreated
		if err := json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &decoded); err != nil {
			return false
		}
		return decoded.DepositID == event.DepositID &&
			decoded.Amount.Equal(event.Amount) &&
			aws.ToString(in.MessageAttributes["EventType"].StringValue) == EventTypeDepositCreated &&
			aws.ToString(in.MessageAttributes["InvoiceID"].StringValue) == event.InvoiceID.String()
	})).Return(&sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil)

	require.NoError(t, pub.PublishDepositCreated(ctx, event))
	client.AssertExpectations(t)
}

func TestSQSPublisher_SendError(t *testing.T) {
	ctx := context.Background()
	client := new(MockSQS)
	pub := NewSQSPublisher(client, "q")
	throttled := errors.New("throttled")

	client.On("SendMessage", ctx, mock.Anything).Return(nil, throttled)

	err := pub.PublishDepositCreated(ctx, domain.DepositCreated{InvoiceID: uuid.New()})
	assert.ErrorIs(t, err, throttled)
	assert.ErrorContains(t, err, "failed to send message to SQS")
}
