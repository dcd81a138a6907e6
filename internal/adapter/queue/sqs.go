// Package queue forwards domain events to AWS SQS for downstream consumers.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/simaogato/invoicedesk-backend/internal/domain"
)

// EventTypeDepositCreated is the EventType attribute of deposit messages
const EventTypeDepositCreated = "deposit.created"

// SQSAPI is the subset of the SQS client the publisher uses
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher implements domain.EventPublisher on an SQS queue
type SQSPublisher struct {
	client   SQSAPI
	queueURL string
}

// NewSQSPublisher creates a publisher sending to queueURL through client
func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// NewSQSPublisherFromConfig loads the default AWS configuration (environment,
// shared config files, instance role) for region and builds a publisher.
func NewSQSPublisherFromConfig(ctx context.Context, region, queueURL string) (*SQSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSQSPublisher(sqs.NewFromConfig(cfg), queueURL), nil
}

// PublishDepositCreated implements domain.EventPublisher
func (p *SQSPublisher) PublishDepositCreated(ctx context.Context, event domain.DepositCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal deposit event: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventType": {
				StringValue: aws.String(EventTypeDepositCreated),
				DataType:    aws.String("String"),
			},
			"InvoiceID": {
				StringValue: aws.String(event.InvoiceID.String()),
				DataType:    aws.String("String"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}
	return nil
}
