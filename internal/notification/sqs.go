// Package notification publishes customer-facing email messages onto the
// outbound queue. Delivery is owned by a downstream consumer; this package
// only enqueues.
package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"

	"github.com/spec-kit/bank-crm-service/internal/config"
)

// EmailQueue enqueues a notification for a recipient.
type EmailQueue interface {
	SendEmail(ctx context.Context, recipient, body string) error
}

// SQSEmailQueue implements EmailQueue against an SQS FIFO queue.
type SQSEmailQueue struct {
	client         *sqs.Client
	queueURL       string
	messageGroupID string
}

// NewSQSEmailQueue builds the client from service configuration.
func NewSQSEmailQueue(ctx context.Context, cfg config.SQSConfig) (*SQSEmailQueue, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &SQSEmailQueue{
		client:         client,
		queueURL:       cfg.QueueURL,
		messageGroupID: cfg.MessageGroupID,
	}, nil
}

// SendEmail enqueues one message. Group id and a random deduplication id are
// required by FIFO queues without content-based deduplication.
func (q *SQSEmailQueue) SendEmail(ctx context.Context, recipient, body string) error {
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:               aws.String(q.queueURL),
		MessageBody:            aws.String(body),
		MessageGroupId:         aws.String(q.messageGroupID),
		MessageDeduplicationId: aws.String(uuid.NewString()),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"clientEmail": {
				DataType:    aws.String("String"),
				StringValue: aws.String(recipient),
			},
		},
	})
	return err
}
