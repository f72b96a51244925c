// Package queue moves activity events between the writers and the ledger
// worker over SQS. Delivery is at-least-once.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/logging"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/phuslu/log"
)

//go:generate mockgen -source=queue.go -destination=mock_queue.go -package=queue

const pollErrorBackoff = 5 * time.Second

type Publisher interface {
	Publish(ctx context.Context, event domain.ActivityEvent) error
}

// Handler reacts to one event. A returned error leaves the message on the
// queue for redelivery.
type Handler interface {
	Handle(ctx context.Context, event domain.ActivityEvent) error
}

func NewSession(cfg config.QueueConfig) (*session.Session, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		Config: aws.Config{
			Region:                        aws.String(cfg.Region),
			CredentialsChainVerboseErrors: aws.Bool(true),
		},
		Profile: cfg.Profile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	_, err = sess.Config.Credentials.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load aws credentials: %w", err)
	}
	return sess, nil
}

type sqsPublisher struct {
	SQS      sqsiface.SQSAPI
	QueueURL string
}

func NewSqsPublisher(sqsService sqsiface.SQSAPI, queueURL string) Publisher {
	return sqsPublisher{
		SQS:      sqsService,
		QueueURL: queueURL,
	}
}

func (p sqsPublisher) Publish(ctx context.Context, event domain.ActivityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = p.SQS.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.QueueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]*sqs.MessageAttributeValue{
			"portfolioId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.PortfolioID.String()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish event for activity %s: %w", event.ActivityID, err)
	}
	return nil
}

// inlinePublisher hands each event straight to a handler in the caller's
// goroutine. Used when no queue is configured.
type inlinePublisher struct {
	Handler Handler
}

func NewInlinePublisher(handler Handler) Publisher {
	return inlinePublisher{Handler: handler}
}

func (p inlinePublisher) Publish(ctx context.Context, event domain.ActivityEvent) error {
	return p.Handler.Handle(ctx, event)
}

type Consumer struct {
	SQS         sqsiface.SQSAPI
	QueueURL    string
	WaitSeconds int64
	MaxMessages int64
	Handler     Handler
	Logger      *log.Logger
}

// Poll receives one batch of messages and handles them in order. It
// returns how many were handled successfully.
func (c Consumer) Poll(ctx context.Context) (int, error) {
	logger := logging.OrSilent(c.Logger)
	maxMessages := c.MaxMessages
	if maxMessages <= 0 {
		maxMessages = 10
	}

	out, err := c.SQS.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.QueueURL),
		MaxNumberOfMessages: aws.Int64(maxMessages),
		WaitTimeSeconds:     aws.Int64(c.WaitSeconds),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to receive messages: %w", err)
	}
	if out == nil {
		return 0, nil
	}

	handled := 0
	for _, message := range out.Messages {
		if message == nil || message.Body == nil {
			continue
		}
		messageID := aws.StringValue(message.MessageId)

		var event domain.ActivityEvent
		if err := json.Unmarshal([]byte(*message.Body), &event); err != nil {
			// undecodable messages would be redelivered forever
			logger.Error().Str("message_id", messageID).Err(err).Msg("dropping malformed event")
			c.delete(ctx, message, logger)
			continue
		}

		if err := c.Handler.Handle(ctx, event); err != nil {
			logger.Error().
				Str("message_id", messageID).
				Str("portfolio_id", event.PortfolioID.String()).
				Str("activity_id", event.ActivityID.String()).
				Err(err).
				Msg("failed to handle event, leaving for redelivery")
			continue
		}

		c.delete(ctx, message, logger)
		handled++
	}
	return handled, nil
}

func (c Consumer) delete(ctx context.Context, message *sqs.Message, logger *log.Logger) {
	_, err := c.SQS.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.QueueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		logger.Warn().Str("message_id", aws.StringValue(message.MessageId)).Err(err).Msg("failed to delete message")
	}
}

// Run polls until ctx is cancelled.
func (c Consumer) Run(ctx context.Context) error {
	logger := logging.OrSilent(c.Logger)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := c.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error().Err(err).Msg("poll failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollErrorBackoff):
			}
		}
	}
}
