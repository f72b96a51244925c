package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"folio/internal/domain"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeSqs struct {
	sqsiface.SQSAPI

	sent     []*sqs.SendMessageInput
	messages []*sqs.Message
	deleted  []string
}

func (f *fakeSqs) SendMessageWithContext(_ aws.Context, in *sqs.SendMessageInput, _ ...request.Option) (*sqs.SendMessageOutput, error) {
	f.sent = append(f.sent, in)
	return &sqs.SendMessageOutput{MessageId: aws.String("m1")}, nil
}

func (f *fakeSqs) ReceiveMessageWithContext(_ aws.Context, in *sqs.ReceiveMessageInput, _ ...request.Option) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{Messages: f.messages}, nil
}

func (f *fakeSqs) DeleteMessageWithContext(_ aws.Context, in *sqs.DeleteMessageInput, _ ...request.Option) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.StringValue(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func message(t *testing.T, receipt string, event domain.ActivityEvent) *sqs.Message {
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return &sqs.Message{
		MessageId:     aws.String(receipt),
		ReceiptHandle: aws.String(receipt),
		Body:          aws.String(string(body)),
	}
}

func TestSqsPublisher_Publish(t *testing.T) {
	fake := &fakeSqs{}
	publisher := NewSqsPublisher(fake, "queue-url")

	amount := json.Number("12.50")
	event := domain.ActivityEvent{
		PortfolioID: uuid.New(),
		ActivityID:  uuid.New(),
		After: &domain.StoredActivity{
			Type:   domain.ActivityType_Deposit,
			Date:   "2020-01-01",
			Amount: &amount,
		},
	}
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, fake.sent, 1)
	require.Equal(t, "queue-url", aws.StringValue(fake.sent[0].QueueUrl))

	var decoded domain.ActivityEvent
	require.NoError(t, json.Unmarshal([]byte(aws.StringValue(fake.sent[0].MessageBody)), &decoded))
	require.Equal(t, event.PortfolioID, decoded.PortfolioID)
	require.Equal(t, "12.50", decoded.After.Amount.String())
	require.Nil(t, decoded.Before)
}

func TestConsumer_Poll(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	handler := NewMockHandler(ctrl)

	ok := domain.ActivityEvent{PortfolioID: uuid.New(), ActivityID: uuid.New()}
	failing := domain.ActivityEvent{PortfolioID: uuid.New(), ActivityID: uuid.New()}
	fake := &fakeSqs{
		messages: []*sqs.Message{
			message(t, "ok", ok),
			message(t, "failing", failing),
			{MessageId: aws.String("garbage"), ReceiptHandle: aws.String("garbage"), Body: aws.String("{not json")},
		},
	}

	handler.EXPECT().Handle(ctx, ok).Return(nil)
	handler.EXPECT().Handle(ctx, failing).Return(errors.New("conflict"))

	consumer := Consumer{SQS: fake, QueueURL: "queue-url", Handler: handler}
	handled, err := consumer.Poll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, handled)
	// failed events stay on the queue; malformed ones are dropped
	require.Equal(t, []string{"ok", "garbage"}, fake.deleted)
}

func TestConsumer_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	consumer := Consumer{SQS: &fakeSqs{}, QueueURL: "queue-url"}
	require.ErrorIs(t, consumer.Run(ctx), context.Canceled)
}

func TestInlinePublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewMockHandler(ctrl)
	event := domain.ActivityEvent{PortfolioID: uuid.New()}
	handleErr := errors.New("conflict")

	handler.EXPECT().Handle(gomock.Any(), event).Return(handleErr)

	err := NewInlinePublisher(handler).Publish(context.Background(), event)
	require.ErrorIs(t, err, handleErr)
}
