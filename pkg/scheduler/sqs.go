package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
)

// MaxDelay is the longest delivery delay SQS accepts. Longer waits are covered
// by the keeper re-scheduling early deliveries.
const MaxDelay = 15 * time.Minute

// SQSAPI is the subset of the SQS client the scheduler uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the CronScheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ CronScheduler = (*SQSScheduler)(nil)

// SchedulePendingTransfer sends the transfer to an SQS queue, delayed by at
// most MaxDelay.
func (s *SQSScheduler) SchedulePendingTransfer(ctx context.Context, transfer *pending.Transfer, delay time.Duration) error {
	body, err := json.Marshal(NewMessage(transfer))
	if err != nil {
		return fmt.Errorf("failed to marshal pending transfer for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: delaySeconds(delay),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

func delaySeconds(delay time.Duration) int32 {
	switch {
	case delay <= 0:
		return 0
	case delay >= MaxDelay:
		return int32(MaxDelay / time.Second)
	}
	// Round up so the message is never delivered before the window opens.
	return int32((delay + time.Second - 1) / time.Second)
}
