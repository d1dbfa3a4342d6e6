package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/wallet-transfer-policy/pkg/config"
	"github.com/chris/wallet-transfer-policy/pkg/keeper"
	"github.com/chris/wallet-transfer-policy/pkg/scheduler"
)

var settler *keeper.Keeper

func init() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := config.Require(map[string]string{
		"APP_BASE_URL":  cfg.AppBaseURL,
		"SQS_QUEUE_URL": cfg.SQSQueueURL,
	}); err != nil {
		log.Fatal(err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	// Messages that arrive early are put back on the queue until their window opens.
	sched := scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	settler = keeper.New(keeper.NewHTTPExecutor(cfg.AppBaseURL), sched, cfg.Policy.SecurityWindow)
}

// HandleRequest processes SQS messages and executes the pending transfers they carry.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var msg scheduler.Message
		if err := json.Unmarshal([]byte(message.Body), &msg); err != nil {
			log.Printf("ERROR: failed to unmarshal pending transfer from SQS message %s: %v", message.MessageId, err)
			return err
		}
		transfer, err := msg.Transfer()
		if err != nil {
			// A malformed message will never succeed; retrying it only delays the batch.
			log.Printf("ERROR: dropping malformed message %s: %v", message.MessageId, err)
			continue
		}

		log.Printf("Attempting to execute pending transfer %s", msg.ID)

		outcome, err := settler.Settle(ctx, transfer)
		if err != nil {
			log.Printf("ERROR: failed to execute pending transfer %s: %v", msg.ID, err)
			// Returning an error lets SQS redeliver the message.
			return err
		}

		log.Printf("Pending transfer %s: %s", msg.ID, outcome)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
