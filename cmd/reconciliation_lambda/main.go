package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/wallet-transfer-policy/pkg/config"
	"github.com/chris/wallet-transfer-policy/pkg/keeper"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/scheduler"
	dydbstore "github.com/chris/wallet-transfer-policy/pkg/storage/dynamodb"
)

var (
	scanner    pending.Scanner
	reconciler *keeper.Keeper
)

func init() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := config.Require(map[string]string{
		"SQS_QUEUE_URL":               cfg.SQSQueueURL,
		"DYNAMODB_PENDING_TABLE_NAME": cfg.Tables.Pending,
	}); err != nil {
		log.Fatal(err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	scanner = dydbstore.New(awsdynamodb.NewFromConfig(awsCfg), cfg.Tables)
	sched := scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	// Reconciliation only enqueues, so it never executes anything itself.
	reconciler = keeper.New(nil, sched, cfg.Policy.SecurityWindow)
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation of executable pending transfers...")

	n, err := reconciler.Reconcile(ctx, scanner)
	if err != nil {
		log.Printf("ERROR: failed to scan pending transfers: %v", err)
		return err
	}

	if n == 0 {
		log.Println("No executable pending transfers found.")
		return nil
	}

	log.Printf("Re-enqueued %d pending transfers.", n)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
