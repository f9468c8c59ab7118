// Package consumer reads pipeline jobs from Kafka and hands them to the
// pipeline runner.
package consumer

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/blankbits/reup/internal/pipeline"
	"github.com/blankbits/reup/pkg/config"
	"github.com/blankbits/reup/pkg/logger"
)

// Runner runs one pipeline job.
//
//go:generate mockgen -source=job_consumer.go -destination=mock/job_consumer_mock.go -package=mock
type Runner interface {
	Run(ctx context.Context, job pipeline.Job) error
}

// MessageReader is the subset of the kafka reader the consumer drives.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// JobConsumer is the consumer for the job topic. Offsets are committed only
// after a job has run to completion, so a crashed worker replays its job.
// msgChan is owned by Start: it closes the channel when its loop exits, which
// ends Subscribe's range.
type JobConsumer struct {
	kafkaReader MessageReader
	logger      logger.Interface

	runner  Runner
	msgChan chan kafka.Message
}

// NewJobConsumer creates a new JobConsumer.
func NewJobConsumer(cfg config.JobKafkaConfig, log logger.Interface, runner Runner) *JobConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &JobConsumer{
		kafkaReader: kafkaReader,
		logger:      log,
		runner:      runner,
		msgChan:     make(chan kafka.Message),
	}
}

// Start starts the JobConsumer.
func (c *JobConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting job consumer", logger.Field{
		Key:   "action",
		Value: "job_consumer_start",
	})
	defer close(c.msgChan)

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "job_consumer_stop",
			})
			return
		default:
			msg, err := c.kafkaReader.FetchMessage(ctx)
			if err != nil {
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "fetch_message",
				})
				continue
			}

			// Subscribe may be minutes deep in a job; bail out on cancel
			// rather than holding the pending send across shutdown.
			select {
			case c.msgChan <- msg:
			case <-ctx.Done():
				c.logger.InfoContext(ctx, "context done", logger.Field{
					Key:   "action",
					Value: "job_consumer_stop",
				})
				return
			}
		}
	}
}

// Stop stops the JobConsumer.
func (c *JobConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping job consumer", logger.Field{
		Key:   "action",
		Value: "job_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe subscribes to the JobConsumer.
func (c *JobConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to job consumer", logger.Field{
		Key:   "action",
		Value: "job_consumer_subscribe",
	})

	for msg := range c.msgChan {
		if err := c.handleMessage(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_job",
			})
			continue
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (c *JobConsumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var job pipeline.Job
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		return err
	}

	return c.runner.Run(ctx, job)
}
