// Publishes one pipeline job per universe constituent to the job topic.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/segmentio/kafka-go"

	"github.com/blankbits/reup/internal/infrastructure/objectstore"
	"github.com/blankbits/reup/internal/pipeline"
	"github.com/blankbits/reup/pkg/config"
	"github.com/blankbits/reup/pkg/logger"
	"github.com/blankbits/reup/pkg/universe"
)

func main() {
	var (
		date       = flag.String("date", "", "trading date, YYYY-MM-DD")
		symbol     = flag.String("symbol", "", "single symbol; all universe constituents when empty")
		univPrefix = flag.String("universe-prefix", "universe", "object store prefix holding universe CSVs")
	)
	flag.Parse()
	if *date == "" {
		log.Fatal("-date is required")
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logr.Sync()

	symbols := []string{*symbol}
	if *symbol == "" {
		store, err := objectstore.NewFSStore(cfg.ObjectStore.RootDir)
		if err != nil {
			fatal(logr, err)
		}
		univ, err := universe.New(ctx, store, *univPrefix, logr)
		if err != nil {
			fatal(logr, err)
		}
		if symbols, err = univ.SymbolList(*date); err != nil {
			fatal(logr, err)
		}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.JobKafka.Brokers...),
		Topic:        cfg.JobKafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	messages := make([]kafka.Message, 0, len(symbols))
	for _, sym := range symbols {
		payload, err := json.Marshal(pipeline.Job{Date: *date, Symbol: sym})
		if err != nil {
			fatal(logr, err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(sym),
			Value: payload,
		})
	}

	if err := writer.WriteMessages(ctx, messages...); err != nil {
		fatal(logr, err)
	}

	logr.Info("published jobs",
		logger.Field{Key: "date", Value: *date},
		logger.Field{Key: "jobs", Value: len(messages)},
	)
}

func fatal(logr logger.Interface, err error) {
	logr.Error(err)
	logr.Sync()
	os.Exit(1)
}
