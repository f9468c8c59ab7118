package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/blankbits/reup/internal/consumer"
	"github.com/blankbits/reup/internal/infrastructure/objectstore"
	"github.com/blankbits/reup/internal/infrastructure/questdb/second"
	"github.com/blankbits/reup/internal/infrastructure/tickdata"
	"github.com/blankbits/reup/internal/pipeline"
	"github.com/blankbits/reup/pkg/config"
	"github.com/blankbits/reup/pkg/logger"
	"github.com/blankbits/reup/pkg/questdb"
)

func main() {
	var (
		tickPrefix = flag.String("tick-prefix", "ticks", "object store prefix holding raw tick CSVs")
		useQuestDB = flag.Bool("questdb", false, "mirror resampled rows into QuestDB")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logr.Sync()

	store, err := objectstore.NewFSStore(cfg.ObjectStore.RootDir)
	if err != nil {
		fatal(logr, err)
	}

	var secondRepo second.SecondRepository
	if *useQuestDB {
		client, err := questdb.NewClient(ctx, cfg.QuestDB)
		if err != nil {
			fatal(logr, err)
		}
		defer client.Close()
		secondRepo = second.NewRepository(client)
	}

	loader := tickdata.NewObjectStoreLoader(store, *tickPrefix)
	runner := pipeline.NewRunner(loader, store, secondRepo, cfg, logr)
	jobConsumer := consumer.NewJobConsumer(cfg.JobKafka, logr, runner)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		jobConsumer.Start(ctx)
	}()

	go func() {
		defer wg.Done()
		jobConsumer.Subscribe(ctx)
	}()

	<-quit

	logr.Info("shutting down worker")
	cancel()
	if err := jobConsumer.Stop(); err != nil {
		logr.Error(err)
	}
	wg.Wait()

	logr.Info("worker stopped")
}

func fatal(logr logger.Interface, err error) {
	logr.Error(err)
	logr.Sync()
	os.Exit(1)
}
