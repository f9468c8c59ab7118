package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/blankbits/reup/internal/infrastructure/objectstore"
	"github.com/blankbits/reup/internal/infrastructure/tickdata"
	"github.com/blankbits/reup/internal/pipeline"
	"github.com/blankbits/reup/pkg/config"
	"github.com/blankbits/reup/pkg/logger"
	"github.com/blankbits/reup/pkg/universe"
)

func main() {
	var (
		date       = flag.String("date", "", "trading date, YYYY-MM-DD")
		symbol     = flag.String("symbol", "", "symbol to process; all universe constituents when empty")
		univPrefix = flag.String("universe-prefix", "universe", "object store prefix holding universe CSVs")
		tickPrefix = flag.String("tick-prefix", "ticks", "object store prefix holding raw tick CSVs")
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

	store, err := objectstore.NewFSStore(cfg.ObjectStore.RootDir)
	if err != nil {
		fatal(logr, err)
	}

	loader := tickdata.NewObjectStoreLoader(store, *tickPrefix)
	runner := pipeline.NewRunner(loader, store, nil, cfg, logr)

	symbols := []string{*symbol}
	if *symbol == "" {
		univ, err := universe.New(ctx, store, *univPrefix, logr)
		if err != nil {
			fatal(logr, err)
		}
		if symbols, err = univ.SymbolList(*date); err != nil {
			fatal(logr, err)
		}
	}

	for _, sym := range symbols {
		if err := runner.Features(ctx, pipeline.Job{Date: *date, Symbol: sym}); err != nil {
			fatal(logr, err)
		}
	}
}

func fatal(logr logger.Interface, err error) {
	logr.Error(err)
	logr.Sync()
	os.Exit(1)
}
