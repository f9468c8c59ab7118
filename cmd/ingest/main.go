package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/blankbits/reup/internal/csvcodec"
	"github.com/blankbits/reup/internal/infrastructure/objectstore"
	"github.com/blankbits/reup/internal/infrastructure/questdb/quote"
	"github.com/blankbits/reup/internal/infrastructure/questdb/trade"
	"github.com/blankbits/reup/pkg/config"
	"github.com/blankbits/reup/pkg/logger"
	"github.com/blankbits/reup/pkg/questdb"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

func main() {
	var (
		date       = flag.String("date", "", "trading date, YYYY-MM-DD")
		symbol     = flag.String("symbol", "", "symbol the tick files belong to")
		quotesPath = flag.String("quotes", "", "local quote tick CSV to ingest")
		tradesPath = flag.String("trades", "", "local trade tick CSV to ingest")
		tickPrefix = flag.String("tick-prefix", "ticks", "object store prefix to mirror normalized CSVs under")
		useQuestDB = flag.Bool("questdb", false, "also batch ticks into QuestDB")
	)
	flag.Parse()
	if *date == "" || *symbol == "" {
		log.Fatal("-date and -symbol are required")
	}
	if *quotesPath == "" && *tradesPath == "" {
		log.Fatal("at least one of -quotes or -trades is required")
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

	var (
		quoteRepo quote.QuoteRepository
		tradeRepo trade.TradeRepository
	)
	if *useQuestDB {
		client, err := questdb.NewClient(ctx, cfg.QuestDB)
		if err != nil {
			fatal(logr, err)
		}
		defer client.Close()
		quoteRepo = quote.NewRepository(client)
		tradeRepo = trade.NewRepository(client)
	}

	if *quotesPath != "" {
		if err := ingestQuotes(ctx, store, quoteRepo, *tickPrefix, *date, *symbol, *quotesPath); err != nil {
			fatal(logr, err)
		}
		logr.Info("ingested quotes",
			logger.Field{Key: "date", Value: *date},
			logger.Field{Key: "symbol", Value: *symbol},
		)
	}
	if *tradesPath != "" {
		if err := ingestTrades(ctx, store, tradeRepo, *tickPrefix, *date, *symbol, *tradesPath); err != nil {
			fatal(logr, err)
		}
		logr.Info("ingested trades",
			logger.Field{Key: "date", Value: *date},
			logger.Field{Key: "symbol", Value: *symbol},
		)
	}
}

func ingestQuotes(ctx context.Context, store objectstore.ObjectStore, repo quote.QuoteRepository, prefix, date, symbol, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	quotes, err := csvcodec.ReadQuotes(data)
	if err != nil {
		return err
	}

	normalized, err := csvcodec.WriteQuotes(quotes)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, prefix+"/"+date+"/"+symbol+"/quotes.csv.gz", normalized); err != nil {
		return err
	}

	if repo == nil {
		return nil
	}
	rows := make([]*quote.Quote, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, quoteRow(date, symbol, q))
	}
	return repo.StoreBatch(ctx, rows)
}

func ingestTrades(ctx context.Context, store objectstore.ObjectStore, repo trade.TradeRepository, prefix, date, symbol, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	trades, err := csvcodec.ReadTrades(data)
	if err != nil {
		return err
	}

	normalized, err := csvcodec.WriteTrades(trades)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, prefix+"/"+date+"/"+symbol+"/trades.csv.gz", normalized); err != nil {
		return err
	}

	if repo == nil {
		return nil
	}
	rows := make([]*trade.Trade, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, tradeRow(date, symbol, t))
	}
	return repo.StoreBatch(ctx, rows)
}

func quoteRow(date, symbol string, q tickv1.QuoteTick) *quote.Quote {
	return &quote.Quote{
		Symbol:            symbol,
		Date:              date,
		Sequence:          q.Sequence,
		SIPTimestamp:      q.SIPTimestamp,
		ExchangeTimestamp: q.ExchangeTimestamp,
		BidPrice:          q.BidPrice,
		BidSize:           q.BidSize,
		BidExchange:       q.BidExchange,
		AskPrice:          q.AskPrice,
		AskSize:           q.AskSize,
		AskExchange:       q.AskExchange,
		Conditions:        q.Conditions,
		Indicators:        q.Indicators,
	}
}

func tradeRow(date, symbol string, t tickv1.TradeTick) *trade.Trade {
	return &trade.Trade{
		Symbol:            symbol,
		Date:              date,
		Sequence:          t.Sequence,
		SIPTimestamp:      t.SIPTimestamp,
		ExchangeTimestamp: t.ExchangeTimestamp,
		Price:             t.Price,
		Size:              t.Size,
		Exchange:          t.Exchange,
		Conditions:        t.Conditions,
	}
}

func fatal(logr logger.Interface, err error) {
	logr.Error(err)
	logr.Sync()
	os.Exit(1)
}
