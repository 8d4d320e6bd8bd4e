// Command datacheck runs the dataset loader/cleaner standalone and prints a
// cleaning report: how many raw rows came in and how many were dropped for
// missing values, duplication, or unparseable numbers. Useful for vetting a
// new dataset file before pointing the server at it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"carsearch/internal/analytics"
	"carsearch/internal/dataset"
)

func main() {
	input := flag.String("input", "vehicles.csv", "dataset file (.csv, .xlsx, .db/.sqlite)")
	table := flag.String("table", "listings", "table name for sqlite sources")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	src, err := dataset.Open(*input, *table)
	if err != nil {
		logger.Error("cannot open source", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tbl, report, err := dataset.NewLoader(logger).Load(context.Background(), src)
	if err != nil {
		logger.Error("load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("source rows:          %d\n", report.SourceRows)
	fmt.Printf("dropped (missing):    %d\n", report.MissingDropped)
	fmt.Printf("dropped (duplicate):  %d\n", report.DuplicateDropped)
	fmt.Printf("dropped (unparseable): %d\n", report.UnparseableDropped)
	fmt.Printf("canonical rows:       %d\n", report.Rows)

	opts := analytics.NewPresenter(logger, analytics.DefaultTopN).Options(tbl.Rows())
	fmt.Printf("manufacturers:        %d\n", len(opts.Manufacturers))
	fmt.Printf("paint colors:         %d\n", len(opts.PaintColors))
	fmt.Printf("price range:          $%s - $%s\n",
		analytics.FormatPrice(opts.PriceMin), analytics.FormatPrice(opts.PriceMax))
}
