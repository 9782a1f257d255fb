// Command price-rise bulk-updates subscription prices on the publisher API
// from a CSV price table, writing an audit row for every changed region.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/labstack/gommon/color"

	"github.com/ougirez/price-rise/internal/pkg/audit"
	"github.com/ougirez/price-rise/internal/pkg/config"
	"github.com/ougirez/price-rise/internal/pkg/constants"
	"github.com/ougirez/price-rise/internal/pkg/logger"
	"github.com/ougirez/price-rise/internal/pkg/pricetable"
	"github.com/ougirez/price-rise/internal/pkg/publisher"
	"github.com/ougirez/price-rise/internal/service/pricerise"
)

func main() {
	if err := run(); err != nil {
		logger.Errorf(context.Background(), "price-rise: %s", err.Error())
		logger.Sync()

		var coded *constants.CodedError
		if errors.As(err, &coded) {
			os.Exit(coded.Code())
		}
		os.Exit(1)
	}
	logger.Sync()
}

func run() (err error) {
	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	cfg, err := config.Load(os.Args[1:], true)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if cfg.DryRun {
		color.Println(color.Red("***** DRY RUN *****"))
	}

	table, err := pricetable.Load(cfg.InputFilePath)
	if err != nil {
		return fmt.Errorf("pricetable.Load: %w", err)
	}

	sink, err := audit.NewWriter(cfg.OutputFilePath)
	if err != nil {
		return fmt.Errorf("audit.NewWriter: %w", err)
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("sink.Close: %w", closeErr)
		}
	}()

	tokens, err := publisher.NewJWTTokenSource(cfg.ServiceAccountFile)
	if err != nil {
		return fmt.Errorf("publisher.NewJWTTokenSource: %w", err)
	}

	svc := pricerise.NewService(publisher.NewClient(cfg.APIBaseURL, tokens), sink, pricerise.Options{
		PackageName:    cfg.PackageName,
		RegionsVersion: cfg.RegionsVersion,
		DryRun:         cfg.DryRun,
	})

	return svc.Run(context.Background(), table)
}
