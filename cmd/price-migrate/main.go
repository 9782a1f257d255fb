// Command price-migrate moves legacy subscriber price cohorts onto the
// current price for every product listed in the price table. Run it after
// price-rise has published the new prices.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/labstack/gommon/color"

	"github.com/ougirez/price-rise/internal/pkg/config"
	"github.com/ougirez/price-rise/internal/pkg/constants"
	"github.com/ougirez/price-rise/internal/pkg/logger"
	"github.com/ougirez/price-rise/internal/pkg/pricetable"
	"github.com/ougirez/price-rise/internal/pkg/publisher"
	"github.com/ougirez/price-rise/internal/service/migration"
)

func main() {
	if err := run(); err != nil {
		logger.Errorf(context.Background(), "price-migrate: %s", err.Error())
		logger.Sync()

		var coded *constants.CodedError
		if errors.As(err, &coded) {
			os.Exit(coded.Code())
		}
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	cfg, err := config.Load(os.Args[1:], false)
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

	tokens, err := publisher.NewJWTTokenSource(cfg.ServiceAccountFile)
	if err != nil {
		return fmt.Errorf("publisher.NewJWTTokenSource: %w", err)
	}

	svc := migration.NewService(publisher.NewClient(cfg.APIBaseURL, tokens), migration.Options{
		PackageName:    cfg.PackageName,
		RegionsVersion: cfg.RegionsVersion,
		DryRun:         cfg.DryRun,
	})

	return svc.Run(context.Background(), table)
}
