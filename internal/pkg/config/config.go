// Package config collects runtime configuration for the CLI entry points.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ougirez/price-rise/internal/pkg/constants"
)

type Config struct {
	InputFilePath      string `validate:"required"`
	OutputFilePath     string
	PackageName        string `validate:"required"`
	ServiceAccountFile string `validate:"required"`
	APIBaseURL         string `validate:"required,url"`
	RegionsVersion     string `validate:"required"`
	DryRun             bool
}

var validate = validator.New()

// Load merges flags over environment variables over defaults. args is the
// command line without the binary name. needOutput is set by the price-rise
// entry point, which writes the audit CSV; the migration tool has no output
// file.
func Load(args []string, needOutput bool) (Config, error) {
	fs := pflag.NewFlagSet("price-rise", pflag.ContinueOnError)
	fs.Bool("dry-run", false, "compute and log changes without submitting them")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("pflag.Parse: %w", err)
	}

	v := viper.New()
	if err := v.BindPFlag(constants.ViperKeyDryRun, fs.Lookup("dry-run")); err != nil {
		return Config{}, fmt.Errorf("viper.BindPFlag: %w", err)
	}

	bindings := map[string]string{
		constants.ViperKeyInputFile:          "INPUT_FILE_PATH",
		constants.ViperKeyOutputFile:         "OUTPUT_FILE_PATH",
		constants.ViperKeyPackageName:        "PACKAGE_NAME",
		constants.ViperKeyServiceAccountFile: "SERVICE_ACCOUNT_FILE",
		constants.ViperKeyAPIBaseURL:         "API_BASE_URL",
		constants.ViperKeyRegionsVersion:     "REGIONS_VERSION",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("viper.BindEnv %s: %w", key, err)
		}
	}
	v.SetDefault(constants.ViperKeyPackageName, constants.DefaultPackageName)
	v.SetDefault(constants.ViperKeyAPIBaseURL, constants.DefaultAPIBaseURL)
	v.SetDefault(constants.ViperKeyRegionsVersion, constants.DefaultRegionsVersion)

	cfg := Config{
		InputFilePath:      v.GetString(constants.ViperKeyInputFile),
		OutputFilePath:     v.GetString(constants.ViperKeyOutputFile),
		PackageName:        v.GetString(constants.ViperKeyPackageName),
		ServiceAccountFile: v.GetString(constants.ViperKeyServiceAccountFile),
		APIBaseURL:         v.GetString(constants.ViperKeyAPIBaseURL),
		RegionsVersion:     v.GetString(constants.ViperKeyRegionsVersion),
		DryRun:             v.GetBool(constants.ViperKeyDryRun),
	}

	if cfg.InputFilePath == "" {
		return cfg, constants.ErrMissingInputPath
	}
	if needOutput && cfg.OutputFilePath == "" {
		return cfg, constants.ErrMissingOutputPath
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate.Struct: %w", err)
	}

	return cfg, nil
}
