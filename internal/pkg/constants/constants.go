package constants

// Viper configuration keys shared by the CLI entry points.
const (
	ViperKeyInputFile          = "input_file_path"
	ViperKeyOutputFile         = "output_file_path"
	ViperKeyPackageName        = "package_name"
	ViperKeyServiceAccountFile = "service_account_file"
	ViperKeyAPIBaseURL         = "api_base_url"
	ViperKeyRegionsVersion     = "regions_version"
	ViperKeyDryRun             = "dry_run"
)

const (
	DefaultPackageName    = "com.guardian"
	DefaultAPIBaseURL     = "https://androidpublisher.googleapis.com/androidpublisher/v3"
	DefaultRegionsVersion = "2025/01"
)
