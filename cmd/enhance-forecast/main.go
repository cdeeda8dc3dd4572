package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iwvelando/enhance-forecast/internal/catalog"
	"github.com/iwvelando/enhance-forecast/internal/config"
	"github.com/iwvelando/enhance-forecast/internal/enhance"
	"github.com/iwvelando/enhance-forecast/internal/market"
	"github.com/iwvelando/enhance-forecast/internal/server"
	"github.com/iwvelando/enhance-forecast/pkg/constants"
	"github.com/iwvelando/enhance-forecast/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	listen := flag.String("listen", "", "serve the plan API on this address instead of running queries")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}

	// Validate configuration and display any warnings
	if err := conf.Validate(); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Load the item catalog and market snapshot.
	cat, err := catalog.Load(conf.Data.ItemCatalog)
	if err != nil {
		logger.Fatal("failed to load item catalog",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	snapshot, err := market.Load(conf.Data.MarketSnapshot)
	if err != nil {
		logger.Fatal("failed to load market snapshot",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	planner := enhance.NewPlanner(logger, cat, snapshot)

	// Serve mode: expose the plan API and block.
	address := *listen
	if address == "" {
		address = conf.Server.Listen
	}
	if address != "" {
		handler := server.NewHandler(logger, planner, conf.Server.MaxUploadSize, version, conf.CacheTTL())
		logger.Info("serving plan API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Run the configured queries to get the plans.
	params := conf.Parameters()
	var results []enhance.PathResult
	for _, query := range conf.Queries {
		result := planner.CalculateEnhancementPath(query.QueryHrid(), query.TargetLevel, params)
		if result == nil {
			logger.Warn("cannot enhance this item",
				zap.String("op", "main"),
				zap.String("itemHrid", query.ItemHrid),
				zap.Int("targetLevel", query.TargetLevel),
			)
			continue
		}
		results = append(results, *result)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatXLSX:
		file := conf.Output.File
		if file == "" {
			file = "enhance-forecast.xlsx"
		}
		if err := output.XlsxExport(file, results); err != nil {
			logger.Fatal("failed to export workbook",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("wrote workbook",
			zap.String("op", "main"),
			zap.String("file", file),
		)
	default:
		logger.Fatal("invalid output format: "+outputFormat,
			zap.String("op", "main"),
		)
	}

}
