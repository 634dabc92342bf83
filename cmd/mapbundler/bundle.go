package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/omsi-tools/mapbundler/cmd"
	"github.com/omsi-tools/mapbundler/pkg/bundler"
	"github.com/omsi-tools/mapbundler/pkg/logging"
)

// applyEnvironmentDefaults fills in any flag that wasn't explicitly set on
// the command line from the process environment (populated, in turn, by
// loadEnvironmentFile from --env-file). Flags the user did pass always win.
func applyEnvironmentDefaults(command *cobra.Command) {
	stringDefault := func(name, key string, target *string) {
		if command.Flags().Changed(name) {
			return
		}
		if value, ok := os.LookupEnv(key); ok {
			*target = value
		}
	}

	stringDefault("output", "MAPBUNDLER_OUTPUT", &bundleConfiguration.output)
	stringDefault("archive-name", "MAPBUNDLER_ARCHIVE_NAME", &bundleConfiguration.archiveName)
	stringDefault("readme", "MAPBUNDLER_README", &bundleConfiguration.readme)
	stringDefault("compression-method", "MAPBUNDLER_COMPRESSION_METHOD", &bundleConfiguration.compressionMethod)
	stringDefault("asset-root", "MAPBUNDLER_ASSET_ROOT", &bundleConfiguration.assetRoot)

	if !command.Flags().Changed("compression-level") {
		if value, ok := os.LookupEnv("MAPBUNDLER_COMPRESSION_LEVEL"); ok {
			if level, err := strconv.Atoi(value); err == nil {
				bundleConfiguration.compressionLevel = level
			} else {
				cmd.Warning(fmt.Sprintf("ignoring non-numeric MAPBUNDLER_COMPRESSION_LEVEL %q", value))
			}
		}
	}
}

func bundleMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return fmt.Errorf("exactly one map folder path must be specified")
	}
	mapFolder := arguments[0]

	if err := loadEnvironmentFile(bundleConfiguration.envFile); err != nil {
		cmd.Warning(err.Error())
	}
	applyEnvironmentDefaults(command)

	if level, ok := logging.NameToLevel(bundleConfiguration.logLevel); ok {
		logging.RootLogger.SetLevel(level)
	} else {
		cmd.Warning(fmt.Sprintf("invalid log level %q, defaulting to info", bundleConfiguration.logLevel))
	}
	logger := logging.RootLogger.Sublogger("bundle")

	printer := &cmd.StatusLinePrinter{}
	progress := func(message string, fraction float64) {
		printer.Print(fmt.Sprintf("[%3.0f%%] %s", fraction*100, message))
	}

	result := bundler.Bundle(bundler.Parameters{
		MapFolder:         mapFolder,
		AssetRoot:         bundleConfiguration.assetRoot,
		OutputFolder:      bundleConfiguration.output,
		ArchiveName:       bundleConfiguration.archiveName,
		ReadmePath:        bundleConfiguration.readme,
		CompressionMethod: bundleConfiguration.compressionMethod,
		CompressionLevel:  bundleConfiguration.compressionLevel,
		DebugPaths:        bundleConfiguration.debugPaths,
		Logger:            logger,
		Progress:          progress,
	})
	printer.BreakIfNonEmpty()

	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	fmt.Printf("Wrote archive to %s (%s)\n", result.OutputPath, humanize.Bytes(uint64(result.TotalBytes)))
	if result.FailedCount > 0 {
		cmd.Warning(fmt.Sprintf("%d file(s) could not be read and were skipped", result.FailedCount))
	}
	return nil
}

var bundleCommand = &cobra.Command{
	Use:   "bundle <map-folder>",
	Short: "Resolve a map's asset dependencies and write them to a compressed archive",
	Args:  cobra.ExactArgs(1),
	Run:   cmd.Mainify(bundleMain),
}

var bundleConfiguration struct {
	help              bool
	output            string
	archiveName       string
	readme            string
	compressionMethod string
	compressionLevel  int
	envFile           string
	debugPaths        bool
	logLevel          string
	assetRoot         string
}

func init() {
	flags := bundleCommand.Flags()
	flags.SortFlags = false

	flags.BoolVarP(&bundleConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVarP(&bundleConfiguration.output, "output", "o", "", "Output folder for the archive and manifest (default: a \"bundled\" folder next to the map)")
	flags.StringVar(&bundleConfiguration.archiveName, "archive-name", "", "Override the generated archive filename")
	flags.StringVar(&bundleConfiguration.readme, "readme", "", "Path to a README file to include in the archive")
	flags.StringVar(&bundleConfiguration.compressionMethod, "compression-method", "deflate", "Compression method to use (\"deflate\" or \"stored\")")
	flags.IntVar(&bundleConfiguration.compressionLevel, "compression-level", 1, "Compression level, 1-9 (only meaningful for \"deflate\"; 0 or less selects the default of 1)")
	flags.StringVar(&bundleConfiguration.envFile, "env-file", "", "Path to a .env file providing default configuration")
	flags.BoolVar(&bundleConfiguration.debugPaths, "debug-paths", false, "Write the Phase 1 seed path list to a sidecar file before resolving")
	flags.StringVar(&bundleConfiguration.logLevel, "log-level", "info", "Logging level (disabled, error, warn, info, debug, trace)")
	flags.StringVar(&bundleConfiguration.assetRoot, "asset-root", "", "Override the asset root (default: the map folder's grandparent directory)")
}
