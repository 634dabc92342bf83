package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/omsi-tools/mapbundler/cmd"
)

func rootMain(command *cobra.Command, arguments []string) {
	// Print version information, if requested.
	if rootConfiguration.version {
		if err := versionMain(command, arguments); err != nil {
			cmd.Fatal(err)
		}
		return
	}

	// No flags were set and no subcommand matched, so just print help.
	command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "mapbundler",
	Short: "mapbundler resolves and archives the asset dependencies of an OMSI map",
	Run:   rootMain,
}

var rootConfiguration struct {
	help    bool
	version bool
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		bundleCommand,
		versionCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
