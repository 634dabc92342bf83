package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omsi-tools/mapbundler/cmd"
	"github.com/omsi-tools/mapbundler/pkg/mapbundler"
)

func versionMain(command *cobra.Command, arguments []string) error {
	fmt.Println(mapbundler.Version)
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run:   cmd.Mainify(versionMain),
}

var versionConfiguration struct {
	help bool
}

func init() {
	flags := versionCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&versionConfiguration.help, "help", "h", false, "Show help information")
}
