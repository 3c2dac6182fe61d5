package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// develVersion is what the Go toolchain reports for builds outside a module
// download, such as go run or a local go build.
const develVersion = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cpm version",
		Long:  "Print the cpm module version, the VCS revision when the binary was built from a checkout, and the Go version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("cpm version unknown")
				return
			}

			version := info.Main.Version
			if version == "" {
				version = develVersion
			}

			cmd.Printf("cpm %s\n", version)

			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					cmd.Printf("revision %s\n", setting.Value)
				}
			}

			cmd.Printf("built with %s\n", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
