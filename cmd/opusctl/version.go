package main

import (
	"fmt"
	"runtime"

	"github.com/mattermost/calls-opus/opus"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	commitHash string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of opusctl and libopus",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "opusctl Version: %s, %s/%s, Commit: %s, %s\n",
			version, runtime.GOOS, runtime.GOARCH, commitHash, opus.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
