package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of turing",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("turing version %s\n", strings.TrimSpace(turing.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
