package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "apiprobe",
	Short: "Describe an HTTP request, send it, or run it through diagnostic checks.",
	Long: `apiprobe builds an HTTP request from loosely-typed input (method, URL
with {id} or :id path placeholders, query parameters, headers, JSON or
form/multipart body) and either executes it once or runs it through a
fixed battery of checks: functional, error-handling, performance and
security.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
