// Command uptimectl inspects and drives the uptime history by hand.
//
//	uptimectl init             # store [] under the history key if absent
//	uptimectl record           # probe PING_URL once and record the result
//	uptimectl history -f yaml  # print the stored history
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "uptimectl",
	Short: "Operate the uptime history",
	Long: `uptimectl talks to the same store as the recorder and the api.

Configuration comes from the YAML file given with --config and from the
environment (PING_URL, STORE_NAMESPACE, STORE_DRIVER, DB_DSN, ...).`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "uptimectl %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
