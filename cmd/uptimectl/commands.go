package main

import (
	"fmt"

	config "github.com/NordCoder/Uptimer/internal/config/recorder"
	"github.com/NordCoder/Uptimer/internal/domain/history"
	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/NordCoder/Uptimer/internal/services/prober"
	"github.com/NordCoder/Uptimer/internal/services/recorder"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty history if the key is absent",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(cmd.Context(), cmd, (*config.Config).ValidateStore)
		if err != nil {
			return err
		}
		defer e.Close()

		created, err := e.store.History.Init(cmd.Context())
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s/%s\n", e.cfg.Store.Namespace, e.cfg.Store.Key)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s already exists\n", e.cfg.Store.Namespace, e.cfg.Store.Key)
		}
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Probe PING_URL once and prepend the result",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(cmd.Context(), cmd, func(c *config.Config) error {
			if err := c.ValidateStore(); err != nil {
				return err
			}
			return c.Ping.Validate()
		})
		if err != nil {
			return err
		}
		defer e.Close()

		cfg := e.cfg
		p := prober.New(prober.NewHTTPClient(cfg.Probe), probe.SystemClock{}, cfg.Probe.UserAgent, e.log)
		uc := recorder.NewUsecase(p, e.store.History, cfg.Ping.URL, cfg.Recorder.ConflictRetries, e.log, nil)
		runner := recorder.NewRunner(e.log, uc, "", cfg.Recorder.InvocationTimeout, nil)

		rec, err := runner.Invoke(cmd.Context(), recorder.TriggerManual, "")
		if err != nil {
			return err
		}
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(rec)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored history, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")
		if format != "json" && format != "yaml" {
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		}

		e, err := openEnv(cmd.Context(), cmd, (*config.Config).ValidateStore)
		if err != nil {
			return err
		}
		defer e.Close()

		h, err := e.store.History.ReadHistory(cmd.Context())
		if err != nil {
			return err
		}
		if h == nil {
			h = history.History{}
		}
		if limit > 0 && len(h) > limit {
			h = h[:limit]
		}

		out := cmd.OutOrStdout()
		if format == "yaml" {
			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(h)
		}
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(h, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
	historyCmd.Flags().IntP("limit", "n", 0, "print at most n records (0 = all)")
	rootCmd.AddCommand(initCmd, recordCmd, historyCmd)
}
