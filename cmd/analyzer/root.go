package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/finhelp-go/internal/config"
	"github.com/eshaffer321/finhelp-go/internal/log"
)

const defaultExtraAmount = 100.0

type options struct {
	file       string
	local      bool
	serverURL  string
	jsonOutput bool
	extra      float64
	suggest    bool
	windowDays int
	threshold  float64
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "finhelp-analyzer",
		Short: "Analyze a client's financial situation",
		Long: "Runs help_template, surpresa_gastos and lembrete_emprestimo for a client data file,\n" +
			"either in-process (--local) or against a running finhelp MCP server.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runAnalyze(cmd, opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "  Error: %v\n", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "client_data.json", "Client data JSON file")
	flags.BoolVar(&opts.local, "local", false, "Run the tools in-process instead of calling a server")
	flags.StringVarP(&opts.serverURL, "server", "s", "", "Server base URL (default from config)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")
	flags.Float64Var(&opts.extra, "extra", defaultExtraAmount, "Extra amount offered on every loan")
	flags.BoolVar(&opts.suggest, "suggest-extra", false, "Let the server suggest the extra amount per loan")
	flags.IntVar(&opts.windowDays, "window-days", 0, "Spending window in days (default from config)")
	flags.Float64Var(&opts.threshold, "threshold", 0, "Spending threshold as a fraction (default from config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log tool calls to stderr")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.serverURL != "" {
		cfg.Analyzer.ServerURL = opts.serverURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.Log.Format,
		Component: log.ComponentAnalyzer,
		Output:    cmd.ErrOrStderr(),
	})

	data, err := LoadClientData(opts.file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Analyzer.Timeout.Duration)
	defer cancel()

	connect := connectRemote
	if opts.local {
		connect = connectLocal
	}
	session, closeSession, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSession()

	analyzeOpts := AnalyzeOptions{
		WindowDays:   cfg.Anomaly.WindowDays,
		ThresholdPct: cfg.Anomaly.ThresholdPct,
	}
	if opts.windowDays > 0 {
		analyzeOpts.WindowDays = opts.windowDays
	}
	if cmd.Flags().Changed("threshold") {
		analyzeOpts.ThresholdPct = opts.threshold
	}
	if !opts.suggest {
		extra := opts.extra
		analyzeOpts.ExtraAmount = &extra
	}

	logger.Debug("analyzing client", "file", opts.file, "local", opts.local, "loans", len(data.Loans))

	report, err := Analyze(ctx, &sessionCaller{session: session}, data, analyzeOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(out, RenderReport(report))
	return nil
}
