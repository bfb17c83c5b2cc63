package main

import (
	"github.com/spf13/cobra"
)

func SetupCommands(a *App) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "timepunch",
		Short:         "Punch clock backed by a spreadsheet script",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.cfg.ScriptURL, "url", a.cfg.ScriptURL, "script endpoint URL (TIMEPUNCH_SCRIPT_URL)")

	// punch commands
	punches := []struct {
		action Action
		short  string
	}{
		{ActionEntry, "Register today's entry"},
		{ActionBreakStart, "Register the start of a break"},
		{ActionBreakEnd, "Register the end of a break"},
		{ActionExit, "Register today's exit"},
	}
	for _, p := range punches {
		action := p.action
		rootCmd.AddCommand(&cobra.Command{
			Use:   string(action),
			Short: p.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.Punch(cmd.Context(), action)
			},
		})
	}

	// command for backfilling a day
	var in ManualInput
	manualCmd := &cobra.Command{
		Use:   "manual",
		Short: "Register a record for any date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Manual(cmd.Context(), in)
		},
	}
	manualCmd.Flags().StringVar(&in.Date, "date", "", "date as YYYY-MM-DD")
	manualCmd.Flags().StringVar(&in.EntryTime, "entry", "", "entry time as HH:MM")
	manualCmd.Flags().StringVar(&in.BreakStartTime, "break-start", "", "break start as HH:MM")
	manualCmd.Flags().StringVar(&in.BreakEndTime, "break-end", "", "break end as HH:MM")
	manualCmd.Flags().StringVar(&in.ExitTime, "exit", "", "exit time as HH:MM")

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ShowToday(cmd.Context())
		},
	}

	monthCmd := &cobra.Command{
		Use:   "month",
		Short: "Show the records returned by the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ShowMonth(cmd.Context())
		},
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the records to an xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Export(cmd.Context(), out)
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "records.xlsx", "output file")

	clockCmd := &cobra.Command{
		Use:   "clock",
		Short: "Show a live clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Clock(cmd.Context())
		},
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Punch interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Session(cmd.Context())
		},
	}

	// command for running the store the client talks to
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the record store service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Serve(cmd.Context())
		},
	}
	serveCmd.Flags().StringVar(&a.cfg.Addr, "addr", a.cfg.Addr, "listen address (TIMEPUNCH_ADDR)")
	serveCmd.Flags().StringVar(&a.cfg.DBPath, "db", a.cfg.DBPath, "sqlite database path (TIMEPUNCH_DB_PATH)")

	// add commands
	rootCmd.AddCommand(manualCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}
