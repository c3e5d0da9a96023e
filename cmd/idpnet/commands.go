package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/config"
	"github.com/katalvlaran/idpnet/scenario"
	"github.com/katalvlaran/idpnet/selector"
	"github.com/katalvlaran/idpnet/server"
	"github.com/katalvlaran/idpnet/sim"
	"github.com/katalvlaran/idpnet/store"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (a *app) simulateCmd() *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation for a number of ticks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if cmd.Flags().Changed("ticks") {
				a.cfg.Ticks = ticks
			}
			s, closer, err := a.simulation()
			if err != nil {
				return err
			}
			defer closer()

			ctx, cancel := signalContext()
			defer cancel()
			before := s.Nodes().TotalRefugees()
			eng := sim.NewEngine(s, a.log)
			eng.OnReport = func(r *sim.TickReport) {
				fmt.Fprintf(cmd.OutOrStdout(), "tick %d: %d moves, %s refugees moved, %d stayed (%s)\n",
					r.Tick, len(r.Moves), humanize.Comma(int64(r.Moved)), r.Stayed, r.Duration.Round(time.Microsecond))
			}
			if err := eng.Run(ctx, uint64(a.cfg.Ticks)); err != nil && ctx.Err() == nil {
				return err
			}

			overloaded := 0
			for _, n := range s.Nodes() {
				if n.IsCity() && n.Excess() >= 1 {
					overloaded++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d ticks, %d rebuilds, %s refugees, %d cities over capacity\n",
				s.Tick(), s.Rebuilds(), humanize.Comma(int64(before)), overloaded)

			return nil
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "number of ticks (overrides the configuration; 0 runs until interrupted)")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			s, closer, err := a.simulation()
			if err != nil {
				return err
			}
			defer closer()

			ctx, cancel := signalContext()
			defer cancel()
			if interval > 0 {
				eng := sim.NewEngine(s, a.log)
				eng.Interval = interval
				go func() {
					if err := eng.Run(ctx, 0); err != nil && ctx.Err() == nil {
						a.log.Error("background engine stopped", "error", err)
					}
				}()
			}

			return server.New(s, a.log).Run(ctx, a.cfg.Server.Addr)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "advance one tick per interval in the background (0 disables)")
	return cmd
}

func (a *app) tableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Build and inspect shortest-path table files",
	}
	cmd.AddCommand(a.tableBuildCmd(), a.tableInspectCmd())

	return cmd
}

func (a *app) tableBuildCmd() *cobra.Command {
	var working string

	cmd := &cobra.Command{
		Use:   "build [out-file]",
		Short: "Write the working network's path table to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			kind, err := selector.ParseWorking(working)
			if err != nil {
				return err
			}
			s, closer, err := a.simulation()
			if err != nil {
				return err
			}
			defer closer()
			w, _ := s.WorkingOf(kind)

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			n, err := w.Table.WriteTo(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("writing table: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes, %s\n", args[0], w.Table.Order(), humanize.Bytes(uint64(n)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&working, "working", "w", selector.WorkingSimplifiedWeighted.String(), "working network: raw, simplified or simplified-weighted")
	return cmd
}

func (a *app) tableInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Validate a path table file and summarise it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}
			t, err := apsp.Load(f, -1)
			if err != nil {
				return err
			}

			n := t.Order()
			reachable := 0
			longest := 0.0
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i == j || !t.Reachable(i, j) {
						continue
					}
					reachable++
					longest = max(longest, t.PathLength(i, j))
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:      %s (%s)\n", args[0], humanize.Bytes(uint64(info.Size())))
			fmt.Fprintf(out, "nodes:     %s\n", humanize.Comma(int64(n)))
			fmt.Fprintf(out, "reachable: %s of %s ordered pairs\n", humanize.Comma(int64(reachable)), humanize.Comma(int64(n*(n-1))))
			fmt.Fprintf(out, "diameter:  %s\n", humanize.FormatFloat("#,###.##", longest))

			return nil
		},
	}
}

func (a *app) scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Synthetic scenario tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "generate [out-file]",
		Short: "Generate a scenario and save it as a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			w, err := scenario.Generate(a.cfg.ScenarioOptions()...)
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			err = w.Save(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("saving snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cities, %d junctions, %d roads, %d TIN pairs\n",
				args[0], len(w.Nodes.Cities()), len(w.Nodes)-len(w.Nodes.Cities()), w.Roads.EdgeCount(), len(w.TIN))

			return nil
		},
	})

	return cmd
}

func (a *app) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Path-table cache maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached path tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if a.cfg.Cache.Path == "" {
				return fmt.Errorf("no cache configured (set cache.path or %s)", config.EnvCache)
			}
			st, err := store.Open(a.cfg.Cache.Path, a.log)
			if err != nil {
				return err
			}
			defer st.Close()
			entries, err := st.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %6d nodes  %9s  %s\n",
					store.ShortKey(e.Fingerprint), e.Nodes, humanize.Bytes(uint64(e.Bytes)), humanize.Time(e.Created()))
			}
			total, err := st.TotalBytes()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d tables, %s\n", len(entries), humanize.Bytes(uint64(total)))

			return nil
		},
	})

	return cmd
}
