package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/playground/metrics"
	"github.com/rustyeddy/playground/playground"
	"github.com/rustyeddy/playground/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.csv>",
	Short: "Replay a scripted trading session",
	Long: `Replay drives a playground session from a CSV script of actions:

  SELECT,<symbol>   switch instrument
  NEXT[,n]          reveal n more bars (default 1)
  BUY,<size>        market buy at the visible close
  SELL,<size>       market sell at the visible close
  CLOSE[,symbol]    flatten a position
  RESET             return to the start of the series

Open positions and the order history are printed at the end.

Examples:
  playground replay session.csv
  playground replay -c playground.yaml --metrics-addr :9100 session.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replaySymbol       string
	replaySkipRejected bool
	replayMetricsAddr  string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replaySymbol, "symbol", "s", "", "instrument selected before the script runs (default session.symbol)")
	replayCmd.Flags().BoolVar(&replaySkipRejected, "skip-rejected", false, "count rejected orders and keep going")
	replayCmd.Flags().StringVar(&replayMetricsAddr, "metrics-addr", "", "serve /metrics on this address while replaying")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if j != nil {
		defer func() {
			if err := j.Close(); err != nil {
				log.WithError(err).Error("close journal")
			}
		}()
	}

	m := metrics.New()
	s := playground.New(playground.Options{
		Instruments: catalog,
		StartIndex:  cfg.Session.StartIndex,
		Journal:     j,
		Metrics:     m,
		Logger:      log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := cfg.Metrics.Addr
	if replayMetricsAddr != "" {
		addr = replayMetricsAddr
	}
	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsMux(m)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("metrics server")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.WithField("addr", addr).Info("serving metrics")
	}

	symbol := cfg.Session.Symbol
	if replaySymbol != "" {
		symbol = replaySymbol
	}
	if symbol != "" {
		if err := s.Select(symbol); err != nil {
			return err
		}
	}

	log.WithField("script", args[0]).Info("replay started")
	res, err := replay.File(ctx, args[0], s, replay.Options{SkipRejected: replaySkipRejected})
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	snap := s.Snapshot()
	log.WithField("rows", res.Rows).
		WithField("orders", res.Orders).
		WithField("rejected", res.Rejected).
		WithField("bars", res.Bars).
		Info("replay complete")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s\n", snap.SessionID)
	if snap.Symbol != "" {
		fmt.Fprintf(out, "  %s bar %d/%d  %s  close %.2f\n\n",
			snap.Symbol, snap.Cursor+1, snap.Bars, snap.Time.Format(time.RFC3339), snap.Mark)
	}
	if err := playground.RenderPositions(out, snap.Positions); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return playground.RenderOrders(out, snap.Orders)
}

func metricsMux(m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}
