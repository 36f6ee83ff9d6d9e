package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tenant-admin/internal/bootstrap"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/mq"
	"github.com/jhoicas/tenant-admin/pkg/config"
)

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Inspect and reconcile identities left without a matching record",
}

var orphansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending orphans",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		list, err := app.OrphanUC.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UID\tEMAIL\tKIND\tDETECTED\tREASON")
		for _, o := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.UID, o.Email, o.Kind, o.DetectedAt.Format(time.RFC3339), o.Reason)
		}
		return w.Flush()
	},
}

var orphansReconcileCmd = &cobra.Command{
	Use:   "reconcile <uid>",
	Short: "Retry the pending cleanup for an orphan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.OrphanUC.Reconcile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reconciled %s\n", args[0])
		return nil
	},
}

var orphansWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print orphan alerts as they are published (MQ_BACKEND=pubsub|rabbitmq)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, cfg, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()
		if app.Broker == nil {
			return errors.New("watch requires MQ_BACKEND=pubsub or rabbitmq")
		}

		err = app.Broker.Subscribe(ctx, cfg.MQ.AlertChannel, func(_ context.Context, msg mq.Message) error {
			o, err := mq.DecodeOrphan(msg.Data)
			if err != nil {
				return nil // mensaje ilegible: se descarta
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", o.DetectedAt.Format(time.RFC3339), o.Kind, o.UID, o.Email)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(orphansCmd)
	orphansCmd.AddCommand(orphansListCmd, orphansReconcileCmd, orphansWatchCmd)
}

func openApp(ctx context.Context) (*bootstrap.App, *config.Config, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return app, cfg, nil
}
