// Comando adminctl: tareas operativas de la consola (migraciones y huérfanos).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tenant-admin/pkg/config"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:          "adminctl",
	Short:        "Operational tasks for the tenant admin console",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig configuración y logger compartidos por los subcomandos.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	return cfg, log, nil
}
