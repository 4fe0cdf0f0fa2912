package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/app"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/pkg/log"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "Ferramentas de linha de comando do CRM",
	Long: `Operações administrativas do CRM executadas direto contra o banco.

Comandos disponíveis:
  migrate     - aplica o schema e cria o administrador inicial
  import      - importa um arquivo CSV ou XLSX para um tipo de registro
  score-leads - recalcula score e grade de todos os leads
  template    - escreve o modelo CSV de importação na saída padrão`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetupCLI(os.Stderr, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "habilita logs detalhados")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(scoreLeadsCmd)
	rootCmd.AddCommand(templateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// connect abre o banco com a configuração do ambiente
func connect(ctx context.Context) (*config.Config, *postgres.Connection, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	return cfg, conn, nil
}

// withApp executa fn com a aplicação montada e fecha tudo no final
func withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg, conn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	a, err := app.New(ctx, cfg, conn)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
