package main

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/vfg2006/crm-api/infrastructure/migration"
	"github.com/vfg2006/crm-api/internal/app"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/importing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	adminName     string
	adminEmail    string
	adminPassword string

	importEntity string
	importFile   string
	importOwner  int

	templateEntity string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica o schema do banco",
	Long: `Aplica o schema embutido em uma única transação. Os comandos são idempotentes.

Com --admin-email e --admin-password cria também o administrador inicial,
caso o e-mail ainda não exista.`,
	RunE: runMigrate,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Importa um arquivo CSV ou XLSX",
	RunE:  runImport,
}

var scoreLeadsCmd = &cobra.Command{
	Use:   "score-leads",
	Short: "Recalcula score e grade de todos os leads",
	RunE:  runScoreLeads,
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Escreve o modelo CSV de importação",
	RunE:  runTemplate,
}

func init() {
	migrateCmd.Flags().StringVar(&adminName, "admin-name", "Administrador", "nome do administrador inicial")
	migrateCmd.Flags().StringVar(&adminEmail, "admin-email", "", "e-mail do administrador inicial")
	migrateCmd.Flags().StringVar(&adminPassword, "admin-password", "", "senha do administrador inicial")

	importCmd.Flags().StringVar(&importEntity, "entity", "", "tipo de registro (leads, accounts, products...)")
	importCmd.Flags().StringVar(&importFile, "file", "", "caminho do arquivo .csv ou .xlsx")
	importCmd.Flags().IntVar(&importOwner, "owner", 0, "id do usuário dono dos registros importados")
	_ = importCmd.MarkFlagRequired("entity")
	_ = importCmd.MarkFlagRequired("file")

	templateCmd.Flags().StringVar(&templateEntity, "entity", "", "tipo de registro")
	_ = templateCmd.MarkFlagRequired("entity")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, conn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := migration.Migrate(ctx, conn); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema aplicado (%d comandos)\n", len(migration.Statements()))

	if adminEmail == "" {
		return nil
	}
	if adminPassword == "" {
		return fmt.Errorf("--admin-password é obrigatório junto com --admin-email")
	}

	created, err := migration.SeedAdmin(ctx, conn, migration.AdminSeed{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
	})
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Administrador %s criado\n", adminEmail)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Administrador %s já existe\n", adminEmail)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(importFile)
	if err != nil {
		return err
	}
	defer file.Close()

	return withApp(cmd.Context(), func(a *app.App) error {
		result, err := a.Importer.Import(cmd.Context(), domain.Kind(importEntity), importFile, file, importOwner)
		if err != nil {
			return err
		}
		return printImportResult(cmd, result)
	})
}

func printImportResult(cmd *cobra.Command, result *importing.ImportResult) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d de %d linhas falharam", result.Failed, result.Total)
	}
	return nil
}

func runScoreLeads(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app.App) error {
		updated, err := a.Leads.ScoreAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d leads atualizados\n", updated)
		return nil
	})
}

// runTemplate não acessa o banco; o modelo sai apenas do schema do tipo
func runTemplate(cmd *cobra.Command, args []string) error {
	schema, ok := domain.SchemaFor(domain.Kind(templateEntity))
	if !ok || !schema.Importable() {
		return fmt.Errorf("tipo de registro sem importação: %s", templateEntity)
	}
	return importing.WriteTemplate(cmd.OutOrStdout(), schema)
}
