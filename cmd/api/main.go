package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/infrastructure/migration"
	"github.com/vfg2006/crm-api/internal/api"
	"github.com/vfg2006/crm-api/internal/app"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/pkg/log"
)

// starter é implementado pelos agendadores de score de leads e de renovação AMC
type starter interface {
	Start(ctx context.Context) error
}

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// SIGINT/SIGTERM cancelam o contexto, o que também para os agendadores
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Migrate(ctx, conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migração do schema")
		}
	}

	application, err := app.New(ctx, cfg, conn)
	if err != nil {
		logrus.Fatal(err)
	}
	defer application.Close()

	jobs := []struct {
		name string
		job  starter
	}{
		{name: "lead-scoring", job: application.LeadScoringSync},
		{name: "amc-renewal", job: application.AMCRenewal},
	}
	for _, j := range jobs {
		if err := j.job.Start(ctx); err != nil {
			logrus.WithError(err).WithField("job", j.name).Error("Erro ao iniciar agendador")
		}
	}

	server, err := api.New(application)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger usa texto colorido em desenvolvimento e JSON nos demais ambientes
func configureLogger() {
	if log.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}

	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	})
}
