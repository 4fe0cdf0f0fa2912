package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	Events      Events      `mapstructure:",squash"`
	Import      Import      `mapstructure:",squash"`
	Documents   Documents   `mapstructure:",squash"`
	LeadScoring LeadScoring `mapstructure:",squash"`
	AMCRenewal  AMCRenewal  `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// uploads de importação e documentos precisam de uma janela de escrita maior
	WriteTimeout    time.Duration `mapstructure:"server_write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"server_shutdown_timeout"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Redis struct {
	Addr         string        `mapstructure:"redis_addr"`
	Password     string        `mapstructure:"redis_password"`
	DB           int           `mapstructure:"redis_db"`
	DashboardTTL time.Duration `mapstructure:"redis_dashboard_ttl"`
}

type Events struct {
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"amqp_exchange"`
}

type Import struct {
	MaxUploadBytes int64 `mapstructure:"import_max_upload_bytes"`
	MaxRows        int   `mapstructure:"import_max_rows"`
}

type Documents struct {
	MaxSizeBytes int64 `mapstructure:"documents_max_size_bytes"`
}

type LeadScoring struct {
	CronSchedule string `mapstructure:"lead_scoring_cron"`
	Enabled      bool   `mapstructure:"lead_scoring_enabled"`
	BatchSize    int    `mapstructure:"lead_scoring_batch_size"`
}

type AMCRenewal struct {
	CronSchedule       string `mapstructure:"amc_renewal_cron"`
	Enabled            bool   `mapstructure:"amc_renewal_enabled"`
	ReminderDays       int    `mapstructure:"amc_renewal_reminder_days"`
	InstallmentFormula string `mapstructure:"amc_installment_formula"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "60s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/crm?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	// Redis e RabbitMQ são opcionais, vazio desativa
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_DASHBOARD_TTL", "5m")

	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "crm.events")

	viper.SetDefault("IMPORT_MAX_UPLOAD_BYTES", 10<<20) // 10MB
	viper.SetDefault("IMPORT_MAX_ROWS", 5000)
	viper.SetDefault("DOCUMENTS_MAX_SIZE_BYTES", 20<<20) // 20MB

	// Recalculo de score dos leads
	viper.SetDefault("LEAD_SCORING_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("LEAD_SCORING_ENABLED", false)
	viper.SetDefault("LEAD_SCORING_BATCH_SIZE", 100)

	// Varredura de contratos AMC
	viper.SetDefault("AMC_RENEWAL_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("AMC_RENEWAL_ENABLED", false)
	viper.SetDefault("AMC_RENEWAL_REMINDER_DAYS", 30)
	viper.SetDefault("AMC_INSTALLMENT_FORMULA", "contract_value / installments")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
