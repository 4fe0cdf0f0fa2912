package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/api/handler"
	"github.com/vfg2006/crm-api/internal/api/handler/router"
	"github.com/vfg2006/crm-api/internal/app"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/middleware"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 15 * time.Second

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// Routes monta todas as rotas da API sobre os serviços da aplicação
func Routes(a *app.App) router.Router {
	recs := a.Records
	cronServices := handler.CronJobServices{
		LeadScoringSyncService: a.LeadScoringSync,
		AMCRenewalService:      a.AMCRenewal,
	}

	return router.New(
		router.WithRoutes(handler.Healthcheck(a.Conn)...),
		router.WithRoutes(handler.Authentication(a.Authenticator)...),
		router.WithRoutes(handler.User(a.Authenticator)...),

		router.WithRoutes(handler.Records[domain.Lead](recs.Leads, handler.SalesAccess)...),
		router.WithRoutes(handler.Records[domain.Account](recs.Accounts, handler.SalesAccess)...),
		router.WithRoutes(handler.Records[domain.Contact](recs.Contacts, handler.SalesAccess)...),
		router.WithRoutes(handler.Records[domain.Deal](recs.Deals, handler.SalesAccess)...),
		router.WithRoutes(handler.Records[domain.Quotation](recs.Quotations, handler.SalesAccess)...),
		router.WithRoutes(handler.Records[domain.Product](recs.Products, handler.CatalogAccess)...),
		router.WithRoutes(handler.Records[domain.Dealer](recs.Dealers, handler.CatalogAccess)...),
		router.WithRoutes(handler.Records[domain.Project](recs.Projects, handler.CatalogAccess)...),
		router.WithRoutes(handler.Records[domain.Case](recs.Cases, handler.ServiceAccess)...),
		router.WithRoutes(handler.Records[domain.Solution](recs.Solutions, handler.ServiceAccess)...),
		router.WithRoutes(handler.Records[domain.Complaint](recs.Complaints, handler.ServiceAccess)...),
		router.WithRoutes(handler.Records[domain.AMCContract](recs.AMCContracts, handler.ServiceAccess)...),

		router.WithRoutes(handler.Leads(a.Leads)...),
		router.WithRoutes(handler.ServiceDesk(a.ServiceDesk)...),
		router.WithRoutes(handler.AMC(a.Contracts)...),
		router.WithRoutes(handler.Imports(a.Importer, a.Config.Import.MaxUploadBytes)...),
		router.WithRoutes(handler.Documents(a.Documents, a.Config.Documents.MaxSizeBytes)...),
		router.WithRoutes(handler.Insights(a.Insights)...),
		router.WithRoutes(handler.Navigation(a.Navigator)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)
}

func New(a *app.App) (*Server, error) {
	cfg := a.Config

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(a.Authenticator),
	}

	routes := Routes(a)
	logrus.WithField("routes", len(routes.Routes())).Debug("Rotas registradas")
	for _, route := range routes.Routes() {
		logrus.Debug(route)
	}

	handler := alice.New(middlewares...).Then(routes)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      cfg.Server.WriteTimeout,
		},
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	return srv, nil
}

// Run atende até o contexto ser cancelado e então drena as requisições em andamento
func (s Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("servidor http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		logrus.WithField("timeout", s.shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")
		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Servidor encerrado com erro")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
