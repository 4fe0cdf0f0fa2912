// Package app monta repositórios, serviços e agendadores compartilhados pela API e pelo crmctl
package app

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/cache"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/infrastructure/events"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/scheduler"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/internal/usecases/contracts"
	"github.com/vfg2006/crm-api/internal/usecases/documents"
	"github.com/vfg2006/crm-api/internal/usecases/importing"
	"github.com/vfg2006/crm-api/internal/usecases/insighting"
	"github.com/vfg2006/crm-api/internal/usecases/leads"
	"github.com/vfg2006/crm-api/internal/usecases/navigation"
	"github.com/vfg2006/crm-api/internal/usecases/quoting"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/internal/usecases/servicedesk"
)

// Records reúne o serviço de CRUD de cada tipo de registro
type Records struct {
	Leads        *records.Service[domain.Lead, *domain.Lead]
	Accounts     *records.Service[domain.Account, *domain.Account]
	Contacts     *records.Service[domain.Contact, *domain.Contact]
	Deals        *records.Service[domain.Deal, *domain.Deal]
	Products     *records.Service[domain.Product, *domain.Product]
	Quotations   *records.Service[domain.Quotation, *domain.Quotation]
	Cases        *records.Service[domain.Case, *domain.Case]
	Solutions    *records.Service[domain.Solution, *domain.Solution]
	Complaints   *records.Service[domain.Complaint, *domain.Complaint]
	AMCContracts *records.Service[domain.AMCContract, *domain.AMCContract]
	Dealers      *records.Service[domain.Dealer, *domain.Dealer]
	Projects     *records.Service[domain.Project, *domain.Project]
}

// Tables devolve a visão sem tipo usada por importação e exportação
func (r Records) Tables() []records.Table {
	return []records.Table{
		r.Leads, r.Accounts, r.Contacts, r.Deals, r.Products, r.Quotations,
		r.Cases, r.Solutions, r.Complaints, r.AMCContracts, r.Dealers, r.Projects,
	}
}

type App struct {
	Config    *config.Config
	Conn      *postgres.Connection
	Cache     cache.Cache
	Publisher events.Publisher

	Records       Records
	Authenticator authenticating.Authenticator
	Leads         *leads.Service
	Contracts     *contracts.Service
	ServiceDesk   *servicedesk.Service
	Importer      *importing.Service
	Documents     *documents.Service
	Navigator     *navigation.Service
	Insights      insighting.CombinedInsighter

	LeadScoringSync *scheduler.LeadScoringSyncService
	AMCRenewal      *scheduler.AMCRenewalService
}

// New monta toda a árvore de dependências sobre uma conexão já aberta
func New(ctx context.Context, cfg *config.Config, conn *postgres.Connection) (*App, error) {
	c := cache.New(ctx, cfg.Redis)
	publisher := events.New(cfg.Events)

	leadRepo := repository.NewRecordRepository[domain.Lead](conn, domain.KindLead)
	accountRepo := repository.NewRecordRepository[domain.Account](conn, domain.KindAccount)
	contactRepo := repository.NewRecordRepository[domain.Contact](conn, domain.KindContact)
	dealRepo := repository.NewRecordRepository[domain.Deal](conn, domain.KindDeal)
	productRepo := repository.NewRecordRepository[domain.Product](conn, domain.KindProduct)
	quotationRepo := repository.NewRecordRepository[domain.Quotation](conn, domain.KindQuotation)
	caseRepo := repository.NewRecordRepository[domain.Case](conn, domain.KindCase)
	solutionRepo := repository.NewRecordRepository[domain.Solution](conn, domain.KindSolution)
	complaintRepo := repository.NewRecordRepository[domain.Complaint](conn, domain.KindComplaint)
	contractRepo := repository.NewRecordRepository[domain.AMCContract](conn, domain.KindAMCContract)
	dealerRepo := repository.NewRecordRepository[domain.Dealer](conn, domain.KindDealer)
	projectRepo := repository.NewRecordRepository[domain.Project](conn, domain.KindProject)

	products := records.NewService[domain.Product, *domain.Product](domain.KindProduct, productRepo, c, publisher)
	quoter := quoting.NewService(products)

	recs := Records{
		Leads: records.NewService[domain.Lead, *domain.Lead](domain.KindLead, leadRepo, c, publisher,
			records.WithHook[domain.Lead, *domain.Lead](leads.ScoreHook)),
		Accounts: records.NewService[domain.Account, *domain.Account](domain.KindAccount, accountRepo, c, publisher),
		Contacts: records.NewService[domain.Contact, *domain.Contact](domain.KindContact, contactRepo, c, publisher),
		Deals:    records.NewService[domain.Deal, *domain.Deal](domain.KindDeal, dealRepo, c, publisher),
		Products: products,
		Quotations: records.NewService[domain.Quotation, *domain.Quotation](domain.KindQuotation, quotationRepo, c, publisher,
			records.WithHook[domain.Quotation, *domain.Quotation](quoter.Hook)),
		Cases:        records.NewService[domain.Case, *domain.Case](domain.KindCase, caseRepo, c, publisher),
		Solutions:    records.NewService[domain.Solution, *domain.Solution](domain.KindSolution, solutionRepo, c, publisher),
		Complaints:   records.NewService[domain.Complaint, *domain.Complaint](domain.KindComplaint, complaintRepo, c, publisher),
		AMCContracts: records.NewService[domain.AMCContract, *domain.AMCContract](domain.KindAMCContract, contractRepo, c, publisher),
		Dealers:      records.NewService[domain.Dealer, *domain.Dealer](domain.KindDealer, dealerRepo, c, publisher),
		Projects:     records.NewService[domain.Project, *domain.Project](domain.KindProject, projectRepo, c, publisher),
	}

	planner, err := contracts.NewPlanner(cfg.AMCRenewal.InstallmentFormula)
	if err != nil {
		return nil, err
	}

	navigator, err := navigation.NewService()
	if err != nil {
		return nil, err
	}

	leadService := leads.NewService(recs.Leads, recs.Accounts, recs.Contacts, recs.Deals, leadRepo, c, publisher, cfg.LeadScoring.BatchSize)
	contractService := contracts.NewService(recs.AMCContracts, contractRepo, planner, c, publisher, cfg.AMCRenewal.ReminderDays)

	insights := insighting.NewService(insighting.Repositories{
		Leads:        leadRepo,
		Cases:        caseRepo,
		Complaints:   complaintRepo,
		Deals:        dealRepo,
		AMCContracts: contractRepo,
		Counters: map[domain.Kind]insighting.Counter{
			domain.KindLead:        leadRepo,
			domain.KindAccount:     accountRepo,
			domain.KindContact:     contactRepo,
			domain.KindDeal:        dealRepo,
			domain.KindProduct:     productRepo,
			domain.KindQuotation:   quotationRepo,
			domain.KindCase:        caseRepo,
			domain.KindSolution:    solutionRepo,
			domain.KindComplaint:   complaintRepo,
			domain.KindAMCContract: contractRepo,
			domain.KindDealer:      dealerRepo,
			domain.KindProject:     projectRepo,
		},
	}, c, cfg.Redis.DashboardTTL, cfg.AMCRenewal.ReminderDays)

	logrus.Info("Serviços do CRM inicializados")

	return &App{
		Config:    cfg,
		Conn:      conn,
		Cache:     c,
		Publisher: publisher,

		Records:       recs,
		Authenticator: authenticating.NewService(repository.NewUserRepository(conn), cfg),
		Leads:         leadService,
		Contracts:     contractService,
		ServiceDesk:   servicedesk.NewService(recs.Cases, recs.Solutions, recs.Complaints, publisher),
		Importer:      importing.NewService(recs.Tables(), publisher, cfg.Import),
		Documents:     documents.NewService(repository.NewDocumentRepository(conn), cfg.Documents),
		Navigator:     navigator,
		Insights:      insights,

		LeadScoringSync: scheduler.NewLeadScoringSyncService(leadService, cfg),
		AMCRenewal:      scheduler.NewAMCRenewalService(contractService, cfg),
	}, nil
}

// Close libera as conexões com o broker e o cache
func (a *App) Close() {
	if err := a.Publisher.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar publisher de eventos")
	}
	if closer, ok := a.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar cache")
		}
	}
}
