package handler

import (
	"net/http"

	"github.com/vfg2006/crm-api/internal/api/handler/router"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/internal/usecases/contracts"
	"github.com/vfg2006/crm-api/internal/usecases/documents"
	"github.com/vfg2006/crm-api/internal/usecases/importing"
	"github.com/vfg2006/crm-api/internal/usecases/insighting"
	"github.com/vfg2006/crm-api/internal/usecases/leads"
	"github.com/vfg2006/crm-api/internal/usecases/navigation"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/internal/usecases/servicedesk"
	"github.com/vfg2006/crm-api/pkg/middleware"
)

type Middleware = func(http.Handler) http.Handler

// Access define quais perfis leem, escrevem e removem registros de um tipo
type Access struct {
	Read   Middleware
	Write  Middleware
	Delete Middleware
}

var (
	SalesAccess = Access{
		Read:   middleware.SalesAndDealers(),
		Write:  middleware.SalesAndDealers(),
		Delete: middleware.Managers(),
	}
	ServiceAccess = Access{
		Read:   middleware.AllRoles(),
		Write:  middleware.Service(),
		Delete: middleware.Managers(),
	}
	CatalogAccess = Access{
		Read:   middleware.AllRoles(),
		Write:  middleware.Managers(),
		Delete: middleware.Managers(),
	}
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// Records monta o CRUD padrão de um tipo em /v1/<kind>
func Records[T any](service records.RecordService[T], access Access) []router.Route {
	collection := "/v1/" + string(service.Kind())
	item := collection + "/:id"

	return []router.Route{
		{
			Path:        collection,
			Method:      http.MethodGet,
			Handler:     ListRecords(service),
			Middlewares: []Middleware{access.Read},
		},
		{
			Path:        collection,
			Method:      http.MethodPost,
			Handler:     CreateRecord(service),
			Middlewares: []Middleware{access.Write},
		},
		{
			Path:        item,
			Method:      http.MethodGet,
			Handler:     GetRecord(service),
			Middlewares: []Middleware{access.Read},
		},
		{
			Path:        item,
			Method:      http.MethodPut,
			Handler:     UpdateRecord(service),
			Middlewares: []Middleware{access.Write},
		},
		{
			Path:        item,
			Method:      http.MethodDelete,
			Handler:     DeleteRecord(service),
			Middlewares: []Middleware{access.Delete},
		},
	}
}

func Leads(service leads.LeadService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/leads/:id/convert",
			Method:      http.MethodPost,
			Handler:     ConvertLead(service),
			Middlewares: []Middleware{middleware.SalesAndDealers()},
		},
		{
			Path:        "/v1/leads/:id/score",
			Method:      http.MethodGet,
			Handler:     GetLeadScore(service),
			Middlewares: []Middleware{middleware.SalesAndDealers()},
		},
		{
			Path:        "/v1/scoring/leads",
			Method:      http.MethodPost,
			Handler:     ScoreAllLeads(service),
			Middlewares: []Middleware{middleware.Managers()},
		},
	}
}

func ServiceDesk(service servicedesk.ServiceDesk) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cases/:id/resolve",
			Method:      http.MethodPost,
			Handler:     ResolveCase(service),
			Middlewares: []Middleware{middleware.Service()},
		},
		{
			Path:        "/v1/cases/:id/solutions",
			Method:      http.MethodGet,
			Handler:     ListCaseSolutions(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/complaints/:id/escalate",
			Method:      http.MethodPost,
			Handler:     EscalateComplaint(service),
			Middlewares: []Middleware{middleware.Service()},
		},
	}
}

func AMC(service contracts.ContractService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/amc-contracts/:id/schedule",
			Method:      http.MethodGet,
			Handler:     GetAMCSchedule(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/amc-contracts/:id/renew",
			Method:      http.MethodPost,
			Handler:     RenewAMCContract(service),
			Middlewares: []Middleware{middleware.Service()},
		},
	}
}

func Imports(service importing.Importer, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/imports/:entity",
			Method:      http.MethodPost,
			Handler:     ImportFile(service, maxUploadBytes),
			Middlewares: []Middleware{middleware.Managers()},
		},
		{
			Path:        "/v1/templates/:entity",
			Method:      http.MethodGet,
			Handler:     DownloadTemplate(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/exports/:entity",
			Method:      http.MethodGet,
			Handler:     ExportRecords(service),
			Middlewares: []Middleware{middleware.Managers()},
		},
	}
}

func Documents(service documents.DocumentService, maxSize int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/documents",
			Method:      http.MethodPost,
			Handler:     UploadDocument(service, maxSize),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/documents",
			Method:      http.MethodGet,
			Handler:     ListDocuments(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/documents/:id/download",
			Method:      http.MethodGet,
			Handler:     DownloadDocument(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/documents/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteDocument(service),
			Middlewares: []Middleware{middleware.Managers()},
		},
	}
}

func Insights(service insighting.CombinedInsighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/follow-ups",
			Method:      http.MethodGet,
			Handler:     GetFollowUps(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/leads",
			Method:      http.MethodGet,
			Handler:     GetTopLeads(service),
			Middlewares: []Middleware{middleware.SalesAndDealers()},
		},
	}
}

func Navigation(service navigation.Navigator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/navigation",
			Method:      http.MethodGet,
			Handler:     GetNavigation(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []Middleware{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron-status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []Middleware{middleware.Managers()},
		},
	}
}
