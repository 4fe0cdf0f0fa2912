package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/api/handler/router"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/quoting"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/internal/usecases/records/mocks"
	"github.com/vfg2006/crm-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

// serve executa a requisição no router como se o usuário estivesse autenticado
func serve(t *testing.T, routes []router.Route, claims *domain.Claims, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}

	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)
	return rec
}

var (
	salesUser  = &domain.Claims{UserID: 7, UserRoleID: domain.RoleSales}
	dealerUser = &domain.Claims{UserID: 9, UserRoleID: domain.RoleDealer}
	adminUser  = &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}
)

func leadRoutes(t *testing.T) ([]router.Route, *mocks.MockRecordService[domain.Lead]) {
	service := mocks.NewMockRecordService[domain.Lead](gomock.NewController(t))
	service.EXPECT().Kind().Return(domain.KindLead).AnyTimes()
	return Records[domain.Lead](service, SalesAccess), service
}

func TestListRecords_FiltrosDaQueryString(t *testing.T) {
	routes, service := leadRoutes(t)

	service.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter domain.ListFilter) (domain.PaginatedResponse[*domain.Lead], error) {
			assert.Equal(t, []string{"new", "contacted"}, filter.Filters["status"])
			assert.Equal(t, "asha", filter.Search)
			assert.Equal(t, "score", filter.SortBy)
			assert.True(t, filter.SortDesc)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, domain.DefaultPageSize, filter.PageSize)
			require.NotNil(t, filter.OwnerID)
			assert.Equal(t, 7, *filter.OwnerID)
			assert.NotContains(t, filter.Filters, "owner")

			leads := []*domain.Lead{{Base: domain.Base{ID: "lead-1"}, FirstName: "Asha"}}
			return domain.NewPaginatedResponse(leads, 21, filter), nil
		})

	rec := serve(t, routes, salesUser, http.MethodGet, "/v1/leads?status=new,contacted&q=asha&sort=score&order=desc&page=2&owner=me", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalRows":21`)
	assert.Contains(t, rec.Body.String(), `"first_name":"Asha"`)
}

func TestCreateRecord_AtribuiDono(t *testing.T) {
	routes, service := leadRoutes(t)

	service.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lead *domain.Lead) (*domain.Lead, error) {
			require.NotNil(t, lead.OwnerID)
			assert.Equal(t, 9, *lead.OwnerID)
			assert.Equal(t, "Asha", lead.FirstName)
			lead.ID = "lead-1"
			return lead, nil
		})

	rec := serve(t, routes, dealerUser, http.MethodPost, "/v1/leads", `{"first_name":"Asha","company":"State University"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"lead-1"`)
}

func TestCreateRecord_CorpoInvalido(t *testing.T) {
	routes, _ := leadRoutes(t)

	rec := serve(t, routes, salesUser, http.MethodPost, "/v1/leads", `{"first_name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"VAL_001"`)
}

func TestCreateRecord_ErroDeValidacao(t *testing.T) {
	routes, service := leadRoutes(t)

	fields := []domain.FieldError{{Field: "company", Reason: domain.ReasonRequired}}
	service.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, records.NewRecordError(records.ErrValidation, "VAL_002", domain.KindLead, fields))

	rec := serve(t, routes, salesUser, http.MethodPost, "/v1/leads", `{"first_name":"Asha"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"VAL_002"`)
	assert.Contains(t, rec.Body.String(), `"company"`)
}

func TestGetRecord(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "encontrado", wantStatus: http.StatusOK, wantBody: `"id":"lead-1"`},
		{name: "não encontrado", err: records.NotFound(domain.KindLead, "lead-1"), wantStatus: http.StatusNotFound, wantBody: `"REC_001"`},
		{name: "erro inesperado", err: errors.New("conexão perdida"), wantStatus: http.StatusInternalServerError, wantBody: `"SRV_001"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, service := leadRoutes(t)

			var lead *domain.Lead
			if tt.err == nil {
				lead = &domain.Lead{Base: domain.Base{ID: "lead-1"}}
			}
			service.EXPECT().Get(gomock.Any(), "lead-1").Return(lead, tt.err)

			rec := serve(t, routes, salesUser, http.MethodGet, "/v1/leads/lead-1", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestUpdateRecord_AplicaCorpoSobreORegistro(t *testing.T) {
	routes, service := leadRoutes(t)

	stored := &domain.Lead{Base: domain.Base{ID: "lead-1"}, FirstName: "Asha", Company: "State University", Status: domain.LeadStatusNew}
	service.EXPECT().
		Update(gomock.Any(), "lead-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, apply func(*domain.Lead) error) (*domain.Lead, error) {
			return stored, apply(stored)
		})

	rec := serve(t, routes, salesUser, http.MethodPut, "/v1/leads/lead-1", `{"status":"qualified"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.LeadStatusQualified, stored.Status)
	assert.Equal(t, "Asha", stored.FirstName)
}

func TestUpdateRecord_CorpoVazio(t *testing.T) {
	routes, _ := leadRoutes(t)

	rec := serve(t, routes, salesUser, http.MethodPut, "/v1/leads/lead-1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteRecord_Permissoes(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{"vendedor não remove", salesUser, http.StatusForbidden},
		{"revendedor não remove", dealerUser, http.StatusForbidden},
		{"admin remove", adminUser, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, service := leadRoutes(t)
			if tt.wantStatus == http.StatusNoContent {
				service.EXPECT().Delete(gomock.Any(), "lead-1").Return(nil)
			}

			rec := serve(t, routes, tt.claims, http.MethodDelete, "/v1/leads/lead-1", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRecords_PosVendaNaoAcessaVendas(t *testing.T) {
	routes, _ := leadRoutes(t)

	rec := serve(t, routes, &domain.Claims{UserID: 4, UserRoleID: domain.RoleService}, http.MethodGet, "/v1/leads", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateRecord_ItensDaCotacaoSaoSubstituidos(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockRecordService[domain.Quotation](ctrl)
	service.EXPECT().Kind().Return(domain.KindQuotation).AnyTimes()

	products := mocks.NewMockRecordService[domain.Product](ctrl)
	products.EXPECT().Get(gomock.Any(), "prod-new").Return(&domain.Product{Name: "Centrífuga", UnitPrice: 1000, TaxRate: 5}, nil)

	oldProduct := "prod-old"
	stored := &domain.Quotation{
		Base:      domain.Base{ID: "qt-1"},
		Number:    "QT-0001",
		AccountID: "acc-1",
		Status:    domain.QuotationStatusDraft,
		Notes:     "entrega em 30 dias",
		Items: domain.QuotationItems{{
			ProductID:       &oldProduct,
			Description:     "Old microscope",
			Quantity:        1,
			UnitPrice:       85000,
			TaxRate:         18,
			DiscountPercent: 10,
		}},
	}

	service.EXPECT().
		Update(gomock.Any(), "qt-1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, apply func(*domain.Quotation) error) (*domain.Quotation, error) {
			if err := apply(stored); err != nil {
				return nil, err
			}
			return stored, quoting.NewService(products).Hook(ctx, stored, time.Now())
		})

	rec := serve(t, Records[domain.Quotation](service, SalesAccess), salesUser, http.MethodPut, "/v1/quotations/qt-1",
		`{"items":[{"product_id":"prod-new","quantity":2}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stored.Items, 1)
	item := stored.Items[0]
	assert.Equal(t, "Centrífuga", item.Description)
	assert.Equal(t, 1000.0, item.UnitPrice)
	assert.Equal(t, 5.0, item.TaxRate)
	assert.Zero(t, item.DiscountPercent)
	assert.InDelta(t, 2100, stored.GrandTotal, 0.001)
	assert.Equal(t, "entrega em 30 dias", stored.Notes)
	assert.Equal(t, "acc-1", stored.AccountID)
}

func TestListRecords_FiltroPorDono(t *testing.T) {
	routes, service := leadRoutes(t)

	service.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter domain.ListFilter) (domain.PaginatedResponse[*domain.Lead], error) {
			assert.Equal(t, []string{"5"}, filter.Filters["owner_id"])
			assert.Nil(t, filter.OwnerID)
			return domain.NewPaginatedResponse([]*domain.Lead{}, 0, filter), nil
		})

	rec := serve(t, routes, salesUser, http.MethodGet, "/v1/leads?owner_id=5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
