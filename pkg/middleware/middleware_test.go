package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/pkg/log"
)

// stubAuthenticator implementa apenas a validação de token
type stubAuthenticator struct {
	authenticating.Authenticator
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

var noContent = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		claims     *domain.Claims
		wantStatus int
	}{
		{"sem usuário autenticado", Managers(), nil, http.StatusUnauthorized},
		{"admin acessa rota de admin", AdminOnly(), &domain.Claims{UserRoleID: domain.RoleAdmin}, http.StatusNoContent},
		{"gerente não acessa rota de admin", AdminOnly(), &domain.Claims{UserRoleID: domain.RoleManager}, http.StatusForbidden},
		{"revendedor acessa rotas comerciais", SalesAndDealers(), &domain.Claims{UserRoleID: domain.RoleDealer}, http.StatusNoContent},
		{"revendedor não acessa pós-venda", Service(), &domain.Claims{UserRoleID: domain.RoleDealer}, http.StatusForbidden},
		{"pós-venda não acessa vendas", Sales(), &domain.Claims{UserRoleID: domain.RoleService}, http.StatusForbidden},
		{"qualquer perfil válido", AllRoles(), &domain.Claims{UserRoleID: domain.RoleService}, http.StatusNoContent},
		{"perfil desconhecido", AllRoles(), &domain.Claims{UserRoleID: 99}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/leads", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(noContent).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: 7, UserRoleID: domain.RoleSales}

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		auth       stubAuthenticator
		wantStatus int
		wantCode   string
	}{
		{name: "rota pública", method: http.MethodPost, path: "/v1/login", wantStatus: http.StatusNoContent},
		{name: "preflight", method: http.MethodOptions, path: "/v1/leads", wantStatus: http.StatusNoContent},
		{name: "sem cabeçalho", method: http.MethodGet, path: "/v1/leads", wantStatus: http.StatusUnauthorized, wantCode: `"AUTH_006"`},
		{name: "sem prefixo bearer", method: http.MethodGet, path: "/v1/leads", header: "abc", wantStatus: http.StatusUnauthorized, wantCode: `"AUTH_006"`},
		{
			name: "token expirado", method: http.MethodGet, path: "/v1/leads", header: "Bearer abc",
			auth:       stubAuthenticator{err: authenticating.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized, wantCode: `"AUTH_007"`,
		},
		{
			name: "token válido", method: http.MethodGet, path: "/v1/leads", header: "Bearer abc",
			auth:       stubAuthenticator{claims: claims},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
			if tt.auth.claims != nil {
				assert.Equal(t, claims, seen)
			}
		})
	}
}

func TestLoggingMiddleware_IDDeCorrelacao(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/leads", nil)
	req.Header.Set(log.CorrelationHeader, "req-123")
	rec := httptest.NewRecorder()

	LoggingMiddleware()(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(log.CorrelationHeader))

	rec = httptest.NewRecorder()
	LoggingMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.NotEmpty(t, rec.Header().Get(log.CorrelationHeader))
	assert.Equal(t, seen, rec.Header().Get(log.CorrelationHeader))
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "leads", resourceOf("/v1/leads/lead-1"))
	assert.Equal(t, "amc-contracts", resourceOf("/v1/amc-contracts"))
	assert.Empty(t, resourceOf("/healthcheck"))
}

func TestLogPanicMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("mapa nulo")
	})
	rec := httptest.NewRecorder()

	LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/deals", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"SRV_001"`)
}

func TestCors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"preflight de origem liberada", http.MethodOptions, "https://crm.example.com", http.StatusNoContent, "https://crm.example.com"},
		{"origem desconhecida", http.MethodGet, "https://evil.example.com", http.StatusNoContent, ""},
		{"sem origem", http.MethodGet, "", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/leads", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			Cors([]string{"https://crm.example.com"})(noContent).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
