package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/crm-api/internal/usecases/insighting"
	"github.com/vfg2006/crm-api/internal/usecases/navigation"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/middleware"
)

func GetDashboard(service insighting.DashboardInsighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.Dashboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar dashboard")
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	}
}

// GetFollowUps retorna as ações sugeridas para leads, cases e contratos
func GetFollowUps(service insighting.FollowUpInsighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actions, err := service.FollowUps(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar ações sugeridas")
			return
		}

		writeJSON(w, http.StatusOK, actions)
	}
}

func GetTopLeads(service insighting.FollowUpInsighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		insights, err := service.TopLeads(r.Context(), limit)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar leads")
			return
		}

		writeJSON(w, http.StatusOK, insights)
	}
}

// GetNavigation devolve o menu do perfil do usuário autenticado
func GetNavigation(service navigation.Navigator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		nav, err := service.ForRole(claims.UserRoleID)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, err.Error(), nil)
			return
		}

		writeJSON(w, http.StatusOK, nav)
	}
}
