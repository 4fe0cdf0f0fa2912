package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/middleware"
)

// userIDParam lê o :id numérico da rota e já responde VAL_003 quando inválido
func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(param(r, "id"))
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
		return 0, false
	}
	return id, true
}

func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar usuário")
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// CreateUser cadastra vendedores, gerentes, pós-venda e revendedores; perfil padrão é vendas
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user domain.User
		if err := decodeJSON(r, &user); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if user.RoleID != 0 && !domain.ValidRole(user.RoleID) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Perfil de acesso inválido", map[string]int{"role_id": user.RoleID})
			return
		}

		created, err := service.CreateUser(r.Context(), &user)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar usuário")
			return
		}

		writeJSON(w, http.StatusCreated, newUserResponse(created))
	}
}

// ListUsers aceita ?role=dealer (ou outro nome de perfil) para montar os seletores de dono
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar usuários")
			return
		}

		role := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role")))

		out := make([]userResponse, 0, len(users))
		for _, u := range users {
			if role != "" && domain.RoleName(u.RoleID) != role {
				continue
			}
			out = append(out, newUserResponse(u))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// UpdateUser: cada um edita o próprio perfil; perfil de acesso e revenda só o administrador muda
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())
		isAdmin := claims != nil && claims.UserRoleID == domain.RoleAdmin
		if claims == nil || (claims.UserID != id && !isAdmin) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para editar este usuário", nil)
			return
		}

		var req domain.UpdateUserRequest
		if err := decodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		if !isAdmin && (req.RoleID != nil || req.DealerID != nil || req.Active != nil || req.Deleted != nil) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem alterar perfil, revenda ou situação da conta", nil)
			return
		}

		if err := service.UpdateUser(r.Context(), &req); err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar usuário")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
