package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/servicedesk"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

// ResolveCase encerra o case vinculando uma solução existente ou criando uma nova
func ResolveCase(service servicedesk.ServiceDesk) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ResolveCase")

		var req domain.ResolveCaseRequest
		if err := decodeJSON(r, &req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		resolution, err := service.ResolveCase(r.Context(), param(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao resolver case")
			return
		}

		writeJSON(w, http.StatusOK, resolution)
	}
}

func ListCaseSolutions(service servicedesk.ServiceDesk) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		solutions, err := service.CaseSolutions(r.Context(), param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar soluções do case")
			return
		}

		writeJSON(w, http.StatusOK, solutions)
	}
}

func EscalateComplaint(service servicedesk.ServiceDesk) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - EscalateComplaint")

		var req domain.EscalateComplaintRequest
		if err := decodeJSON(r, &req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		complaint, err := service.EscalateComplaint(r.Context(), param(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao escalar reclamação")
			return
		}

		writeJSON(w, http.StatusOK, complaint)
	}
}
