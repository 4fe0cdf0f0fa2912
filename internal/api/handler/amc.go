package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/contracts"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

// GetAMCSchedule retorna as parcelas de cobrança do contrato
func GetAMCSchedule(service contracts.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedule, err := service.Schedule(r.Context(), param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular parcelas do contrato")
			return
		}

		writeJSON(w, http.StatusOK, schedule)
	}
}

// RenewAMCContract aceita corpo vazio, mantendo valor e duração do contrato anterior
func RenewAMCContract(service contracts.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RenewAMCContract")

		var req domain.RenewAMCRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		renewed, err := service.Renew(r.Context(), param(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao renovar contrato")
			return
		}

		writeJSON(w, http.StatusCreated, renewed)
	}
}
