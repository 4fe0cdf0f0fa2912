package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/usecases/leads"
)

// ConvertLead converte o lead em conta, contato e, quando houver orçamento, oportunidade
func ConvertLead(service leads.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ConvertLead")

		conversion, err := service.Convert(r.Context(), param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao converter lead")
			return
		}

		writeJSON(w, http.StatusOK, conversion)
	}
}

func GetLeadScore(service leads.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		insight, err := service.Score(r.Context(), param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular score do lead")
			return
		}

		writeJSON(w, http.StatusOK, insight)
	}
}

// ScoreAllLeads recalcula o score de todos os leads de forma síncrona
func ScoreAllLeads(service leads.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ScoreAllLeads")

		updated, err := service.ScoreAll(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao recalcular score dos leads")
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
	}
}
