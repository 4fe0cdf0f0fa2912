package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/internal/usecases/importing"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/log"
	"github.com/vfg2006/crm-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Parâmetros de listagem que não são filtros de coluna
var reservedParams = map[string]struct{}{
	"q": {}, "search": {}, "sort": {}, "order": {}, "page": {}, "page_size": {}, "owner": {},
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return io.EOF
	}
	return json.NewDecoder(r.Body).Decode(dest)
}

func param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// writeServiceError converte os erros tipados dos casos de uso no formato padrão da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger := log.ForContext(r.Context())

	var recordErr *records.RecordError
	if errors.As(err, &recordErr) {
		logger.WithRecord(string(recordErr.Kind), recordErr.RecordID).WithError(err).Warn(message)
		apiErrors.WriteError(w, recordErr.Code, recordErr.Error(), recordErr.Details)
		return
	}

	var importErr *importing.ImportError
	if errors.As(err, &importErr) {
		logger.WithError(err).Warn(message)
		apiErrors.WriteError(w, importErr.Code, importErr.Error(), importErr.Details)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		logger.WithError(err).Warn(message)
		apiErrors.WriteError(w, authErr.Code, authErr.Details, nil)
		return
	}

	logger.WithError(err).Error(message)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}

// listFilter lê busca, ordenação, paginação e filtros de coluna da query string
func listFilter(r *http.Request) domain.ListFilter {
	query := r.URL.Query()

	filter := domain.ListFilter{
		Search:   strings.TrimSpace(firstNonEmpty(query.Get("q"), query.Get("search"))),
		SortBy:   query.Get("sort"),
		SortDesc: strings.EqualFold(query.Get("order"), "desc"),
		Filters:  map[string][]string{},
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.PageSize, _ = strconv.Atoi(query.Get("page_size"))

	for key, values := range query {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					filter.Filters[key] = append(filter.Filters[key], part)
				}
			}
		}
	}

	if query.Get("owner") == "me" {
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			ownerID := claims.UserID
			filter.OwnerID = &ownerID
		}
	}

	filter.Normalize()
	return filter
}

func currentUserID(r *http.Request) int {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.UserID
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
