package handler

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

// ListRecords lista registros com filtros, busca e paginação
func ListRecords[T any](service records.RecordService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.List(r.Context(), listFilter(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar "+string(service.Kind()))
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func GetRecord[T any](service records.RecordService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := service.Get(r.Context(), param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar "+string(service.Kind()))
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

// CreateRecord cria o registro; o usuário autenticado vira o dono quando o corpo não informa um
func CreateRecord[T any](service records.RecordService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Infof("INIT - Create %s", service.Kind())

		rec := new(T)
		if err := decodeJSON(r, rec); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if owned, ok := any(rec).(domain.Owned); ok {
			owned.AssignOwner(currentUserID(r))
		}

		created, err := service.Create(r.Context(), rec)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar "+string(service.Kind()))
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateRecord aplica o corpo JSON sobre o registro armazenado
func UpdateRecord[T any](service records.RecordService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Infof("INIT - Update %s", service.Kind())

		body, err := io.ReadAll(r.Body)
		if err != nil || len(body) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		updated, err := service.Update(r.Context(), param(r, "id"), func(rec *T) error {
			return mergeBody(rec, body)
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar "+string(service.Kind()))
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

// mergeBody troca no registro apenas as chaves de primeiro nível presentes no corpo.
// Listas como os itens da cotação são substituídas inteiras, nunca mescladas elemento a elemento.
func mergeBody[T any](rec *T, body []byte) error {
	var patch map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &patch); err != nil {
		return err
	}

	stored, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	merged := map[string]jsoniter.RawMessage{}
	if err := json.Unmarshal(stored, &merged); err != nil {
		return err
	}
	for key, value := range patch {
		merged[key] = value
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return err
	}

	var fresh T
	if err := json.Unmarshal(raw, &fresh); err != nil {
		return err
	}
	*rec = fresh
	return nil
}

func DeleteRecord[T any](service records.RecordService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Infof("INIT - Delete %s", service.Kind())

		if err := service.Delete(r.Context(), param(r, "id")); err != nil {
			writeServiceError(w, r, err, "Erro ao remover "+string(service.Kind()))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
