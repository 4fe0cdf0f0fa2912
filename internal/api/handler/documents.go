package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/documents"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

// UploadDocument recebe entity, entity_id e file em multipart
func UploadDocument(service documents.DocumentService, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UploadDocument")

		if maxSize > 0 {
			// margem para os demais campos do formulário
			r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartMemory)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo inválido ou acima do limite", map[string]int64{"max_size": maxSize})
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler arquivo", nil)
			return
		}

		doc, err := service.Upload(r.Context(), documents.UploadRequest{
			Entity:      domain.Kind(r.FormValue("entity")),
			EntityID:    r.FormValue("entity_id"),
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
			UploadedBy:  currentUserID(r),
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao enviar documento")
			return
		}

		writeJSON(w, http.StatusCreated, doc)
	}
}

func ListDocuments(service documents.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		entity := query.Get("entity")
		if entity == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro entity é obrigatório", nil)
			return
		}

		docs, err := service.List(r.Context(), domain.Kind(entity), query.Get("entity_id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar documentos")
			return
		}

		writeJSON(w, http.StatusOK, docs)
	}
}

// DownloadDocument envia o conteúdo do arquivo como anexo
func DownloadDocument(service documents.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := service.Download(r.Context(), param(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao baixar documento")
			return
		}

		w.Header().Set("Content-Type", doc.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
		w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
		if _, err := w.Write(doc.Content); err != nil {
			logrus.WithError(err).Error("Erro ao enviar documento")
		}
	}
}

func DeleteDocument(service documents.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteDocument")

		if err := service.Delete(r.Context(), param(r, "id")); err != nil {
			writeServiceError(w, r, err, "Erro ao remover documento")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
