package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/importing"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/middleware"
)

const multipartMemory = 8 << 20

// ImportFile recebe um arquivo .csv ou .xlsx no campo "file" e cria um registro por linha
func ImportFile(service importing.Importer, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ImportFile")

		kind := domain.Kind(param(r, "entity"))
		if _, err := service.Schema(kind); err != nil {
			writeServiceError(w, r, err, "Tipo de registro desconhecido")
			return
		}

		if maxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo inválido ou acima do limite", map[string]int64{"max_size": maxUploadBytes})
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		// importar em nome de outro dono é exclusivo do administrador
		ownerID := currentUserID(r)
		if raw := r.FormValue("owner_id"); raw != "" {
			claims, _ := middleware.ClaimsFromContext(r.Context())
			if claims == nil || claims.UserRoleID != domain.RoleAdmin {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem importar em nome de outro usuário", nil)
				return
			}
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "owner_id inválido", map[string]string{"owner_id": raw})
				return
			}
			ownerID = id
		}

		result, err := service.Import(r.Context(), kind, header.Filename, file, ownerID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao importar arquivo")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// DownloadTemplate devolve o cabeçalho CSV esperado com uma linha de exemplo
func DownloadTemplate(service importing.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := domain.Kind(param(r, "entity"))

		var buf bytes.Buffer
		if err := service.Template(kind, &buf); err != nil {
			writeServiceError(w, r, err, "Erro ao gerar template")
			return
		}

		w.Header().Set("Content-Type", importing.ContentTypeCSV)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(kind)+"-template.csv"))
		if _, err := w.Write(buf.Bytes()); err != nil {
			logrus.WithError(err).Error("Erro ao enviar template")
		}
	}
}

// ExportRecords gera uma planilha com a listagem filtrada
func ExportRecords(service importing.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ExportRecords")

		kind := domain.Kind(param(r, "entity"))

		var buf bytes.Buffer
		if err := service.Export(r.Context(), kind, listFilter(r), &buf); err != nil {
			writeServiceError(w, r, err, "Erro ao exportar registros")
			return
		}

		w.Header().Set("Content-Type", importing.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(kind)+".xlsx"))
		if _, err := w.Write(buf.Bytes()); err != nil {
			logrus.WithError(err).Error("Erro ao enviar planilha")
		}
	}
}
