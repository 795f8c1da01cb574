package api

import (
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ExportHandler triggers snapshot exports.
type ExportHandler struct {
	exportService service.ExportService
	logger        logrus.FieldLogger
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logging.NewModuleLogger("export-handler"),
	}
}

// CreateExport handles POST /exports.
func (h *ExportHandler) CreateExport(c *gin.Context) {
	result, err := h.exportService.Export(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportDisabled) {
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		} else {
			abortWithInternalError(c, h.logger, err, "Failed to export snapshot.")
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}
