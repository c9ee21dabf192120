package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aitbenali/autoparts-backend/internal/http/response"
	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
	"github.com/aitbenali/autoparts-backend/internal/services"
)

var maxFeedUploadBytes int64 = 64 << 20

type ImportHandler struct {
	log      *logger.Logger
	importer services.ImportService
}

func NewImportHandler(baseLog *logger.Logger, importer services.ImportService) *ImportHandler {
	return &ImportHandler{
		log:      baseLog.With("handler", "ImportHandler"),
		importer: importer,
	}
}

// UploadFeed runs the ingestion pipeline on feed content supplied directly:
// either a multipart "feed" file or the raw request body.
func (h *ImportHandler) UploadFeed(c *gin.Context) {
	separator := strings.TrimSpace(c.Query("separator"))
	baselineYear := 0
	if v := strings.TrimSpace(c.Query("baseline_year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_baseline_year", err)
			return
		}
		baselineYear = y
	}

	var content io.Reader
	source := "upload"
	if file, err := c.FormFile("feed"); err == nil {
		if file.Size > maxFeedUploadBytes {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "feed_too_large", nil)
			return
		}
		f, err := file.Open()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_feed_file", err)
			return
		}
		defer f.Close()
		content = f
		source = "upload:" + file.Filename
	} else {
		content = http.MaxBytesReader(c.Writer, c.Request.Body, maxFeedUploadBytes)
	}

	run, err := h.importer.ImportContent(c.Request.Context(), source, content, separator, baselineYear)
	if errors.Is(err, ingestion.ErrEmptyFeed) {
		response.RespondError(c, http.StatusBadRequest, "empty_feed", err)
		return
	}
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "import_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"run": run})
}

// RunStagedFeed triggers a pre-staged feed by its registry name.
func (h *ImportHandler) RunStagedFeed(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_feed_name", nil)
		return
	}
	run, err := h.importer.ImportStaged(c.Request.Context(), name)
	if errors.Is(err, ingestion.ErrEmptyFeed) {
		response.RespondError(c, http.StatusBadRequest, "empty_feed", err)
		return
	}
	if err != nil && run == nil {
		response.RespondError(c, http.StatusBadRequest, "staged_feed_failed", err)
		return
	}
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "import_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"run": run})
}

func (h *ImportHandler) ListRuns(c *gin.Context) {
	limit := 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = n
	}
	runs, err := h.importer.ListRuns(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_runs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"runs": runs, "staged_feeds": h.importer.StagedFeedNames()})
}

func (h *ImportHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_run_id", err)
		return
	}
	run, err := h.importer.GetRun(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.RespondError(c, http.StatusNotFound, "run_not_found", err)
		return
	}
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "get_run_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"run": run})
}
