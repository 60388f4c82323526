package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/session"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogLister interface {
	List(ctx context.Context, f repository.AuditLogFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	repo AuditLogLister
}

func NewAuditLogsHandler(repo AuditLogLister) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	sess := session.MustFromContext(c.Request.Context())

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Filtros opcionais (sempre protegido pela empresa)
	// --------------------------------------------------

	f := repository.AuditLogFilter{
		CompanyID: sess.CompanyID,
		Action:    c.Query("action"),
		Entity:    c.Query("entity"),
		Page:      page,
		Limit:     limit,
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			f.From = &from
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			end := to.Add(24 * time.Hour)
			f.To = &end
		}
	}

	logs, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
