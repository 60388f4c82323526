package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-scheduler/internal/dto"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/session"
	ucDashboard "github.com/BruksfildServices01/service-scheduler/internal/usecase/dashboard"
)

type DashboardHandler struct {
	get    *ucDashboard.GetDashboard
	export *ucDashboard.ExportDashboard
}

func NewDashboardHandler(
	get *ucDashboard.GetDashboard,
	export *ucDashboard.ExportDashboard,
) *DashboardHandler {
	return &DashboardHandler{get: get, export: export}
}

// Get answers 200 even when some figures are missing; they are listed
// under "degraded".
func (h *DashboardHandler) Get(c *gin.Context) {
	sess := session.MustFromContext(c.Request.Context())

	m, err := h.get.Execute(c.Request.Context(), ucDashboard.GetDashboardInput{
		CompanyID: sess.CompanyID,
		Range:     c.DefaultQuery("range", "today"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromDashboard(m))
}

func (h *DashboardHandler) Export(c *gin.Context) {
	sess := session.MustFromContext(c.Request.Context())

	res, err := h.export.Execute(c.Request.Context(), ucDashboard.ExportDashboardInput{
		CompanyID: sess.CompanyID,
		UserID:    sess.UserID,
		Range:     c.DefaultQuery("range", "today"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, res)
}
