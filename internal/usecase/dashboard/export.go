package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/dto"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/service-scheduler/internal/report"
)

const exportLinkTTL = 15 * time.Minute

type ExportDashboardInput struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Range     string
}

type ExportResult struct {
	SnapshotKey string `json:"snapshot_key"`
	SnapshotURL string `json:"snapshot_url"`
	ChartKey    string `json:"chart_key"`
	ChartURL    string `json:"chart_url"`
}

// ExportDashboard stores a JSON snapshot and a WebP chart of the dashboard.
type ExportDashboard struct {
	dashboard *GetDashboard
	store     storage.ObjectStore
	audit     *audit.Dispatcher
}

func NewExportDashboard(
	dashboard *GetDashboard,
	store storage.ObjectStore,
	audit *audit.Dispatcher,
) *ExportDashboard {
	return &ExportDashboard{
		dashboard: dashboard,
		store:     store,
		audit:     audit,
	}
}

func (uc *ExportDashboard) Execute(
	ctx context.Context,
	in ExportDashboardInput,
) (*ExportResult, error) {

	if uc.store == nil {
		return nil, storage.ErrDisabled
	}

	m, err := uc.dashboard.Execute(ctx, GetDashboardInput{
		CompanyID: in.CompanyID,
		Range:     in.Range,
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(dto.FromDashboard(m))
	if err != nil {
		return nil, err
	}

	chart, err := report.EncodeWebP(report.DailyChart(
		fmt.Sprintf("Agendamentos por dia (%s)", m.Range),
		m.DailyTotals,
	))
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf(
		"dashboards/%s/%s-%s",
		in.CompanyID,
		m.Range,
		uc.dashboard.now().UTC().Format("20060102T150405Z"),
	)

	res := &ExportResult{
		SnapshotKey: prefix + ".json",
		ChartKey:    prefix + ".webp",
	}

	if err := uc.store.Put(ctx, res.SnapshotKey, snapshot, "application/json"); err != nil {
		return nil, err
	}
	if err := uc.store.Put(ctx, res.ChartKey, chart, "image/webp"); err != nil {
		return nil, err
	}

	if res.SnapshotURL, err = uc.store.URL(ctx, res.SnapshotKey, exportLinkTTL); err != nil {
		return nil, err
	}
	if res.ChartURL, err = uc.store.URL(ctx, res.ChartKey, exportLinkTTL); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.UserID,
		Action:    audit.ActionDashboardExported,
		Entity:    "dashboard",
		Metadata: map[string]any{
			"range":    m.Range,
			"snapshot": res.SnapshotKey,
			"degraded": m.Degraded,
		},
	})

	return res, nil
}
