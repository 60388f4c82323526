package dashboard

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

func TestExportStoresSnapshotAndChart(t *testing.T) {
	repo := newFakeRepo("America/Sao_Paulo")
	repo.ListWindowFunc = func(_, _ time.Time) ([]models.Appointment, error) {
		return []models.Appointment{row(9, "no_show", "80"), row(10, "completed", "60")}, nil
	}

	store := newMemStore()
	w, d := newAudit()
	uc := NewExportDashboard(newUseCase(repo, nil), store, d)

	res, err := uc.Execute(context.Background(), ExportDashboardInput{
		CompanyID: repo.company.ID,
		UserID:    uuid.New(),
		Range:     "week",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.SnapshotKey, "dashboards/"+repo.company.ID.String()+"/week-"))
	assert.True(t, strings.HasSuffix(res.ChartKey, ".webp"))
	assert.Equal(t, "https://files.example/"+res.ChartKey, res.ChartURL)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(store.objects[res.SnapshotKey], &snapshot))
	assert.Equal(t, "week", snapshot["range"])
	assert.EqualValues(t, 2, snapshot["total_appointments"])
	assert.Equal(t, "application/json", store.types[res.SnapshotKey])

	chart := store.objects[res.ChartKey]
	require.NotEmpty(t, chart)
	assert.Equal(t, "RIFF", string(chart[:4]))
	assert.Equal(t, "image/webp", store.types[res.ChartKey])

	require.NoError(t, d.Close(context.Background()))
	require.Len(t, w.events, 1)
	assert.Equal(t, audit.ActionDashboardExported, w.events[0].Action)
}

func TestExportWithoutStore(t *testing.T) {
	repo := newFakeRepo("UTC")
	uc := NewExportDashboard(newUseCase(repo, nil), nil, nil)

	_, err := uc.Execute(context.Background(), ExportDashboardInput{CompanyID: repo.company.ID})
	assert.ErrorIs(t, err, storage.ErrDisabled)
}

func TestExportPutFailure(t *testing.T) {
	repo := newFakeRepo("UTC")
	store := newMemStore()
	store.failPut = true

	_, err := NewExportDashboard(newUseCase(repo, nil), store, nil).Execute(context.Background(), ExportDashboardInput{CompanyID: repo.company.ID})
	assert.Error(t, err)
}
