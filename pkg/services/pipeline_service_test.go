package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
)

// mockPipelineRepo implements repositories.PipelineRepository for testing.
type mockPipelineRepo struct {
	pipelines []*models.Pipeline
	nextID    int64
	createErr error
	updateErr error
}

func (m *mockPipelineRepo) Create(_ context.Context, pipeline *models.Pipeline) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	pipeline.ID = m.nextID
	pipeline.CreatedDate = time.Now()
	pipeline.UpdatedDate = pipeline.CreatedDate
	stored := *pipeline
	m.pipelines = append(m.pipelines, &stored)
	return nil
}

func (m *mockPipelineRepo) GetByID(_ context.Context, id int64) (*models.Pipeline, error) {
	for _, p := range m.pipelines {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPipelineRepo) List(_ context.Context, filters models.PipelineFilters) ([]*models.Pipeline, error) {
	var result []*models.Pipeline
	for _, p := range m.pipelines {
		if filters.ExecutionLayer != "" && p.ExecutionLayer != filters.ExecutionLayer {
			continue
		}
		if filters.LoadType != "" && p.LoadType != filters.LoadType {
			continue
		}
		if filters.ActiveFlag != "" && p.ActiveFlag != filters.ActiveFlag {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.PipelineName), strings.ToLower(filters.Search)) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPipelineRepo) Update(_ context.Context, pipeline *models.Pipeline) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, p := range m.pipelines {
		if p.ID == pipeline.ID {
			stored := *pipeline
			stored.CreatedDate = p.CreatedDate
			stored.UpdatedDate = time.Now()
			m.pipelines[i] = &stored
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockPipelineRepo) Delete(_ context.Context, id int64) error {
	for i, p := range m.pipelines {
		if p.ID == id {
			m.pipelines = append(m.pipelines[:i], m.pipelines[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockPipelineRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.pipelines)), nil
}

func (m *mockPipelineRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range m.pipelines {
		if p.ActiveFlag == models.FlagYes {
			n++
		}
	}
	return n, nil
}

func (m *mockPipelineRepo) CountByLayer(_ context.Context) (map[string]int64, error) {
	byLayer := make(map[string]int64)
	for _, p := range m.pipelines {
		byLayer[p.ExecutionLayer]++
	}
	return byLayer, nil
}

func testPipeline(name, layer string) *models.Pipeline {
	return &models.Pipeline{
		PipelineName:   name,
		ExecutionLayer: layer,
		SourceSystem:   "sap_erp",
		SourceType:     "PostgreSQL",
		SourceSchema:   "public",
		SourceTable:    "customers",
		TargetSystem:   "lakehouse",
		TargetType:     "Delta",
		TargetSchema:   "bronze",
		TargetTable:    "customers_raw",
		LoadType:       "incremental",
	}
}

func TestPipelineService_Create_Valid(t *testing.T) {
	repo := &mockPipelineRepo{}
	svc := NewPipelineService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), testPipeline("customer_bronze_load", models.LayerBronze))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.FlagYes, created.ActiveFlag)
	assert.Len(t, repo.pipelines, 1)
}

func TestPipelineService_Create_MissingName(t *testing.T) {
	svc := NewPipelineService(&mockPipelineRepo{}, zap.NewNop())

	_, err := svc.Create(context.Background(), testPipeline("", models.LayerBronze))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline name is required")
}

func TestPipelineService_Create_MissingLayer(t *testing.T) {
	svc := NewPipelineService(&mockPipelineRepo{}, zap.NewNop())

	_, err := svc.Create(context.Background(), testPipeline("customer_bronze_load", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execution layer is required")
}

func TestPipelineService_Create_InvalidLayer(t *testing.T) {
	svc := NewPipelineService(&mockPipelineRepo{}, zap.NewNop())

	_, err := svc.Create(context.Background(), testPipeline("customer_bronze_load", "Platinum"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid execution layer")
}

func TestPipelineService_Create_TruncatesLongFields(t *testing.T) {
	repo := &mockPipelineRepo{}
	svc := NewPipelineService(repo, zap.NewNop())

	pipeline := testPipeline(strings.Repeat("p", 300), models.LayerSilver)
	pipeline.LoadType = strings.Repeat("l", 80)

	created, err := svc.Create(context.Background(), pipeline)
	require.NoError(t, err)
	assert.Len(t, created.PipelineName, models.MaxNameLen)
	assert.Len(t, created.LoadType, models.MaxTypeLen)
}

func TestPipelineService_Update_Valid(t *testing.T) {
	repo := &mockPipelineRepo{}
	svc := NewPipelineService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), testPipeline("customer_bronze_load", models.LayerBronze))
	require.NoError(t, err)

	edit := testPipeline("customer_silver_merge", models.LayerSilver)
	edit.ID = created.ID
	edit.LoadType = "scd2"

	updated, err := svc.Update(context.Background(), edit)
	require.NoError(t, err)
	assert.Equal(t, "customer_silver_merge", updated.PipelineName)
	assert.Equal(t, models.LayerSilver, updated.ExecutionLayer)
	assert.Equal(t, "scd2", updated.LoadType)
}

func TestPipelineService_Update_UnknownID(t *testing.T) {
	svc := NewPipelineService(&mockPipelineRepo{}, zap.NewNop())

	edit := testPipeline("customer_bronze_load", models.LayerBronze)
	edit.ID = 42

	_, err := svc.Update(context.Background(), edit)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPipelineService_List_SearchFilter(t *testing.T) {
	repo := &mockPipelineRepo{}
	svc := NewPipelineService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), testPipeline("customer_bronze_load", models.LayerBronze))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), testPipeline("orders_gold_rollup", models.LayerGold))
	require.NoError(t, err)

	pipelines, err := svc.List(context.Background(), models.PipelineFilters{Search: "CUSTOMER"})
	require.NoError(t, err)
	require.Len(t, pipelines, 1)
	assert.Equal(t, "customer_bronze_load", pipelines[0].PipelineName)
}

func TestPipelineService_Delete(t *testing.T) {
	repo := &mockPipelineRepo{}
	svc := NewPipelineService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), testPipeline("customer_bronze_load", models.LayerBronze))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.pipelines)
}
