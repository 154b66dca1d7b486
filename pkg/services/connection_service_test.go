package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
)

// mockConnectionRepo implements repositories.ConnectionRepository for testing.
type mockConnectionRepo struct {
	conns     []*models.Connection
	nextID    int64
	createErr error
	getErr    error
	listErr   error
	updateErr error
	statusErr error
	deleteErr error
	countErr  error
}

func (m *mockConnectionRepo) Create(_ context.Context, conn *models.Connection) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	conn.ID = m.nextID
	conn.CreatedDate = time.Now()
	conn.UpdatedDate = conn.CreatedDate
	stored := *conn
	m.conns = append(m.conns, &stored)
	return nil
}

func (m *mockConnectionRepo) GetByID(_ context.Context, id int64) (*models.Connection, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, c := range m.conns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockConnectionRepo) List(_ context.Context, filters models.ConnectionFilters) ([]*models.Connection, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Connection
	for _, c := range m.conns {
		if filters.EngineType != "" && c.EngineType != filters.EngineType {
			continue
		}
		if filters.Status != "" && c.Status != filters.Status {
			continue
		}
		if filters.ActiveFlag != "" && c.ActiveFlag != filters.ActiveFlag {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockConnectionRepo) Update(_ context.Context, conn *models.Connection) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for _, c := range m.conns {
		if c.ID == conn.ID {
			c.ConnectionName = conn.ConnectionName
			c.EngineType = conn.EngineType
			c.Host = conn.Host
			c.Port = conn.Port
			c.Username = conn.Username
			c.Password = conn.Password
			c.DatabaseName = conn.DatabaseName
			c.ActiveFlag = conn.ActiveFlag
			c.UpdatedDate = time.Now()
			conn.UpdatedDate = c.UpdatedDate
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockConnectionRepo) UpdateStatus(_ context.Context, id int64, status string, lastSync *time.Time) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	for _, c := range m.conns {
		if c.ID == id {
			c.Status = status
			if lastSync != nil {
				c.LastSync = lastSync
			}
			c.UpdatedDate = time.Now()
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockConnectionRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, c := range m.conns {
		if c.ID == id {
			m.conns = append(m.conns[:i], m.conns[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockConnectionRepo) Count(_ context.Context) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.conns)), nil
}

func (m *mockConnectionRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, c := range m.conns {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func testConnection(name string) *models.Connection {
	return &models.Connection{
		ConnectionName: name,
		EngineType:     "PostgreSQL",
		Host:           "db.internal",
		Port:           5432,
		Username:       "etl",
		Password:       "hunter2",
		DatabaseName:   "warehouse",
	}
}

// ============================================================================
// CRUD
// ============================================================================

func TestConnectionService_Create_ForcesPendingStatus(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	conn := testConnection("warehouse-pg")
	conn.Status = models.ConnectionStatusActive
	now := time.Now()
	conn.LastSync = &now

	created, err := svc.Create(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, created.Status)
	assert.Nil(t, created.LastSync)
	assert.Equal(t, models.FlagYes, created.ActiveFlag)
}

func TestConnectionService_Create_RedactsPassword(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)
	assert.Empty(t, created.Password)
	assert.Equal(t, "hunter2", repo.conns[0].Password, "stored password must survive redaction")
}

func TestConnectionService_Create_MissingName(t *testing.T) {
	svc := NewConnectionService(&mockConnectionRepo{}, &mockReaderFactory{}, time.Second, zap.NewNop())

	conn := testConnection("")
	_, err := svc.Create(context.Background(), conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection name is required")
}

func TestConnectionService_Create_MissingEngine(t *testing.T) {
	svc := NewConnectionService(&mockConnectionRepo{}, &mockReaderFactory{}, time.Second, zap.NewNop())

	conn := testConnection("warehouse-pg")
	conn.EngineType = ""
	_, err := svc.Create(context.Background(), conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine type is required")
}

func TestConnectionService_Create_TruncatesLongName(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	conn := testConnection(strings.Repeat("x", 300))
	created, err := svc.Create(context.Background(), conn)
	require.NoError(t, err)
	assert.Len(t, created.ConnectionName, models.MaxNameLen)
}

func TestConnectionService_Get_Redacts(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Password)
	assert.Equal(t, "warehouse-pg", got.ConnectionName)
}

func TestConnectionService_Get_NotFound(t *testing.T) {
	svc := NewConnectionService(&mockConnectionRepo{}, &mockReaderFactory{}, time.Second, zap.NewNop())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConnectionService_List_Redacts(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	_, err := svc.Create(context.Background(), testConnection("first"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), testConnection("second"))
	require.NoError(t, err)

	conns, err := svc.List(context.Background(), models.ConnectionFilters{})
	require.NoError(t, err)
	require.Len(t, conns, 2)
	for _, conn := range conns {
		assert.Empty(t, conn.Password)
	}
}

func TestConnectionService_Update_EmptyPasswordKeepsStored(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	edit := testConnection("warehouse-pg-renamed")
	edit.ID = created.ID
	edit.Password = ""

	updated, err := svc.Update(context.Background(), edit)
	require.NoError(t, err)
	assert.Equal(t, "warehouse-pg-renamed", updated.ConnectionName)
	assert.Empty(t, updated.Password)
	assert.Equal(t, "hunter2", repo.conns[0].Password, "empty password must keep the stored credential")
}

func TestConnectionService_Update_NewPasswordReplacesStored(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	edit := testConnection("warehouse-pg")
	edit.ID = created.ID
	edit.Password = "rotated"

	_, err = svc.Update(context.Background(), edit)
	require.NoError(t, err)
	assert.Equal(t, "rotated", repo.conns[0].Password)
}

func TestConnectionService_Update_PreservesStatus(t *testing.T) {
	repo := &mockConnectionRepo{}
	factory := &mockReaderFactory{reader: &mockReader{}}
	svc := NewConnectionService(repo, factory, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	_, err = svc.TestConnection(context.Background(), created.ID)
	require.NoError(t, err)

	edit := testConnection("warehouse-pg")
	edit.ID = created.ID

	updated, err := svc.Update(context.Background(), edit)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusActive, updated.Status)
	assert.NotNil(t, updated.LastSync)
}

func TestConnectionService_Delete(t *testing.T) {
	repo := &mockConnectionRepo{}
	svc := NewConnectionService(repo, &mockReaderFactory{}, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.conns)
}

// ============================================================================
// Connectivity Probe
// ============================================================================

func TestConnectionService_TestConnection_Success(t *testing.T) {
	repo := &mockConnectionRepo{}
	factory := &mockReaderFactory{reader: &mockReader{}}
	svc := NewConnectionService(repo, factory, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	tested, err := svc.TestConnection(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusActive, tested.Status)
	require.NotNil(t, tested.LastSync)
	assert.WithinDuration(t, time.Now(), *tested.LastSync, time.Minute)
	assert.Empty(t, tested.Password)
	assert.True(t, factory.reader.closed, "probe reader must be closed")
}

func TestConnectionService_TestConnection_FailureMarksFailed(t *testing.T) {
	repo := &mockConnectionRepo{}
	factory := &mockReaderFactory{reader: &mockReader{
		pingErr: errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"),
	}}
	svc := NewConnectionService(repo, factory, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	_, err = svc.TestConnection(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, models.ConnectionStatusFailed, repo.conns[0].Status)
	assert.Nil(t, repo.conns[0].LastSync, "failed probe must not stamp lastSync")
	assert.True(t, factory.reader.closed)
}

func TestConnectionService_TestConnection_FailureKeepsPreviousSync(t *testing.T) {
	repo := &mockConnectionRepo{}
	reader := &mockReader{}
	factory := &mockReaderFactory{reader: reader}
	svc := NewConnectionService(repo, factory, time.Second, zap.NewNop())

	created, err := svc.Create(context.Background(), testConnection("warehouse-pg"))
	require.NoError(t, err)

	tested, err := svc.TestConnection(context.Background(), created.ID)
	require.NoError(t, err)
	firstSync := *tested.LastSync

	reader.closed = false
	reader.pingErr = errors.New("connection reset by peer")
	_, err = svc.TestConnection(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, models.ConnectionStatusFailed, repo.conns[0].Status)
	require.NotNil(t, repo.conns[0].LastSync)
	assert.Equal(t, firstSync, *repo.conns[0].LastSync)
}

func TestConnectionService_TestConnection_UnknownID(t *testing.T) {
	svc := NewConnectionService(&mockConnectionRepo{}, &mockReaderFactory{}, time.Second, zap.NewNop())

	_, err := svc.TestConnection(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
