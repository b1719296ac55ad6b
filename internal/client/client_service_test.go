package client_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-shien/internal/client"
	clienterrors "go-shien/internal/client/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeClientRepository struct {
	createFn     func(ctx context.Context, c *client.Client) error
	findAllFn    func(ctx context.Context, organizationID string) ([]client.Client, error)
	findActiveFn func(ctx context.Context, organizationID string) ([]client.Client, error)
	findByIDFn   func(ctx context.Context, organizationID, id string) (*client.Client, error)
	updateFn     func(ctx context.Context, c *client.Client) error
	deleteFn     func(ctx context.Context, organizationID, id string) error
}

func (f *fakeClientRepository) WithTx(tx *sql.Tx) client.Repository { return f }

func (f *fakeClientRepository) Create(ctx context.Context, c *client.Client) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeClientRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]client.Client, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakeClientRepository) FindActiveByOrganization(ctx context.Context, organizationID string) ([]client.Client, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakeClientRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*client.Client, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, organizationID, id)
	}
	return nil, errors.New("not configured")
}

func (f *fakeClientRepository) Update(ctx context.Context, c *client.Client) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeClientRepository) Delete(ctx context.Context, organizationID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, organizationID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, organizationID, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, organizationID, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, organizationID, counterType)
	}
	return 1, nil
}

type clientServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *fakeClientRepository
	counter   *fakeCounterRepository
	redisMock redismock.ClientMock
	service   client.Service
}

func setupClientServiceTest(t *testing.T) *clientServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeClientRepository{}
	counterRepo := &fakeCounterRepository{}
	svc := client.NewService(db, repo, counterRepo, rdb)

	return &clientServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      repo,
		counter:   counterRepo,
		redisMock: redisMock,
		service:   svc,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestClientService_Create(t *testing.T) {
	organizationID := uuid.NewString()
	ctx := context.Background()

	t.Run("generates a client number when none is given", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.counter.getNextValueFn = func(ctx context.Context, orgID, counterType string) (int64, error) {
			assert.Equal(t, organizationID, orgID)
			assert.Equal(t, "client_number", counterType)
			return 41, nil
		}

		var created *client.Client
		deps.repo.createFn = func(ctx context.Context, c *client.Client) error {
			created = c
			return nil
		}
		deps.redisMock.ExpectDel(client.GetClientOptionsKey(organizationID)).SetVal(1)

		resp, err := deps.service.Create(ctx, organizationID, client.CreateClientRequest{
			Name: "佐藤 花子",
		})

		assert.NoError(t, err)
		assert.Equal(t, "CL-000041", resp.ClientNumber)
		assert.Equal(t, client.StatusActive, created.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("rejects a malformed admitted_at", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, organizationID, client.CreateClientRequest{
			Name:       "佐藤 花子",
			AdmittedAt: "01-09-2026",
		})

		assert.ErrorIs(t, err, clienterrors.ErrInvalidDateFormat)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestClientService_GetOptions(t *testing.T) {
	organizationID := uuid.NewString()
	cacheKey := client.GetClientOptionsKey(organizationID)
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		cached := []client.ClientResponse{
			{ID: uuid.NewString(), ClientNumber: "C-001", Name: "佐藤 花子", Status: client.StatusActive},
		}
		payload, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(cacheKey).SetVal(string(payload))
		deps.repo.findActiveFn = func(ctx context.Context, orgID string) ([]client.Client, error) {
			t.Fatal("repository must not be hit on a cache hit")
			return nil, nil
		}

		resp, err := deps.service.GetOptions(ctx, organizationID)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads from the repository and fills the cache", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		row := client.Client{
			ID:             uuid.New(),
			OrganizationID: uuid.MustParse(organizationID),
			ClientNumber:   "C-002",
			Name:           "鈴木 太郎",
			Status:         client.StatusActive,
		}
		deps.redisMock.ExpectGet(cacheKey).RedisNil()
		deps.repo.findActiveFn = func(ctx context.Context, orgID string) ([]client.Client, error) {
			assert.Equal(t, organizationID, orgID)
			return []client.Client{row}, nil
		}
		deps.redisMock.Regexp().ExpectSet(cacheKey, `.*C-002.*`, 10*time.Minute).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, organizationID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "鈴木 太郎", resp[0].Name)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("repository error propagates", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(cacheKey).RedisNil()
		deps.repo.findActiveFn = func(ctx context.Context, orgID string) ([]client.Client, error) {
			return nil, errors.New("db connection error")
		}

		resp, err := deps.service.GetOptions(ctx, organizationID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestClientService_ChangeStatus(t *testing.T) {
	organizationID := uuid.NewString()
	ctx := context.Background()

	t.Run("exited stamps the exit date", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		row := &client.Client{
			ID:             uuid.New(),
			OrganizationID: uuid.MustParse(organizationID),
			ClientNumber:   "C-001",
			Name:           "佐藤 花子",
			Status:         client.StatusActive,
		}
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*client.Client, error) {
			return row, nil
		}
		deps.redisMock.ExpectDel(client.GetClientOptionsKey(organizationID)).SetVal(1)

		resp, err := deps.service.ChangeStatus(ctx, organizationID, row.ID.String(), client.ChangeStatusRequest{
			Status:   client.StatusExited,
			ExitedAt: "2026-08-20",
		})

		assert.NoError(t, err)
		assert.Equal(t, client.StatusExited, resp.Status)
		assert.NotNil(t, resp.ExitedAt)
		assert.Equal(t, "2026-08-20", *resp.ExitedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ChangeStatus(ctx, organizationID, uuid.NewString(), client.ChangeStatusRequest{
			Status: "retired",
		})

		assert.ErrorIs(t, err, clienterrors.ErrInvalidStatus)
	})
}
