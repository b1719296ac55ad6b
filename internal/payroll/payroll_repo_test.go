package payroll_test

import (
	"context"
	"regexp"
	"testing"

	"go-shien/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// A tx-scoped repository must issue its statements on the transaction
// connection, not on the pool it was built from, so a rollback undoes them.
func TestRepository_WithTxRunsOnTransactionConnection(t *testing.T) {
	baseDB, baseMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer baseDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: baseDB}), &gorm.Config{})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "payroll_runs" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	run := &payroll.PayrollRun{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		CreatedByID:    uuid.New(),
		Status:         payroll.StatusDraft,
	}

	qtx := payroll.NewRepository(gdb).WithTx(tx)
	assert.NoError(t, qtx.UpdateRun(context.Background(), run))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, baseMock.ExpectationsWereMet())
}
