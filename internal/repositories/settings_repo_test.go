package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartstock/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SettingsRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       SettingsRepository
	businessID uuid.UUID
	context    context.Context
}

func (suite *SettingsRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSettingsRepository(mock)
	suite.businessID = uuid.New()
	suite.context = context.Background()
}

func (suite *SettingsRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestSettingsRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsRepoTestSuite))
}

func (suite *SettingsRepoTestSuite) TestGet_Success() {
	logoKey := "logos/acme.png"
	suite.mock.ExpectQuery(`FROM business_settings`).
		WithArgs(suite.businessID).
		WillReturnRows(pgxmock.NewRows([]string{"business_id", "business_name", "address", "phone", "logo_key", "updated_at"}).
			AddRow(suite.businessID, "Acme Traders", "1 Main St", "555-0100", &logoKey, time.Now()))

	settings, err := suite.repo.Get(suite.context, suite.businessID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme Traders", settings.BusinessName)
	assert.Equal(suite.T(), "logos/acme.png", *settings.LogoKey)
}

func (suite *SettingsRepoTestSuite) TestGet_MissingNotFound() {
	suite.mock.ExpectQuery(`FROM business_settings`).
		WithArgs(suite.businessID).
		WillReturnRows(pgxmock.NewRows([]string{"business_id", "business_name", "address", "phone", "logo_key", "updated_at"}))

	settings, err := suite.repo.Get(suite.context, suite.businessID)
	assert.Nil(suite.T(), settings)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *SettingsRepoTestSuite) TestUpsert_UpdatesExistingRow() {
	settings := &models.BusinessSettings{
		BusinessID:   suite.businessID,
		BusinessName: "Acme Traders",
	}

	suite.mock.ExpectExec(`UPDATE business_settings`).
		WithArgs(settings.BusinessName, settings.Address, settings.Phone, settings.BusinessID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Upsert(suite.context, settings)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SettingsRepoTestSuite) TestUpsert_InsertsWhenMissing() {
	settings := &models.BusinessSettings{
		BusinessID:   suite.businessID,
		BusinessName: "Acme Traders",
	}

	suite.mock.ExpectExec(`UPDATE business_settings`).
		WithArgs(settings.BusinessName, settings.Address, settings.Phone, settings.BusinessID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectExec(`INSERT INTO business_settings`).
		WithArgs(settings.BusinessID, settings.BusinessName, settings.Address, settings.Phone).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.context, settings)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SettingsRepoTestSuite) TestSetLogoKey_MissingNotFound() {
	suite.mock.ExpectExec(`SET logo_key`).
		WithArgs("logos/acme.png", suite.businessID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetLogoKey(suite.context, suite.businessID, "logos/acme.png")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *SettingsRepoTestSuite) TestPurgeBusinessData_DeletesAllTables() {
	suite.mock.ExpectBegin()
	for _, table := range []string{"sale_items", "sales", "products", "suppliers", "customers"} {
		suite.mock.ExpectExec(`DELETE FROM ` + table).
			WithArgs(suite.businessID).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
	}
	suite.mock.ExpectCommit()

	err := suite.repo.PurgeBusinessData(suite.context, suite.businessID)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SettingsRepoTestSuite) TestPurgeBusinessData_RollsBackOnfailure() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM sale_items`).
		WithArgs(suite.businessID).
		WillReturnError(errors.New("delete failed"))
	suite.mock.ExpectRollback()

	err := suite.repo.PurgeBusinessData(suite.context, suite.businessID)
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
