package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/catalogrepo"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CatalogLookupIntegrationTestSuite verifies the offer and voucher lookups
// used for discount snapshots.
type CatalogLookupIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	lookup    *catalogrepo.GormCatalogLookup
}

func (suite *CatalogLookupIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&catalogrepo.OfferDTO{}, &catalogrepo.VoucherDTO{}))
	suite.lookup = catalogrepo.NewGormCatalogLookup(db)
}

func (suite *CatalogLookupIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE offers, vouchers").Error)
}

func (suite *CatalogLookupIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogLookupIntegrationTestSuite) TestOfferName_ExistingOffer() {
	ctx := context.Background()
	offerID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.OfferDTO{
		ID:   offerID.Bytes(),
		Name: "Summer sale",
	}).Error)

	name, ok, err := suite.lookup.OfferName(ctx, offerID)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal("Summer sale", name)
}

func (suite *CatalogLookupIntegrationTestSuite) TestOfferName_MissingOfferIsNotAnError() {
	name, ok, err := suite.lookup.OfferName(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(ok)
	suite.Empty(name)
}

func (suite *CatalogLookupIntegrationTestSuite) TestVoucherCode_ExistingVoucher() {
	ctx := context.Background()
	voucherID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.VoucherDTO{
		ID:   voucherID.Bytes(),
		Code: "SUMMER10",
	}).Error)

	code, ok, err := suite.lookup.VoucherCode(ctx, voucherID)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal("SUMMER10", code)
}

func (suite *CatalogLookupIntegrationTestSuite) TestVoucherCode_MissingVoucherIsNotAnError() {
	code, ok, err := suite.lookup.VoucherCode(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(ok)
	suite.Empty(code)
}

func TestCatalogLookupIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogLookupIntegrationTestSuite))
}
