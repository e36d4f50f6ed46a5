package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Service{},
		&model.ServicePivot{},
		&model.Language{},
		&model.Currency{},
		&model.CurrencyPivot{},
		&model.Package{},
		&model.PackagePrice{},
		&model.Commission{},
		&model.DiscountCode{},
		&model.DiscountProduct{},
		&model.DiscountUser{},
		&model.Comment{},
		&model.Reservation{},
		&model.Notification{},
	))

	return db
}

func createService(t *testing.T, db *gorm.DB, serviceType model.ServiceType, approved bool) *model.Service {
	t.Helper()
	svc := &model.Service{
		Type:              serviceType,
		SolutionPartnerID: 1,
		Status:            true,
		AdminApproval:     approved,
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

func createPackage(t *testing.T, db *gorm.DB, serviceID uint, constantPrice bool) *model.Package {
	t.Helper()
	pkg := &model.Package{
		ServiceID:     serviceID,
		Name:          "Standard",
		ConstantPrice: constantPrice,
	}
	require.NoError(t, db.Create(pkg).Error)
	return pkg
}

func createCurrency(t *testing.T, db *gorm.DB, code string) *model.Currency {
	t.Helper()
	currency := &model.Currency{Code: code, Symbol: "$"}
	require.NoError(t, db.Create(currency).Error)
	return currency
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// stubTranslator fakes the translation provider. Target languages listed
// in fail return an error, everything else gets a tagged rendering.
type stubTranslator struct {
	fail map[string]bool
}

func (s *stubTranslator) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	if s.fail[targetLang] {
		return "", errors.New("provider unavailable")
	}
	if sourceLang == targetLang || text == "" {
		return text, nil
	}
	return "[" + targetLang + "] " + text, nil
}
