package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
)

func newContentRepo(t *testing.T, db *gorm.DB, translator *stubTranslator) *ContentRepo {
	t.Helper()
	if translator == nil {
		translator = &stubTranslator{}
	}
	return NewContentRepo(db, translator, nil, 0, zap.NewNop())
}

func TestResolveReturnsRequestedLanguage(t *testing.T) {
	db := setupTestDB(t)
	repo := newContentRepo(t, db, nil)
	svc := createService(t, db, model.ServiceTypeHotel, true)

	require.NoError(t, db.Create(&model.ServicePivot{
		ServiceID: svc.ID, LanguageCode: "en",
		Title: "Seaside Hotel", GeneralInfo: "By the sea", RefundPolicy: "Free until 48h",
	}).Error)
	require.NoError(t, db.Create(&model.ServicePivot{
		ServiceID: svc.ID, LanguageCode: "ar",
		Title: "فندق البحر", GeneralInfo: "على البحر", RefundPolicy: "مجاني حتى ٤٨ ساعة",
	}).Error)

	ls, err := repo.Resolve(context.Background(), svc.ID, "ar")
	require.NoError(t, err)
	assert.Equal(t, "ar", ls.LanguageCode)
	assert.Equal(t, "فندق البحر", ls.Title)
	assert.Equal(t, svc.ID, ls.Service.ID)
}

func TestResolveMissingLanguageIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := newContentRepo(t, db, nil)
	svc := createService(t, db, model.ServiceTypeHotel, true)

	require.NoError(t, db.Create(&model.ServicePivot{
		ServiceID: svc.ID, LanguageCode: "en", Title: "Seaside Hotel",
	}).Error)

	// No fallback to another language: the service is simply not there
	// for a language it has no pivot in.
	_, err := repo.Resolve(context.Background(), svc.ID, "de")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestResolveUnknownService(t *testing.T) {
	db := setupTestDB(t)
	repo := newContentRepo(t, db, nil)

	_, err := repo.Resolve(context.Background(), 9999, "en")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateWithTranslationsCoversActiveLanguages(t *testing.T) {
	db := setupTestDB(t)
	repo := newContentRepo(t, db, nil)

	require.NoError(t, db.Create(&model.Language{Code: "en", Name: "English", Status: true}).Error)
	require.NoError(t, db.Create(&model.Language{Code: "ar", Name: "Arabic", Status: true}).Error)
	require.NoError(t, db.Create(&model.Language{Code: "fr", Name: "French", Status: false}).Error)

	svc := &model.Service{Type: model.ServiceTypeTour, SolutionPartnerID: 1, Status: true}
	err := repo.CreateWithTranslations(context.Background(), svc, "en", TranslatedFields{
		Title: "City Tour", GeneralInfo: "Half day", RefundPolicy: "No refund",
	})
	require.NoError(t, err)
	require.NotZero(t, svc.ID)

	var pivots []model.ServicePivot
	require.NoError(t, db.Where("service_id = ?", svc.ID).Order("language_code").Find(&pivots).Error)
	require.Len(t, pivots, 2)
	assert.Equal(t, "ar", pivots[0].LanguageCode)
	assert.Equal(t, "[ar] City Tour", pivots[0].Title)
	assert.Equal(t, "en", pivots[1].LanguageCode)
	assert.Equal(t, "City Tour", pivots[1].Title)
}

func TestCreateWithTranslationsRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := newContentRepo(t, db, &stubTranslator{fail: map[string]bool{"ar": true}})

	require.NoError(t, db.Create(&model.Language{Code: "en", Name: "English", Status: true}).Error)
	require.NoError(t, db.Create(&model.Language{Code: "ar", Name: "Arabic", Status: true}).Error)

	svc := &model.Service{Type: model.ServiceTypeTour, SolutionPartnerID: 1, Status: true}
	err := repo.CreateWithTranslations(context.Background(), svc, "en", TranslatedFields{
		Title: "City Tour",
	})
	require.Error(t, err)

	var serviceCount, pivotCount int64
	require.NoError(t, db.Model(&model.Service{}).Count(&serviceCount).Error)
	require.NoError(t, db.Model(&model.ServicePivot{}).Count(&pivotCount).Error)
	assert.Zero(t, serviceCount, "failed creation must not leave the service behind")
	assert.Zero(t, pivotCount, "failed creation must not leave partial pivots behind")
}

func TestUpsertPivotKeepsOneRowPerLanguage(t *testing.T) {
	db := setupTestDB(t)
	repo := newContentRepo(t, db, nil)
	svc := createService(t, db, model.ServiceTypeHotel, true)

	_, err := repo.UpsertPivot(context.Background(), svc.ID, "en", TranslatedFields{Title: "First"})
	require.NoError(t, err)
	pivot, err := repo.UpsertPivot(context.Background(), svc.ID, "en", TranslatedFields{Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, "Second", pivot.Title)

	var count int64
	require.NoError(t, db.Model(&model.ServicePivot{}).
		Where("service_id = ? AND language_code = ?", svc.ID, "en").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveCurrencyFallsBackToCode(t *testing.T) {
	db := setupTestDB(t)
	repo := newContentRepo(t, db, nil)
	currency := createCurrency(t, db, "USD")

	require.NoError(t, db.Create(&model.CurrencyPivot{
		CurrencyID: currency.ID, LanguageCode: "ar", Name: "دولار أمريكي",
	}).Error)

	localized, err := repo.ResolveCurrency(context.Background(), currency.ID, "ar")
	require.NoError(t, err)
	assert.Equal(t, "دولار أمريكي", localized.Name)

	// No pivot for the language: the code itself is the display name.
	localized, err = repo.ResolveCurrency(context.Background(), currency.ID, "de")
	require.NoError(t, err)
	assert.Equal(t, "USD", localized.Name)

	_, err = repo.ResolveCurrency(context.Background(), 9999, "en")
	assert.ErrorIs(t, err, ErrCurrencyNotFound)
}
