package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/Tufan17/timhoty-backend-sub004/internal/translate"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LocalizedService is a service joined to its pivot row for one language.
type LocalizedService struct {
	Service      model.Service `json:"service"`
	LanguageCode string        `json:"language_code"`
	Title        string        `json:"title"`
	GeneralInfo  string        `json:"general_info"`
	RefundPolicy string        `json:"refund_policy"`
}

// LocalizedCurrency is a currency with its localized display name.
type LocalizedCurrency struct {
	Currency model.Currency `json:"currency"`
	Name     string         `json:"name"`
}

// TranslatedFields are the source-language text fields fed into the
// translate-and-create protocol.
type TranslatedFields struct {
	Title        string
	GeneralInfo  string
	RefundPolicy string
}

// ContentRepo resolves localized content and maintains pivot rows. The
// Redis client is optional; when nil every read goes to the store.
type ContentRepo struct {
	db         *gorm.DB
	translator translate.Translator
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewContentRepo constructs a ContentRepo.
func NewContentRepo(db *gorm.DB, translator translate.Translator, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *ContentRepo {
	return &ContentRepo{
		db:         db,
		translator: translator,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func contentCacheKey(serviceID uint, lang string) string {
	return fmt.Sprintf("content:service:%d:%s", serviceID, lang)
}

// Resolve returns the service together with its pivot for the requested
// language. Content is strictly per-language: a missing pivot yields
// ErrServiceNotFound, there is no fallback to a default language.
func (r *ContentRepo) Resolve(ctx context.Context, serviceID uint, languageCode string) (*LocalizedService, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, contentCacheKey(serviceID, languageCode)).Result(); err == nil {
			var ls LocalizedService
			if err := json.Unmarshal([]byte(cached), &ls); err == nil {
				return &ls, nil
			}
		}
	}

	var svc model.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	var pivot model.ServicePivot
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND language_code = ?", serviceID, languageCode).
		First(&pivot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	ls := &LocalizedService{
		Service:      svc,
		LanguageCode: pivot.LanguageCode,
		Title:        pivot.Title,
		GeneralInfo:  pivot.GeneralInfo,
		RefundPolicy: pivot.RefundPolicy,
	}

	if r.cache != nil {
		if encoded, err := json.Marshal(ls); err == nil {
			if err := r.cache.Set(ctx, contentCacheKey(serviceID, languageCode), encoded, r.cacheTTL).Err(); err != nil {
				r.logger.Warn("Failed to cache localized service",
					zap.Uint("service_id", serviceID),
					zap.String("language_code", languageCode),
					zap.Error(err))
			}
		}
	}

	return ls, nil
}

// ResolveCurrency returns a currency with its display name for the
// requested language, falling back to the currency code when no pivot
// exists. Prices reference currencies by id; this lookup only affects
// display.
func (r *ContentRepo) ResolveCurrency(ctx context.Context, currencyID uint, languageCode string) (*LocalizedCurrency, error) {
	var currency model.Currency
	if err := r.db.WithContext(ctx).First(&currency, currencyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCurrencyNotFound
		}
		return nil, err
	}

	lc := &LocalizedCurrency{Currency: currency, Name: currency.Code}

	var pivot model.CurrencyPivot
	err := r.db.WithContext(ctx).
		Where("currency_id = ? AND language_code = ?", currencyID, languageCode).
		First(&pivot).Error
	if err == nil {
		lc.Name = pivot.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return lc, nil
}

// CreateWithTranslations inserts the service and one pivot row per active
// language in the registry, translating the source fields through the
// external provider. The whole protocol runs in a single transaction: a
// translation failure partway through rolls back the service and every
// pivot already inserted, leaving no partial language set behind.
func (r *ContentRepo) CreateWithTranslations(ctx context.Context, svc *model.Service, sourceLang string, fields TranslatedFields) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(svc).Error; err != nil {
			return err
		}

		var languages []model.Language
		if err := tx.Where("status = ?", true).Find(&languages).Error; err != nil {
			return err
		}

		for _, lang := range languages {
			title, err := r.translator.Translate(ctx, fields.Title, sourceLang, lang.Code)
			if err != nil {
				return fmt.Errorf("translate title to %s: %w", lang.Code, err)
			}
			info, err := r.translator.Translate(ctx, fields.GeneralInfo, sourceLang, lang.Code)
			if err != nil {
				return fmt.Errorf("translate general info to %s: %w", lang.Code, err)
			}
			policy, err := r.translator.Translate(ctx, fields.RefundPolicy, sourceLang, lang.Code)
			if err != nil {
				return fmt.Errorf("translate refund policy to %s: %w", lang.Code, err)
			}

			pivot := model.ServicePivot{
				ServiceID:    svc.ID,
				LanguageCode: lang.Code,
				Title:        title,
				GeneralInfo:  info,
				RefundPolicy: policy,
			}
			if err := tx.Create(&pivot).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpsertPivot updates the pivot row for one language or creates it when
// absent, keeping at most one non-deleted row per (service, language).
func (r *ContentRepo) UpsertPivot(ctx context.Context, serviceID uint, languageCode string, fields TranslatedFields) (*model.ServicePivot, error) {
	var svc model.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	var pivot model.ServicePivot
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND language_code = ?", serviceID, languageCode).
		First(&pivot).Error
	switch {
	case err == nil:
		pivot.Title = fields.Title
		pivot.GeneralInfo = fields.GeneralInfo
		pivot.RefundPolicy = fields.RefundPolicy
		if err := r.db.WithContext(ctx).Save(&pivot).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		pivot = model.ServicePivot{
			ServiceID:    serviceID,
			LanguageCode: languageCode,
			Title:        fields.Title,
			GeneralInfo:  fields.GeneralInfo,
			RefundPolicy: fields.RefundPolicy,
		}
		if err := r.db.WithContext(ctx).Create(&pivot).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Del(ctx, contentCacheKey(serviceID, languageCode)).Err(); err != nil {
			r.logger.Warn("Failed to invalidate content cache",
				zap.Uint("service_id", serviceID),
				zap.String("language_code", languageCode),
				zap.Error(err))
		}
	}

	return &pivot, nil
}
