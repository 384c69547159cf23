package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Saloon
// --------------------------------------------------

func (r *CatalogGormRepository) GetSaloon(
	ctx context.Context,
	id uint,
) (*models.Saloon, error) {

	var saloon models.Saloon
	if err := r.db.WithContext(ctx).First(&saloon, id).Error; err != nil {
		return nil, notFoundOr(err, domain.ErrSaloonNotFound)
	}
	return &saloon, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *CatalogGormRepository) GetStaff(
	ctx context.Context,
	saloonID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Preload("WorkingDays.Breaks").
		Where("id = ? AND saloon_id = ? AND active = ?", staffID, saloonID, true).
		First(&staff).Error; err != nil {
		return nil, notFoundOr(err, domain.ErrStaffNotFound)
	}
	return &staff, nil
}

// --------------------------------------------------
// Service variations
// --------------------------------------------------

func (r *CatalogGormRepository) ListVariations(
	ctx context.Context,
	saloonID uint,
	ids []uint,
) ([]models.ServiceVariation, error) {

	if len(ids) == 0 {
		return []models.ServiceVariation{}, nil
	}

	var found []models.ServiceVariation
	if err := r.db.WithContext(ctx).
		Where("saloon_id = ? AND active = ? AND id IN ?", saloonID, true, ids).
		Find(&found).Error; err != nil {
		return nil, storeFault(err)
	}

	byID := make(map[uint]models.ServiceVariation, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}

	// Keep request order; a variation may be requested twice.
	out := make([]models.ServiceVariation, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			return nil, domain.ErrVariationNotFound
		}
		out = append(out, v)
	}
	return out, nil
}

// --------------------------------------------------
// Working days
// --------------------------------------------------

func (r *CatalogGormRepository) ListWorkingDays(
	ctx context.Context,
	staffID uint,
) ([]models.WorkingDay, error) {

	var days []models.WorkingDay
	if err := r.db.WithContext(ctx).
		Preload("Breaks").
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, storeFault(err)
	}
	return days, nil
}

func (r *CatalogGormRepository) ReplaceWorkingDays(
	ctx context.Context,
	staffID uint,
	days []models.WorkingDay,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldIDs []uint
		if err := tx.Model(&models.WorkingDay{}).
			Where("staff_id = ?", staffID).
			Pluck("id", &oldIDs).Error; err != nil {
			return err
		}

		if len(oldIDs) > 0 {
			if err := tx.Where("working_day_id IN ?", oldIDs).
				Delete(&models.BreakTime{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", oldIDs).
				Delete(&models.WorkingDay{}).Error; err != nil {
				return err
			}
		}

		for i := range days {
			days[i].ID = 0
			days[i].StaffID = staffID
			for j := range days[i].Breaks {
				days[i].Breaks[j].ID = 0
			}
		}

		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})

	return storeFault(err)
}

func notFoundOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storeFault(err)
}

// Compile-time checks
var (
	_ domain.Catalog         = (*CatalogGormRepository)(nil)
	_ domain.WorkingDayStore = (*CatalogGormRepository)(nil)
)
