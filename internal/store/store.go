package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"balboa-parking-backend/internal/engine"
	"balboa-parking-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// Catalog loads a full snapshot of the pricing tables. When
	// destinationSlug is non-empty, walking distances for that destination
	// are included; an unknown slug simply yields no distances.
	Catalog(ctx context.Context, destinationSlug string) (engine.Catalog, error)

	Lots(ctx context.Context) ([]model.ParkingLot, error)
	Destinations(ctx context.Context) ([]model.Destination, error)

	// ReplaceLots batch-upserts lots and rewrites their tier assignment
	// timelines. Used by the catalog feed ingester.
	ReplaceLots(ctx context.Context, lots []model.ParkingLot, assignments []model.LotTierAssignment) error

	// DB exposes the underlying handle for the subscription endpoints and
	// the notification worker.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) Catalog(ctx context.Context, destinationSlug string) (engine.Catalog, error) {
	var cat engine.Catalog
	db := s.db.WithContext(ctx)

	if err := db.Order("slug").Find(&cat.Lots).Error; err != nil {
		return engine.Catalog{}, fmt.Errorf("failed to load lots: %w", err)
	}
	if err := db.Find(&cat.TierAssignments).Error; err != nil {
		return engine.Catalog{}, fmt.Errorf("failed to load tier assignments: %w", err)
	}
	if err := db.Find(&cat.PricingRules).Error; err != nil {
		return engine.Catalog{}, fmt.Errorf("failed to load pricing rules: %w", err)
	}
	if err := db.Find(&cat.EnforcementPeriods).Error; err != nil {
		return engine.Catalog{}, fmt.Errorf("failed to load enforcement periods: %w", err)
	}
	if err := db.Find(&cat.Holidays).Error; err != nil {
		return engine.Catalog{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	if destinationSlug != "" {
		var dest model.Destination
		err := db.Where("slug = ?", destinationSlug).First(&dest).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			// Unknown destination: recommendations still work, just
			// without walking distances.
		case err != nil:
			return engine.Catalog{}, fmt.Errorf("failed to resolve destination %q: %w", destinationSlug, err)
		default:
			cat.DestinationID = dest.ID
			if err := db.Where("destination_id = ?", dest.ID).Find(&cat.Distances).Error; err != nil {
				return engine.Catalog{}, fmt.Errorf("failed to load distances: %w", err)
			}
		}
	}

	return cat, nil
}

func (s *gormStore) Lots(ctx context.Context) ([]model.ParkingLot, error) {
	var lots []model.ParkingLot
	if err := s.db.WithContext(ctx).Order("slug").Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("failed to load lots: %w", err)
	}
	return lots, nil
}

func (s *gormStore) Destinations(ctx context.Context) ([]model.Destination, error) {
	var dests []model.Destination
	if err := s.db.WithContext(ctx).Order("slug").Find(&dests).Error; err != nil {
		return nil, fmt.Errorf("failed to load destinations: %w", err)
	}
	return dests, nil
}

func (s *gormStore) ReplaceLots(ctx context.Context, lots []model.ParkingLot, assignments []model.LotTierAssignment) error {
	if len(lots) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"slug", "name", "display_name", "address", "lat", "lng", "capacity",
				"has_ev_charging", "has_ada_spaces", "has_tram_stop", "special_rules",
				"notes", "updated_at",
			}),
		}).Create(&lots).Error; err != nil {
			return fmt.Errorf("batch upsert lots failed: %w", err)
		}

		// Assignment timelines are replaced wholesale per lot: the feed is
		// the source of truth for the full history, not a delta.
		lotIDs := make([]string, len(lots))
		for i, lot := range lots {
			lotIDs[i] = lot.ID
		}
		if err := tx.Where("lot_id IN ?", lotIDs).Delete(&model.LotTierAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear tier assignments: %w", err)
		}
		if len(assignments) > 0 {
			if err := tx.Create(&assignments).Error; err != nil {
				return fmt.Errorf("failed to insert tier assignments: %w", err)
			}
		}
		return nil
	})
}
