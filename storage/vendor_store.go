package storage

import (
	"context"
	"sort"

	"society-portal-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VendorStore adapts the two physical availability tables behind one
// ListingKind-tagged interface, so no caller ever branches on table names.
type VendorStore struct {
	db *gorm.DB
}

func NewVendorStore(db *gorm.DB) *VendorStore {
	return &VendorStore{db: db}
}

func (s *VendorStore) ListRows(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
	var perm []models.VendorAvailabilityPermanent
	if err := s.db.WithContext(ctx).Order("date ASC, id ASC").Find(&perm).Error; err != nil {
		return nil, err
	}
	var weekly []models.VendorAvailabilityWeekly
	if err := s.db.WithContext(ctx).Order("date ASC, id ASC").Find(&weekly).Error; err != nil {
		return nil, err
	}

	out := make([]models.VendorAvailabilityRow, 0, len(perm)+len(weekly))
	for _, p := range perm {
		r := p.VendorAvailabilityRow
		r.Kind = models.ListingPermanent
		out = append(out, r)
	}
	for _, w := range weekly {
		r := w.VendorAvailabilityRow
		r.Kind = models.ListingWeekly
		out = append(out, r)
	}
	return out, nil
}

func (s *VendorStore) VendorRows(ctx context.Context, vendorID string) ([]models.VendorAvailabilityRow, error) {
	var perm []models.VendorAvailabilityPermanent
	if err := s.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("date ASC").Find(&perm).Error; err != nil {
		return nil, err
	}
	var weekly []models.VendorAvailabilityWeekly
	if err := s.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("date ASC").Find(&weekly).Error; err != nil {
		return nil, err
	}

	out := make([]models.VendorAvailabilityRow, 0, len(perm)+len(weekly))
	for _, p := range perm {
		r := p.VendorAvailabilityRow
		r.Kind = models.ListingPermanent
		out = append(out, r)
	}
	for _, w := range weekly {
		r := w.VendorAvailabilityRow
		r.Kind = models.ListingWeekly
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// UpsertRow writes one (vendor, date) row into the kind's table. Conflicts
// on the unique (vendor_id, date) index update the slot map and the
// denormalized vendor fields; the verified flag is left untouched.
func (s *VendorStore) UpsertRow(ctx context.Context, kind models.ListingKind, row *models.VendorAvailabilityRow) error {
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "vendor_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"slots", "vendor_name", "mobile", "area", "societies", "services", "updated_at",
		}),
	}

	switch kind {
	case models.ListingWeekly:
		rec := models.VendorAvailabilityWeekly{VendorAvailabilityRow: *row}
		return s.db.WithContext(ctx).Clauses(onConflict).Create(&rec).Error
	default:
		rec := models.VendorAvailabilityPermanent{VendorAvailabilityRow: *row}
		return s.db.WithContext(ctx).Clauses(onConflict).Create(&rec).Error
	}
}

// ListingState reads the verified flag off the vendor's most recent row in
// the kind's table. Missing vendors surface gorm.ErrRecordNotFound.
func (s *VendorStore) ListingState(ctx context.Context, kind models.ListingKind, vendorID string) (bool, string, error) {
	var row models.VendorAvailabilityRow
	err := s.db.WithContext(ctx).
		Table(kind.Table()).
		Where("vendor_id = ?", vendorID).
		Order("date DESC, id DESC").
		First(&row).Error
	if err != nil {
		return false, "", err
	}
	return row.IsVerified, row.VendorName, nil
}

// SetVerified flips the flag on every row the vendor holds in the kind's
// table and appends the audit entry, atomically. A vanished vendor rolls
// the transaction back with gorm.ErrRecordNotFound.
func (s *VendorStore) SetVerified(ctx context.Context, kind models.ListingKind, vendorID string, value bool, entry *models.VerificationLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(kind.Table()).
			Where("vendor_id = ?", vendorID).
			Update("is_verified", value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(entry).Error
	})
}
