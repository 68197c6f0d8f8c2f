package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ListingKind selects which physical availability table a vendor listing
// lives in. The table membership is fixed at creation and never migrated.
type ListingKind string

const (
	ListingPermanent ListingKind = "permanent"
	ListingWeekly    ListingKind = "weekly"
)

func (k ListingKind) Valid() bool {
	return k == ListingPermanent || k == ListingWeekly
}

// Table returns the physical table name for the kind.
func (k ListingKind) Table() string {
	if k == ListingWeekly {
		return "vendor_availability_weekly"
	}
	return "vendor_availability_permanent"
}

// VendorAvailabilityRow is one vendor's slot availability for one calendar
// date, plus denormalized vendor fields carried for display. Slots holds a
// JSON object of slot id -> bool; an absent key means unavailable.
type VendorAvailabilityRow struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	VendorID string         `json:"vendorID" gorm:"size:64;not null;index:idx_vendor_date,unique,priority:1"`
	Date     time.Time      `json:"date" gorm:"type:date;not null;index:idx_vendor_date,unique,priority:2"`
	Slots    datatypes.JSON `json:"slots" gorm:"type:jsonb"`

	VendorName string `json:"vendorName" gorm:"size:255"`
	Mobile     string `json:"mobile" gorm:"size:20"`
	Area       string `json:"area" gorm:"size:128;index"`
	// Societies may hold a JSON array ("[\"A\",\"B\"]") or a legacy braced
	// string ("{A,B}"). Normalized by the service layer, never here.
	Societies string `json:"societies" gorm:"type:text"`
	Services  string `json:"services" gorm:"size:128"` // cleaning, cooking, both, ...

	IsVerified bool `json:"isVerified" gorm:"default:false;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Kind is filled in by the store when rows from both tables are merged.
	Kind ListingKind `json:"kind,omitempty" gorm:"-"`
}

// SlotMap decodes the Slots column. A nil or invalid payload decodes to an
// empty map, never to implicit availability.
func (r *VendorAvailabilityRow) SlotMap() map[string]bool {
	m := map[string]bool{}
	if len(r.Slots) == 0 {
		return m
	}
	if err := json.Unmarshal(r.Slots, &m); err != nil {
		return map[string]bool{}
	}
	return m
}

// SetSlotMap encodes the given map into the Slots column.
func (r *VendorAvailabilityRow) SetSlotMap(m map[string]bool) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	r.Slots = datatypes.JSON(b)
	return nil
}

type VendorAvailabilityPermanent struct {
	VendorAvailabilityRow
}

func (VendorAvailabilityPermanent) TableName() string { return "vendor_availability_permanent" }

type VendorAvailabilityWeekly struct {
	VendorAvailabilityRow
}

func (VendorAvailabilityWeekly) TableName() string { return "vendor_availability_weekly" }
