package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-portal-server/models"
)

// --- Fake AvailabilityStore ---

type fakeAvailabilityStore struct {
	listRowsFn   func(ctx context.Context) ([]models.VendorAvailabilityRow, error)
	vendorRowsFn func(ctx context.Context, vendorID string) ([]models.VendorAvailabilityRow, error)
	upsertRowFn  func(ctx context.Context, kind models.ListingKind, row *models.VendorAvailabilityRow) error
}

func (f *fakeAvailabilityStore) ListRows(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
	return f.listRowsFn(ctx)
}
func (f *fakeAvailabilityStore) VendorRows(ctx context.Context, vendorID string) ([]models.VendorAvailabilityRow, error) {
	return f.vendorRowsFn(ctx, vendorID)
}
func (f *fakeAvailabilityStore) UpsertRow(ctx context.Context, kind models.ListingKind, row *models.VendorAvailabilityRow) error {
	return f.upsertRowFn(ctx, kind, row)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(id uint, vendorID string, date time.Time, slots map[string]bool) models.VendorAvailabilityRow {
	r := models.VendorAvailabilityRow{
		ID:         id,
		VendorID:   vendorID,
		Date:       date,
		VendorName: "Vendor " + vendorID,
		Area:       "Parel",
		Societies:  `["Ashok Gardens"]`,
		Services:   "cleaning",
		Kind:       models.ListingPermanent,
	}
	if err := r.SetSlotMap(slots); err != nil {
		panic(err)
	}
	return r
}

func TestListVendorsGroupsByVendorNewestWins(t *testing.T) {
	old := row(1, "V1", day(2024, 6, 1), nil)
	old.Area = "Worli" // stale metadata on the older row
	newer := row(2, "V1", day(2024, 6, 10), nil)

	store := &fakeAvailabilityStore{
		listRowsFn: func(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
			return []models.VendorAvailabilityRow{old, newer}, nil
		},
	}
	svc := NewAvailabilityService(store, nil)

	vendors, err := svc.ListVendors(context.Background(), DirectoryFilter{})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "V1", vendors[0].VendorID)
	assert.Equal(t, "Parel", vendors[0].Area, "the most recent row's fields must be authoritative")
	assert.Equal(t, day(2024, 6, 10), vendors[0].LatestDate)
}

func TestListVendorsSameDateHigherIDWins(t *testing.T) {
	a := row(3, "V1", day(2024, 6, 10), nil)
	a.Area = "Worli"
	b := row(7, "V1", day(2024, 6, 10), nil)

	store := &fakeAvailabilityStore{
		listRowsFn: func(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
			return []models.VendorAvailabilityRow{b, a}, nil
		},
	}
	svc := NewAvailabilityService(store, nil)

	vendors, err := svc.ListVendors(context.Background(), DirectoryFilter{})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Parel", vendors[0].Area)
}

func TestListVendorsAppliesFilter(t *testing.T) {
	v1 := row(1, "V1", day(2024, 6, 10), nil)
	v2 := row(2, "V2", day(2024, 6, 10), nil)
	v2.Area = "Worli"

	store := &fakeAvailabilityStore{
		listRowsFn: func(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
			return []models.VendorAvailabilityRow{v1, v2}, nil
		},
	}
	svc := NewAvailabilityService(store, nil)

	vendors, err := svc.ListVendors(context.Background(), DirectoryFilter{Area: "Parel"})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "V1", vendors[0].VendorID)
}

func TestVendorSlotsOnlyExplicitTrue(t *testing.T) {
	withOne := row(1, "V1", day(2024, 6, 10), map[string]bool{"10-11": true, "11-12": false})
	empty := row(2, "V1", day(2024, 6, 11), nil)

	store := &fakeAvailabilityStore{
		vendorRowsFn: func(ctx context.Context, vendorID string) ([]models.VendorAvailabilityRow, error) {
			assert.Equal(t, "V1", vendorID)
			return []models.VendorAvailabilityRow{withOne, empty}, nil
		},
	}
	svc := NewAvailabilityService(store, nil)

	days, err := svc.VendorSlots(context.Background(), "V1")
	require.NoError(t, err)
	require.Len(t, days, 2, "dates with zero open slots are still returned")

	require.Len(t, days[0].Available, 1)
	assert.Equal(t, "10-11", days[0].Available[0].ID)
	assert.Equal(t, "10-11am", days[0].Available[0].Label)

	assert.NotNil(t, days[1].Available)
	assert.Empty(t, days[1].Available, "no chip for a date without open slots")
}

func TestVendorSlotsRequiresVendorID(t *testing.T) {
	svc := NewAvailabilityService(&fakeAvailabilityStore{}, nil)
	_, err := svc.VendorSlots(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetAvailabilityDropsFalseFlags(t *testing.T) {
	var saved *models.VendorAvailabilityRow
	store := &fakeAvailabilityStore{
		upsertRowFn: func(ctx context.Context, kind models.ListingKind, row *models.VendorAvailabilityRow) error {
			saved = row
			return nil
		},
	}
	svc := NewAvailabilityService(store, nil)

	err := svc.SetAvailability(context.Background(), Identity{ID: 7}, AvailabilityInput{
		VendorID:   "V1",
		Kind:       models.ListingWeekly,
		Date:       day(2024, 6, 10),
		VendorName: "Sunita",
		Slots:      map[string]bool{"9-10": false, "10-11": true},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	m := saved.SlotMap()
	assert.Equal(t, map[string]bool{"10-11": true}, m, "false flags must not be stored")
	assert.False(t, saved.IsVerified, "new rows start unverified")
}

func TestSetAvailabilityRejectsUnknownSlot(t *testing.T) {
	svc := NewAvailabilityService(&fakeAvailabilityStore{}, nil)

	err := svc.SetAvailability(context.Background(), Identity{ID: 7}, AvailabilityInput{
		VendorID:   "V1",
		Kind:       models.ListingPermanent,
		Date:       day(2024, 6, 10),
		VendorName: "Sunita",
		Slots:      map[string]bool{"25-26": true},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetAvailabilityRejectsBadKind(t *testing.T) {
	svc := NewAvailabilityService(&fakeAvailabilityStore{}, nil)

	err := svc.SetAvailability(context.Background(), Identity{ID: 7}, AvailabilityInput{
		VendorID:   "V1",
		Kind:       models.ListingKind("monthly"),
		Date:       day(2024, 6, 10),
		VendorName: "Sunita",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListVendorsRetriesOnceOnTimeout(t *testing.T) {
	calls := 0
	store := &fakeAvailabilityStore{
		listRowsFn: func(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
			calls++
			if calls == 1 {
				return nil, context.DeadlineExceeded
			}
			return []models.VendorAvailabilityRow{row(1, "V1", day(2024, 6, 10), nil)}, nil
		},
	}
	svc := NewAvailabilityService(store, nil)

	vendors, err := svc.ListVendors(context.Background(), DirectoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, vendors, 1)
}

func TestListVendorsTimeoutSurfacesAsRetryable(t *testing.T) {
	store := &fakeAvailabilityStore{
		listRowsFn: func(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
			return nil, context.DeadlineExceeded
		},
	}
	svc := NewAvailabilityService(store, nil)

	_, err := svc.ListVendors(context.Background(), DirectoryFilter{})
	assert.ErrorIs(t, err, ErrTimeout)
}
