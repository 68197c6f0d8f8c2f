package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"society-portal-server/models"
	"society-portal-server/schedule"
)

// Identity is the authenticated caller, resolved once at the edge and
// passed explicitly. Services never read ambient session state.
type Identity struct {
	ID    uint
	Email string
}

// AvailabilityStore is the persistence boundary for the two availability
// tables. Implemented by storage.VendorStore; faked in tests.
type AvailabilityStore interface {
	// ListRows returns every availability row from both tables, each
	// tagged with its ListingKind.
	ListRows(ctx context.Context) ([]models.VendorAvailabilityRow, error)
	// VendorRows returns one vendor's rows from both tables, date ascending.
	VendorRows(ctx context.Context, vendorID string) ([]models.VendorAvailabilityRow, error)
	// UpsertRow inserts or updates the (vendor, date) row in the kind's table.
	UpsertRow(ctx context.Context, kind models.ListingKind, row *models.VendorAvailabilityRow) error
}

// storeTimeout bounds every external store call; timeouts surface as
// ErrTimeout and reads get one re-attempt before giving up.
const (
	storeTimeout = 15 * time.Second
	retryDelay   = 500 * time.Millisecond
)

type AvailabilityService struct {
	store AvailabilityStore
	log   *zap.Logger
}

func NewAvailabilityService(store AvailabilityStore, log *zap.Logger) *AvailabilityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AvailabilityService{store: store, log: log}
}

// DaySlots is one date of a vendor's grid. Available holds only slots
// explicitly marked true, in catalogue order; a date with none renders no
// slot chips.
type DaySlots struct {
	VendorID  string              `json:"vendorID"`
	Date      time.Time           `json:"date"`
	Kind      models.ListingKind  `json:"kind"`
	Available []schedule.TimeSlot `json:"available"`
}

// ListVendors scans all availability rows, keeps one representative row
// per vendor and applies the directory filter.
func (s *AvailabilityService) ListVendors(ctx context.Context, f DirectoryFilter) ([]VendorSummary, error) {
	rows, err := s.listRowsWithRetry(ctx)
	if err != nil {
		return nil, err
	}

	reps := map[string]models.VendorAvailabilityRow{}
	order := []string{}
	for _, r := range rows {
		cur, seen := reps[r.VendorID]
		if !seen {
			reps[r.VendorID] = r
			order = append(order, r.VendorID)
			continue
		}
		if newerRow(r, cur) {
			reps[r.VendorID] = r
		}
	}

	vendors := make([]VendorSummary, 0, len(order))
	for _, id := range order {
		vendors = append(vendors, summarize(reps[id]))
	}
	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].Name != vendors[j].Name {
			return vendors[i].Name < vendors[j].Name
		}
		return vendors[i].VendorID < vendors[j].VendorID
	})

	return FilterVendors(vendors, f), nil
}

// VendorSlots returns the vendor's grid, date ascending. Dates whose rows
// carry zero true flags are still returned, with an empty Available list.
func (s *AvailabilityService) VendorSlots(ctx context.Context, vendorID string) ([]DaySlots, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("%w: vendorID is required", ErrValidation)
	}

	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	rows, err := s.store.VendorRows(cctx, vendorID)
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	out := make([]DaySlots, 0, len(rows))
	for _, r := range rows {
		out = append(out, DaySlots{
			VendorID:  r.VendorID,
			Date:      r.Date,
			Kind:      r.Kind,
			Available: availableSlots(r),
		})
	}
	return out, nil
}

// AvailabilityInput is one vendor-date registration.
type AvailabilityInput struct {
	VendorID   string             `json:"vendorID" validate:"required"`
	Kind       models.ListingKind `json:"kind" validate:"required"`
	Date       time.Time          `json:"date" validate:"required"`
	Slots      map[string]bool    `json:"slots"`
	VendorName string             `json:"vendorName" validate:"required"`
	Mobile     string             `json:"mobile"`
	Area       string             `json:"area"`
	Societies  []string           `json:"societies"`
	Services   string             `json:"services"`
}

// SetAvailability upserts one (vendor, date) row. Only slot ids from the
// catalogue are accepted; flags that are false are dropped so that absent
// always means unavailable. New rows start unverified.
func (s *AvailabilityService) SetAvailability(ctx context.Context, ident Identity, in AvailabilityInput) error {
	if in.VendorID == "" || in.Date.IsZero() {
		return fmt.Errorf("%w: vendorID and date are required", ErrValidation)
	}
	if !in.Kind.Valid() {
		return fmt.Errorf("%w: kind must be permanent or weekly", ErrValidation)
	}

	slots := map[string]bool{}
	for id, on := range in.Slots {
		if !schedule.KnownSlotID(id) {
			return fmt.Errorf("%w: unknown slot id %q", ErrValidation, id)
		}
		if on {
			slots[id] = true
		}
	}

	row := models.VendorAvailabilityRow{
		VendorID:   in.VendorID,
		Date:       in.Date,
		VendorName: in.VendorName,
		Mobile:     in.Mobile,
		Area:       in.Area,
		Societies:  encodeSocieties(in.Societies),
		Services:   in.Services,
	}
	if err := row.SetSlotMap(slots); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.store.UpsertRow(cctx, in.Kind, &row); err != nil {
		s.log.Warn("availability upsert failed",
			zap.String("vendorID", in.VendorID),
			zap.Uint("userID", ident.ID),
			zap.Error(err))
		return classifyStoreErr(err)
	}

	s.log.Info("availability saved",
		zap.String("vendorID", in.VendorID),
		zap.String("kind", string(in.Kind)),
		zap.Time("date", in.Date),
		zap.Int("openSlots", len(slots)))
	return nil
}

func (s *AvailabilityService) listRowsWithRetry(ctx context.Context) ([]models.VendorAvailabilityRow, error) {
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	rows, err := s.store.ListRows(cctx)
	cancel()
	if err == nil {
		return rows, nil
	}

	err = classifyStoreErr(err)
	if !errors.Is(err, ErrTimeout) {
		return nil, err
	}
	s.log.Warn("directory scan timed out, retrying once", zap.Error(err))

	select {
	case <-time.After(retryDelay):
	case <-ctx.Done():
		return nil, classifyStoreErr(ctx.Err())
	}

	cctx, cancel = context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	rows, err = s.store.ListRows(cctx)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return rows, nil
}

// newerRow decides the representative-row tie-break: greatest date wins,
// ties broken by the higher row id, so the latest vendor metadata is
// always authoritative.
func newerRow(a, b models.VendorAvailabilityRow) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.ID > b.ID
}

func summarize(r models.VendorAvailabilityRow) VendorSummary {
	return VendorSummary{
		VendorID:   r.VendorID,
		Name:       r.VendorName,
		Mobile:     r.Mobile,
		Area:       r.Area,
		Societies:  NormalizeSocieties(r.Societies),
		Services:   ExpandServices(r.Services),
		Kind:       r.Kind,
		IsVerified: r.IsVerified,
		LatestDate: r.Date,
	}
}

// availableSlots returns the row's true-flagged slots in catalogue order.
func availableSlots(r models.VendorAvailabilityRow) []schedule.TimeSlot {
	m := r.SlotMap()
	out := make([]schedule.TimeSlot, 0, len(m))
	for _, slot := range schedule.TimeSlots() {
		if m[slot.ID] {
			out = append(out, slot)
		}
	}
	return out
}

func encodeSocieties(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
