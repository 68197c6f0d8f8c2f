package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"society-portal-server/models"
)

// Authorizer answers whether a user is an active admin. Backed by the
// admin_users registry in production; substituted by a fake in tests.
type Authorizer interface {
	IsAdmin(ctx context.Context, userID uint) (bool, error)
}

// VerificationStore persists the verified flag and the audit trail for
// listings in either availability table.
type VerificationStore interface {
	// ListingState returns the current verified flag and the vendor's
	// display name for the (vendor, kind) pair.
	ListingState(ctx context.Context, kind models.ListingKind, vendorID string) (verified bool, vendorName string, err error)
	// SetVerified writes the flag and appends the log entry in one
	// transaction; neither persists without the other.
	SetVerified(ctx context.Context, kind models.ListingKind, vendorID string, value bool, entry *models.VerificationLog) error
}

type VerificationService struct {
	auth  Authorizer
	store VerificationStore
	log   *zap.Logger
}

func NewVerificationService(auth Authorizer, store VerificationStore, log *zap.Logger) *VerificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &VerificationService{auth: auth, store: store, log: log}
}

// SetVerification toggles a listing's verified flag on behalf of an admin.
// Every attempt appends its own audit entry, including idempotent ones;
// concurrent toggles stay last-write-wins but the trail keeps all actors.
// Returns the new state for optimistic UI update.
func (s *VerificationService) SetVerification(ctx context.Context, ident Identity, vendorID string, kind models.ListingKind, value bool) (bool, error) {
	if vendorID == "" {
		return false, fmt.Errorf("%w: vendorID is required", ErrValidation)
	}
	if !kind.Valid() {
		return false, fmt.Errorf("%w: table must be permanent or weekly", ErrValidation)
	}

	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	isAdmin, err := s.auth.IsAdmin(cctx, ident.ID)
	if err != nil {
		return false, classifyStoreErr(err)
	}
	if !isAdmin {
		s.log.Warn("verification attempt by non-admin",
			zap.Uint("userID", ident.ID),
			zap.String("vendorID", vendorID))
		return false, fmt.Errorf("%w: user %d is not an active admin", ErrPermissionDenied, ident.ID)
	}

	current, vendorName, err := s.store.ListingState(cctx, kind, vendorID)
	if err != nil {
		return false, classifyStoreErr(err)
	}

	entry := models.VerificationLog{
		VendorID:     vendorID,
		ListingTable: kind.Table(),
		OldValue:     current,
		NewValue:     value,
		AdminID:      ident.ID,
		AdminEmail:   ident.Email,
		VendorName:   vendorName,
	}
	if err := s.store.SetVerified(cctx, kind, vendorID, value, &entry); err != nil {
		return false, classifyStoreErr(err)
	}

	s.log.Info("listing verification updated",
		zap.String("vendorID", vendorID),
		zap.String("table", kind.Table()),
		zap.Bool("old", current),
		zap.Bool("new", value),
		zap.Uint("adminID", ident.ID))
	return value, nil
}
