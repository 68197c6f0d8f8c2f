package routes

import (
	"errors"

	"society-portal-server/services"
	"society-portal-server/storage"
	"society-portal-server/utils"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	availabilitySvc *services.AvailabilityService
	verificationSvc *services.VerificationService
	adminRegistry   *storage.AdminRegistry
	pollStore       *storage.PollStore
	logger          *zap.Logger
)

// Initialize wires the stores and services the handlers call. Kept as
// package state so handlers stay plain iris funcs, matching the rest of
// the routing table.
func Initialize(db *gorm.DB, log *zap.Logger) {
	vendorStore := storage.NewVendorStore(db)
	adminRegistry = storage.NewAdminRegistry(db)
	pollStore = storage.NewPollStore(db)
	availabilitySvc = services.NewAvailabilityService(vendorStore, log)
	verificationSvc = services.NewVerificationService(adminRegistry, vendorStore, log)
	logger = log
}

// caller rebuilds the explicit identity set by the auth middleware.
func caller(ctx iris.Context) services.Identity {
	ident := services.Identity{}
	if v := ctx.Values().Get("userID"); v != nil {
		if id, ok := v.(uint); ok {
			ident.ID = id
		}
	}
	if v := ctx.Values().Get("userEmail"); v != nil {
		if email, ok := v.(string); ok {
			ident.Email = email
		}
	}
	return ident
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Timeouts get 503 so clients know the failure is retryable.
func writeServiceError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrTimeout):
		utils.JSONError(ctx, iris.StatusServiceUnavailable, "timeout", "store unresponsive, retry later")
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(ctx, iris.StatusConflict, "conflict", err.Error())
	default:
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", err.Error())
	}
}
