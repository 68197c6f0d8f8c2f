package routes

import (
	"sort"

	"society-portal-server/models"
	"society-portal-server/services"
	"society-portal-server/storage"
	"society-portal-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/vendors — both tables merged, most recent activity first.
func AdminListVendors(ctx iris.Context) {
	vendors, err := availabilitySvc.ListVendors(ctx.Request().Context(), services.DirectoryFilter{})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	sort.Slice(vendors, func(i, j int) bool {
		return vendors[i].LatestDate.After(vendors[j].LatestDate)
	})
	utils.JSONPage(ctx, vendors, 1, len(vendors), int64(len(vendors)))
}

type verifyInput struct {
	Table    models.ListingKind `json:"table" validate:"required"`
	Verified bool               `json:"verified"`
}

// POST /api/admin/vendors/{vendorID}/verify { table, verified }
func AdminSetVerification(ctx iris.Context) {
	vendorID := ctx.Params().Get("vendorID")

	var body verifyInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
		return
	}

	newState, err := verificationSvc.SetVerification(ctx.Request().Context(), caller(ctx), vendorID, body.Table, body.Verified)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	storage.CacheDel(ctx.Request().Context(), "vendors:dir")
	utils.JSONData(ctx, iris.Map{
		"vendorID": vendorID,
		"table":    body.Table,
		"verified": newState,
	})
}

// GET /api/admin/verification-logs?limit=50
func AdminListVerificationLogs(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 50)

	logs, err := adminRegistry.ListVerificationLogs(ctx.Request().Context(), limit)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONData(ctx, logs)
}
