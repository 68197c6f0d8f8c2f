package routes

import (
	"encoding/json"
	"strings"
	"time"

	"society-portal-server/services"
	"society-portal-server/storage"
	"society-portal-server/utils"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

const directoryCacheTTL = 60 * time.Second

// GET /api/vendor?area=&society=&service=&q=
func ListVendors(ctx iris.Context) {
	filter := services.DirectoryFilter{
		Area:    strings.TrimSpace(ctx.URLParam("area")),
		Society: strings.TrimSpace(ctx.URLParam("society")),
		Service: strings.TrimSpace(ctx.URLParam("service")),
		Query:   strings.TrimSpace(ctx.URLParam("q")),
	}

	// Unfiltered directory is the hot path; serve it from redis when warm.
	cacheKey := ""
	if filter == (services.DirectoryFilter{}) {
		cacheKey = "vendors:dir"
		if b, ok := storage.CacheGet(ctx.Request().Context(), cacheKey); ok {
			ctx.ContentType("application/json")
			ctx.Write(b)
			return
		}
	}

	vendors, err := availabilitySvc.ListVendors(ctx.Request().Context(), filter)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	payload := iris.Map{"data": vendors, "meta": iris.Map{"total": len(vendors)}}
	if cacheKey != "" {
		if b, err := json.Marshal(payload); err == nil {
			storage.CacheSet(ctx.Request().Context(), cacheKey, b, directoryCacheTTL)
		}
	}
	ctx.JSON(payload)
}

// GET /api/vendor/{vendorID}/slots
func GetVendorSlots(ctx iris.Context) {
	vendorID := ctx.Params().Get("vendorID")

	days, err := availabilitySvc.VendorSlots(ctx.Request().Context(), vendorID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONData(ctx, days)
}

// POST /api/vendor/availability
func SetVendorAvailability(ctx iris.Context) {
	var input services.AvailabilityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
		return
	}

	if err := availabilitySvc.SetAvailability(ctx.Request().Context(), caller(ctx), input); err != nil {
		writeServiceError(ctx, err)
		return
	}

	storage.CacheDel(ctx.Request().Context(), "vendors:dir")
	logger.Debug("directory cache invalidated", zap.String("vendorID", input.VendorID))
	ctx.StatusCode(iris.StatusOK)
	utils.JSONData(ctx, iris.Map{"vendorID": input.VendorID, "date": input.Date, "saved": true})
}
