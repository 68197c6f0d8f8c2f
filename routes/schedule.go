package routes

import (
	"errors"
	"time"

	"society-portal-server/schedule"
	"society-portal-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/schedule/slots?days=7&weekdaysOnly=true
// Returns the canonical slot catalogue plus the rolling date window the
// booking grid renders against.
func GetScheduleSlots(ctx iris.Context) {
	days := ctx.URLParamIntDefault("days", 7)
	weekdaysOnly, _ := ctx.URLParamBool("weekdaysOnly")

	window, err := schedule.DateWindow(time.Now(), days, weekdaysOnly)
	if err != nil {
		if errors.Is(err, schedule.ErrBadWindow) {
			utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
			return
		}
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONData(ctx, iris.Map{
		"slots": schedule.TimeSlots(),
		"dates": window,
	})
}
