package routes

import (
	"errors"

	"society-portal-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GET /api/poll
func ListPolls(ctx iris.Context) {
	polls, err := pollStore.ListPolls(ctx.Request().Context())
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	utils.JSONData(ctx, polls)
}

type voteInput struct {
	Option string `json:"option" validate:"required"`
}

// POST /api/poll/{id:uint}/vote { option }
func CastPollVote(ctx iris.Context) {
	pollID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid poll id")
		return
	}

	var body voteInput
	if err := ctx.ReadJSON(&body); err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
		return
	}

	ident := caller(ctx)
	if err := pollStore.CastVote(ctx.Request().Context(), pollID, ident.ID, body.Option); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "poll not found")
		case errors.Is(err, gorm.ErrInvalidData):
			utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
		default:
			writeServiceError(ctx, err)
		}
		return
	}

	utils.JSONData(ctx, iris.Map{"pollID": pollID, "option": body.Option})
}

// GET /api/poll/{id:uint}/results
func GetPollResults(ctx iris.Context) {
	pollID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid poll id")
		return
	}

	tally, err := pollStore.Results(ctx.Request().Context(), pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "poll not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}
	utils.JSONData(ctx, tally)
}
