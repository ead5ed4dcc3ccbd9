package controllers

import (
	"context"
	"net/http"

	"github.com/moftahak/studio-service/internal/app"
	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{app: a}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// The only external dependency is the study database.
	if err := c.app.Repository.Ping(context.Background()); err != nil {
		utils.Logger.WithError(err).Error("studio-service unhealthy")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
