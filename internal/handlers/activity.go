package handlers

import (
	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// activityRecorder appends entries to the activity log. A nil repository
// turns recording off.
type activityRecorder struct {
	repo   repositories.ActivityRepository
	logger logging.Logger
}

// record logs failures instead of returning them; the action itself has
// already succeeded.
func (r activityRecorder) record(c echo.Context, typ, actorID, targetID, targetType string) {
	if r.repo == nil {
		return
	}
	ctx := c.Request().Context()
	err := r.repo.RecordActivity(ctx, &models.Activity{
		Type:       typ,
		ActorID:    actorID,
		TargetID:   targetID,
		TargetType: targetType,
	})
	if err != nil {
		r.logger.Warn(ctx, "record activity", "type", typ, "actor_id", actorID, "error", err)
	}
}
