package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"offwork.app/offwork/core"
	"offwork.app/offwork/notify"
	"offwork.app/offwork/utils"
	"offwork.app/offwork/web/common"
)

type Endpoint struct {
	engine   *core.Engine
	clock    core.Clock
	notifier notify.Scheduler
}

func Register(r *gin.RouterGroup, engine *core.Engine, clock core.Clock, notifier notify.Scheduler) {
	endpoint := &Endpoint{engine: engine, clock: clock, notifier: notifier}
	r.GET("/shift", endpoint.Status)
	r.POST("/shift/start", endpoint.Start)
	r.POST("/shift/end", endpoint.End)
	r.POST("/shift/validate", endpoint.Validate)
	r.GET("/shift/preview", endpoint.Preview)
	r.POST("/notifications/permission", endpoint.RequestPermission)
}

func (ep *Endpoint) status(now time.Time) ShiftStatusDTO {
	dto := ShiftStatusDTO{
		IsWorking:   ep.engine.IsWorking(),
		IsOvertime:  ep.engine.IsOvertime(now),
		Progress:    ep.engine.Progress(now),
		EndTime:     ep.engine.FormattedEndTime(),
		WorkInfo:    ep.engine.WorkInfo(),
		Date:        common.DateOnly{Time: now.In(utils.ReferenceTZ)},
		DataCleared: ep.engine.ConsumeCleanupNotice(),
	}
	if end := ep.engine.EndTime(); !end.IsZero() {
		dto.EndAt = common.LocalDateTime{Time: end.In(utils.ReferenceTZ)}
	}
	return dto
}

func (ep *Endpoint) Status(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(ep.status(ep.clock.Now())))
}

func parseStartTime(s string) (time.Time, error) {
	if t, err := utils.ParseClock(s); err == nil {
		return t, nil
	}
	t, err := utils.ParseISOTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return *t, nil
}

func (ep *Endpoint) Start(c *gin.Context) {
	var startDTO ShiftStartDTO
	if err := c.ShouldBindJSON(&startDTO); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	startTime, err := parseStartTime(startDTO.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid startTime"))
		return
	}

	now := ep.clock.Now()
	ep.engine.Start(c.Request.Context(), core.Config{StartTime: startTime, HalfDay: startDTO.HalfDay}, now)

	c.JSON(http.StatusOK, common.NewSuccessResponse(ep.status(now)))
}

func (ep *Endpoint) End(c *gin.Context) {
	ep.engine.End(c.Request.Context())
	c.JSON(http.StatusOK, common.NewSuccessResponse(ep.status(ep.clock.Now())))
}

// Validate is the app-foreground hook: day rollovers and long-overdue shifts
// are force-ended here.
func (ep *Endpoint) Validate(c *gin.Context) {
	now := ep.clock.Now()
	ep.engine.Validate(c.Request.Context(), now)
	c.JSON(http.StatusOK, common.NewSuccessResponse(ep.status(now)))
}

func (ep *Endpoint) Preview(c *gin.Context) {
	startTime, err := parseStartTime(c.Query("startTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid startTime"))
		return
	}

	cfg := core.Config{StartTime: startTime, HalfDay: c.Query("halfDay") == "true"}
	c.JSON(http.StatusOK, common.NewSuccessResponse(ShiftPreviewDTO{
		EndTime:   ep.engine.PreviewEndTime(cfg, ep.clock.Now()),
		WorkHours: cfg.WorkHoursLabel(),
	}))
}

func (ep *Endpoint) RequestPermission(c *gin.Context) {
	// Denial is a state, not a failure; the boolean is the whole answer.
	granted, _ := ep.notifier.RequestPermission(c.Request.Context())
	c.JSON(http.StatusOK, common.NewSuccessResponse(PermissionDTO{Granted: granted}))
}
