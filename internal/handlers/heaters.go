package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"incomfort"
	"incomfort/internal/munin"
	"incomfort/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidHeater   = "heater must be a non-negative integer"
	errInvalidBodyPref = "invalid body: "
)

// setpointRequest is the body of PUT /api/v1/heaters/{heater}/setpoint.
type setpointRequest struct {
	// Requested room setpoint; clamped by the gateway codec to 5..30
	SetpointC *float64 `json:"setpoint_c" binding:"required" example:"20.5"`
}

// logAndJSONError logs err under logKey and answers with userMsg.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDCtx)}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// errorStatus maps service and gateway errors onto HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownHeater):
		return http.StatusNotFound
	case errors.Is(err, incomfort.ErrDomain):
		return http.StatusBadRequest
	case errors.Is(err, incomfort.ErrTransport), errors.Is(err, incomfort.ErrProtocol):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) failHeater(c *gin.Context, logKey string, heater int, err error, kv ...interface{}) {
	h.logAndJSONError(c, errorStatus(err), err.Error(), logKey, err, append([]interface{}{"heater", heater}, kv...)...)
}

// heaterParam reads :heater, answering 400 itself when it is not a valid index.
func heaterParam(c *gin.Context) (int, bool) {
	heater, err := strconv.Atoi(c.Param("heater"))
	if err != nil || heater < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidHeater})
		return 0, false
	}
	return heater, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List heaters
// @Description  Last known state of every heater, live or cached
// @Tags         heaters
// @Produce      json
// @Success      200  {array}   incomfort.HeaterState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heaters [get]
// @Security     BearerAuth
func (h *Handler) listHeaters(c *gin.Context) {
	states, err := h.services.Monitoring.ListStates(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list heaters", "heaters_list_failed", err)
		return
	}
	if states == nil {
		states = []incomfort.HeaterState{}
	}
	c.JSON(http.StatusOK, states)
}

// @Summary      Get heater state
// @Tags         heaters
// @Produce      json
// @Param        heater  path      int  true  "Heater index"
// @Success      200     {object}  incomfort.HeaterState
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/heaters/{heater} [get]
// @Security     BearerAuth
func (h *Handler) getHeater(c *gin.Context) {
	heater, ok := heaterParam(c)
	if !ok {
		return
	}
	st, err := h.services.Monitoring.GetState(c.Request.Context(), heater)
	if err != nil {
		h.failHeater(c, "heater_get_state_failed", heater, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Poll heater now
// @Tags         heaters
// @Produce      json
// @Param        heater  path      int  true  "Heater index"
// @Success      200     {object}  incomfort.HeaterState
// @Failure      400     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /api/v1/heaters/{heater}/refresh [post]
// @Security     BearerAuth
func (h *Handler) refreshHeater(c *gin.Context) {
	heater, ok := heaterParam(c)
	if !ok {
		return
	}
	st, err := h.services.Control.Refresh(c.Request.Context(), heater)
	if err != nil {
		h.failHeater(c, "heater_refresh_failed", heater, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set room setpoint
// @Description  Values outside 5..30 °C are clamped. The response is the state echoed by the gateway.
// @Tags         heaters
// @Accept       json
// @Produce      json
// @Param        heater  path      int              true  "Heater index"
// @Param        body    body      setpointRequest  true  "Setpoint payload"
// @Success      200     {object}  incomfort.HeaterState
// @Failure      400     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /api/v1/heaters/{heater}/setpoint [put]
// @Security     BearerAuth
func (h *Handler) setSetpoint(c *gin.Context) {
	heater, ok := heaterParam(c)
	if !ok {
		return
	}
	var req setpointRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	st, err := h.services.Control.SetSetpoint(c.Request.Context(), heater, *req.SetpointC)
	if err != nil {
		h.failHeater(c, "heater_set_setpoint_failed", heater, err, "setpoint_c", *req.SetpointC)
		return
	}
	if h.log != nil {
		h.log.Infow("heater_setpoint_written", "heater", heater, "requested_c", *req.SetpointC, "setpoint_c", st.SetpointC)
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Munin report
// @Tags         heaters
// @Produce      plain
// @Param        heater  path      int  true  "Heater index"
// @Success      200     {string}  string
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/heaters/{heater}/munin [get]
// @Security     BearerAuth
func (h *Handler) muninReport(c *gin.Context) {
	heater, ok := heaterParam(c)
	if !ok {
		return
	}
	st, err := h.services.Monitoring.GetState(c.Request.Context(), heater)
	if err != nil {
		h.failHeater(c, "heater_munin_failed", heater, err)
		return
	}
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	if err := munin.Report(c.Writer, st.HeaterSnapshot); err != nil && h.log != nil {
		h.log.Infow("heater_munin_write_failed", "heater", heater, "err", err)
	}
}
