package handlers

import (
	"net/http"

	"heater_relay/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	errGetState = "failed to load state"

	problemActuator = "relay output failing"
	problemNoData   = "AUTO without a valid reading; heater held off"
)

// logAndJSONError logs err under logKey and answers with userMsg.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// heaterView is a snapshot plus the derived fields a dashboard shows.
type heaterView struct {
	models.HeaterState
	Heater string `json:"heater"` // ON | OFF
	// BelowThreshold is what AUTO would decide; null without a reading.
	BelowThreshold *bool `json:"below_threshold"`
}

func newHeaterView(st models.HeaterState) heaterView {
	v := heaterView{HeaterState: st, Heater: "OFF"}
	if st.HeaterOn {
		v.Heater = "ON"
	}
	if st.Reading.Valid {
		below := st.Reading.TemperatureC < st.ThresholdC
		v.BelowThreshold = &below
	}
	return v
}

// problems lists what keeps the relay from doing its job.
func problems(st models.HeaterState) []string {
	var out []string
	if st.ActuatorFault != "" {
		out = append(out, problemActuator+": "+st.ActuatorFault)
	}
	if st.Mode == models.ModeAuto && !st.Reading.Valid {
		out = append(out, problemNoData)
	}
	return out
}

// @Summary      Health check
// @Description  "degraded" when the relay output fails or AUTO has no reading to act on.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusServiceUnavailable, errGetState, "health_state_failed", err)
		return
	}
	status, issues := statusOK, problems(st)
	if len(issues) > 0 {
		status = statusDegraded
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"mode":     st.Mode,
		"heater":   newHeaterView(st).Heater,
		"problems": issues,
	})
}

// @Summary      Get heater state
// @Description  Last snapshot recorded by the control loop. Mode changes are only accepted on the control port.
// @Tags         heater
// @Produce      json
// @Success      200  {object}  heaterView
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heater/state [get]
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "heater_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, newHeaterView(st))
}
