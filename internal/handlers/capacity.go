package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type capacityRequest struct {
	Data *string `json:"data"`
}

// CheckCapacity handles POST /api/check-capacity. Payloads that are too large
// are a normal answer here, reported with is_within_limit false.
func (h *Handler) CheckCapacity(c *gin.Context) {
	var req capacityRequest
	if err := bindJSON(c, &req); err != nil {
		h.abort(c, err)
		return
	}
	if req.Data == nil {
		h.abort(c, badRequest("Missing 'data' field"))
		return
	}

	report := h.prober.Probe([]byte(*req.Data))
	h.logger.DebugContext(c.Request.Context(), "capacity probed",
		slog.Int("bytes", report.ByteCount),
		slog.Int("max_capacity_bytes", report.MaxCapacityBytes),
		slog.Bool("within_limit", report.IsWithinLimit),
		slog.Bool("verified", report.Verified),
	)
	c.JSON(http.StatusOK, report)
}
