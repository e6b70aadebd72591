package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"voice-reports/internal/appointments"
	"voice-reports/internal/audit"
	"voice-reports/internal/callreport"
	"voice-reports/internal/reporting"
	"voice-reports/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse input, call internal services, return JSON.
type Handlers struct {
	Reports      *callreport.Service
	Appointments *appointments.Service
	Reporting    *reporting.Service
	Audit        *audit.Service
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MaxBodyBytes caps webhook and appointment request bodies.
const MaxBodyBytes = 1 << 20

// readBody reads at most MaxBodyBytes; a larger body is an error.
func readBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	return c.GetRawData()
}

// badRequest answers in the shape webhook senders already parse.
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"message":    message,
		"error":      "Bad Request",
	})
}

// --- Call reports ---

// IngestCallReport accepts a voice-assistant webhook in any supported shape.
// Every failure is a 400; the sender only sees the public message.
func (h Handlers) IngestCallReport(c *gin.Context) {
	if h.Reports == nil {
		badRequest(c, callreport.ErrProcessing.Error())
		return
	}
	body, err := readBody(c)
	if err != nil {
		badRequest(c, callreport.ErrInvalidPayload.Error())
		return
	}
	v, err := callreport.DecodePayload(body)
	if err != nil {
		badRequest(c, callreport.PublicMessage(err))
		return
	}

	ctx := logger.With(c.Request.Context(), logger.FromGin(c))
	ctx = callreport.WithClientIP(ctx, c.ClientIP())

	ack, err := h.Reports.Ingest(ctx, v)
	if err != nil {
		if callreport.IsValidation(err) {
			logger.FromGin(c).Warn("webhook rejected", "err", err)
		} else {
			logger.FromGin(c).Error("webhook failed", "err", err)
		}
		badRequest(c, callreport.PublicMessage(err))
		return
	}
	c.JSON(http.StatusCreated, ack)
}

func (h Handlers) ListCallReports(c *gin.Context) {
	if h.Reports == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "call reports not configured"})
		return
	}
	out, err := h.Reports.ListAll(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list call reports failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Appointments ---

func (h Handlers) CreateAppointment(c *gin.Context) {
	if h.Appointments == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "appointments not configured"})
		return
	}
	body, err := readBody(c)
	if err != nil {
		badRequest(c, appointments.ErrInvalidPayload.Error())
		return
	}
	a, err := appointments.Decode(body)
	if err != nil {
		var mf *appointments.MissingFieldsError
		if errors.As(err, &mf) {
			badRequest(c, mf.Error())
			return
		}
		badRequest(c, appointments.ErrInvalidPayload.Error())
		return
	}
	if _, err := h.Appointments.Create(c.Request.Context(), a); err != nil {
		logger.FromGin(c).Error("store appointment failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "appointment stored"})
}

func (h Handlers) ListAppointments(c *gin.Context) {
	if h.Appointments == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "appointments not configured"})
		return
	}
	out, err := h.Appointments.ListAll(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list appointments failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Dashboard ---

// Summary accepts optional RFC 3339 "from" and "to" query bounds.
func (h Handlers) Summary(c *gin.Context) {
	if h.Reporting == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}
	var req reporting.SummaryRequest
	var err error
	if req.Range.From, err = parseTimeQuery(c, "from"); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	if req.Range.To, err = parseTimeQuery(c, "to"); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}

	out, err := h.Reporting.Summary(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
			return
		}
		logger.FromGin(c).Error("summary failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) ExportCallReports(c *gin.Context) {
	if h.Reporting == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="call-reports.xlsx"`)
	if err := h.Reporting.ExportXLSX(c.Request.Context(), c.Writer); err != nil {
		logger.FromGin(c).Error("xlsx export failed", "err", err)
		if !c.Writer.Written() {
			c.Header("Content-Disposition", "")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		}
	}
}

// --- Audit ---

// ListDeliveries returns recent webhook outcomes, newest first.
func (h Handlers) ListDeliveries(c *gin.Context) {
	if h.Audit == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit not configured"})
		return
	}
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	out, err := h.Audit.Recent(c.Request.Context(), limit)
	if err != nil {
		logger.FromGin(c).Error("list deliveries failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func parseTimeQuery(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
