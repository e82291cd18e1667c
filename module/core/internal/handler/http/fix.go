package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/handler/dto"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/publisher"
)

type fixIngester interface {
	Ingest(ctx context.Context, fix domain.VehicleFix) ([]domain.AlertEvent, error)
}

type locationSaver interface {
	SaveLocation(ctx context.Context, fix *domain.VehicleFix) error
}

type FixHandler struct {
	geofenceSvc fixIngester
	locationSvc locationSaver
}

func NewFixHandler(geofenceSvc fixIngester, locationSvc locationSaver) *FixHandler {
	return &FixHandler{geofenceSvc: geofenceSvc, locationSvc: locationSvc}
}

func (h *FixHandler) Register(r *gin.RouterGroup) {
	r.POST("/fixes", h.PostFix)
}

func (h *FixHandler) PostFix(c *gin.Context) {
	var msg dto.FixMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fix payload"})
		return
	}

	fix := msg.ToFix()
	alerts, err := h.geofenceSvc.Ingest(c.Request.Context(), fix)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.locationSvc != nil {
		if err := h.locationSvc.SaveLocation(c.Request.Context(), &fix); err != nil {
			log.WithField("vehicle_id", fix.VehicleID).Errorf("save location: %v", err)
		}
	}

	results := make([]publisher.AlertMessage, len(alerts))
	for i := range alerts {
		results[i] = publisher.NewAlertMessage(&alerts[i])
	}
	c.JSON(http.StatusOK, gin.H{"alerts": results})
}
