package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/handler/dto"
)

type zoneService interface {
	Upsert(ctx context.Context, zone domain.GeofenceZone) error
	Remove(ctx context.Context, zoneID string) error
	Get(zoneID string) (domain.GeofenceZone, error)
	List() []domain.GeofenceZone
	ListNear(point domain.Coordinate, maxDistanceMeters float64) []domain.GeofenceZone
}

type ZoneHandler struct {
	zoneSvc zoneService
}

func NewZoneHandler(zoneSvc zoneService) *ZoneHandler {
	return &ZoneHandler{zoneSvc: zoneSvc}
}

func (h *ZoneHandler) Register(r *gin.RouterGroup) {
	r.GET("/zones", h.ListZones)
	r.POST("/zones", h.CreateZone)
	r.GET("/zones/:zone_id", h.GetZone)
	r.PUT("/zones/:zone_id", h.PutZone)
	r.DELETE("/zones/:zone_id", h.DeleteZone)
}

// ListZones optionally filters by ?lat=&lon=&within= (meters).
func (h *ZoneHandler) ListZones(c *gin.Context) {
	var zones []domain.GeofenceZone
	if c.Query("lat") == "" && c.Query("lon") == "" {
		zones = h.zoneSvc.List()
	} else {
		point, within, err := parseNearQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zones = h.zoneSvc.ListNear(point, within)
	}

	results := make([]dto.ZoneMessage, len(zones))
	for i := range zones {
		results[i] = dto.FromZone(&zones[i])
	}
	c.JSON(http.StatusOK, results)
}

func (h *ZoneHandler) GetZone(c *gin.Context) {
	zone, err := h.zoneSvc.Get(c.Param("zone_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromZone(&zone))
}

func (h *ZoneHandler) CreateZone(c *gin.Context) {
	h.saveZone(c, "")
}

func (h *ZoneHandler) PutZone(c *gin.Context) {
	h.saveZone(c, c.Param("zone_id"))
}

func (h *ZoneHandler) saveZone(c *gin.Context, pathID string) {
	var msg dto.ZoneMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone payload"})
		return
	}
	if pathID != "" {
		msg.ID = pathID
	}

	zone := msg.ToZone()
	if err := h.zoneSvc.Upsert(c.Request.Context(), zone); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromZone(&zone))
}

func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	if err := h.zoneSvc.Remove(c.Request.Context(), c.Param("zone_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseNearQuery(c *gin.Context) (domain.Coordinate, float64, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return domain.Coordinate{}, 0, errors.New("invalid lat parameter")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return domain.Coordinate{}, 0, errors.New("invalid lon parameter")
	}
	point := domain.Coordinate{Lat: lat, Lon: lon}
	if err := point.Validate(); err != nil {
		return domain.Coordinate{}, 0, err
	}

	within := 0.0
	if v := c.Query("within"); v != "" {
		if within, err = strconv.ParseFloat(v, 64); err != nil || within < 0 {
			return domain.Coordinate{}, 0, errors.New("invalid within parameter")
		}
	}
	return point, within, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidZoneDefinition), errors.Is(err, domain.ErrInvalidFix):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrZoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
