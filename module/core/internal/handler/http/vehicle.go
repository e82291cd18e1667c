package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/tracker"
)

type locationService interface {
	GetLatest(ctx context.Context, vehicleID string) (*domain.VehicleFix, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.VehicleFix, error)
	GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type vehicleStateStore interface {
	Snapshot(vehicleID string) ([]tracker.ZoneState, bool)
	EvictVehicle(vehicleID string) bool
}

type locationResponse struct {
	VehicleID string   `json:"vehicle_id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	SpeedKmh  float64  `json:"speed_kmh"`
	Heading   *float64 `json:"heading,omitempty"`
	FuelLevel *float64 `json:"fuel_level,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

type zoneStateResponse struct {
	ZoneID      string `json:"zone_id"`
	IsInside    bool   `json:"is_inside"`
	EvaluatedAt int64  `json:"evaluated_at"`
}

type VehicleHandler struct {
	locationSvc locationService
	states      vehicleStateStore
}

func NewVehicleHandler(locationSvc locationService, states vehicleStateStore) *VehicleHandler {
	return &VehicleHandler{locationSvc: locationSvc, states: states}
}

func (h *VehicleHandler) Register(r *gin.RouterGroup) {
	r.GET("/vehicles", h.GetAllVehicles)
	r.GET("/vehicles/:vehicle_id/location", h.GetLatestLocation)
	r.GET("/vehicles/:vehicle_id/history", h.GetHistory)
	r.GET("/vehicles/:vehicle_id/zones", h.GetZoneStates)
	r.DELETE("/vehicles/:vehicle_id/state", h.DeleteState)
}

func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	vehicles, err := h.locationSvc.GetAllVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetLatestLocation(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	fix, err := h.locationSvc.GetLatest(c.Request.Context(), vehicleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, toLocationResponse(fix))
}

func (h *VehicleHandler) GetHistory(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		VehicleID: vehicleID,
		Start:     time.Unix(start, 0),
		End:       time.Unix(end, 0),
	}

	fixes, err := h.locationSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]locationResponse, len(fixes))
	for i := range fixes {
		results[i] = toLocationResponse(&fixes[i])
	}
	c.JSON(http.StatusOK, results)
}

func (h *VehicleHandler) GetZoneStates(c *gin.Context) {
	states, ok := h.states.Snapshot(c.Param("vehicle_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle has no tracked state"})
		return
	}

	results := make([]zoneStateResponse, len(states))
	for i, s := range states {
		results[i] = zoneStateResponse{ZoneID: s.ZoneID, IsInside: s.Inside, EvaluatedAt: s.EvaluatedAt.Unix()}
	}
	c.JSON(http.StatusOK, results)
}

func (h *VehicleHandler) DeleteState(c *gin.Context) {
	if !h.states.EvictVehicle(c.Param("vehicle_id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle has no tracked state"})
		return
	}
	c.Status(http.StatusNoContent)
}

func toLocationResponse(fix *domain.VehicleFix) locationResponse {
	return locationResponse{
		VehicleID: fix.VehicleID,
		Latitude:  fix.Coordinate.Lat,
		Longitude: fix.Coordinate.Lon,
		SpeedKmh:  fix.SpeedKmh,
		Heading:   fix.Heading,
		FuelLevel: fix.FuelLevel,
		Timestamp: fix.Timestamp.Unix(),
	}
}
