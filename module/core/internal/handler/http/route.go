package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type routeAssigner interface {
	Assign(vehicleID string, zoneIDs []string)
	Unassign(vehicleID string)
	ZonesFor(vehicleID string) []string
}

type routeRequest struct {
	ZoneIDs []string `json:"zoneIds" binding:"required"`
}

type routeResponse struct {
	VehicleID string   `json:"vehicle_id"`
	ZoneIDs   []string `json:"zone_ids"`
}

// RouteHandler manages which zones each bus is checked against. Unassigned
// buses are checked against every zone.
type RouteHandler struct {
	routes routeAssigner
}

func NewRouteHandler(routes routeAssigner) *RouteHandler {
	return &RouteHandler{routes: routes}
}

func (h *RouteHandler) Register(r *gin.RouterGroup) {
	r.GET("/vehicles/:vehicle_id/route", h.GetRoute)
	r.PUT("/vehicles/:vehicle_id/route", h.PutRoute)
	r.DELETE("/vehicles/:vehicle_id/route", h.DeleteRoute)
}

func (h *RouteHandler) GetRoute(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")
	ids := h.routes.ZonesFor(vehicleID)
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, routeResponse{VehicleID: vehicleID, ZoneIDs: ids})
}

func (h *RouteHandler) PutRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route payload"})
		return
	}

	vehicleID := c.Param("vehicle_id")
	h.routes.Assign(vehicleID, req.ZoneIDs)
	c.JSON(http.StatusOK, routeResponse{VehicleID: vehicleID, ZoneIDs: req.ZoneIDs})
}

func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	h.routes.Unassign(c.Param("vehicle_id"))
	c.Status(http.StatusNoContent)
}
