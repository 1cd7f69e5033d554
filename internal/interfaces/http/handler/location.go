package handler

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
)

// LocationHandler serves cities and districts
type LocationHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(db *memdb.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

// RegisterRoutes registers the location routes
func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cities", h.ListCities)
	rg.GET("/cities/:id/districts", h.ListCityDistricts)

	districts := rg.Group("/districts")
	{
		districts.GET("", h.List)
		districts.POST("", h.Create)
		districts.GET("/:id", h.Get)
		districts.PUT("/:id", h.Update)
		districts.DELETE("/:id", h.Delete)
	}
}

// ListCities returns every city, unpaged
func (h *LocationHandler) ListCities(c *gin.Context) {
	cities := h.db.Cities.Find(nil)
	slices.Reverse(cities)
	h.Success(c, cities)
}

// ListCityDistricts returns the active districts of a city, unpaged
func (h *LocationHandler) ListCityDistricts(c *gin.Context) {
	cityID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.db.Cities.Get(cityID); !ok {
		h.NotFound(c, "City not found")
		return
	}
	h.Success(c, h.db.Districts.Find(func(d location.District) bool {
		return d.CityID == cityID && d.IsActive
	}))
}

// List returns a page of districts
func (h *LocationHandler) List(c *gin.Context) {
	cityID := queryInt64(c, "cityId")
	active := queryBool(c, "isActive")
	search := c.Query("search")

	rows := h.db.Districts.Find(func(d location.District) bool {
		return (cityID == nil || d.CityID == *cityID) &&
			(active == nil || d.IsActive == *active) &&
			matches(search, d.Name, d.NameAr, d.CityName)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Get returns one district
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	d, ok := h.db.Districts.Get(id)
	if !ok {
		h.NotFound(c, "District not found")
		return
	}
	h.Success(c, d)
}

// Create adds a district
func (h *LocationHandler) Create(c *gin.Context) {
	var in location.DistrictInput
	if !h.bindValid(c, &in) || !h.checkCity(c, in.CityID) {
		return
	}
	d := location.District{
		ID:        h.db.DistrictIDs.Next(),
		CreatedAt: time.Now().UTC(),
	}
	applyDistrict(&d, in, h.db.CityName(in.CityID))
	h.db.Districts.Put(d)
	h.Created(c, d)
}

// Update replaces a district
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var in location.DistrictInput
	if !h.bindValid(c, &in) || !h.checkCity(c, in.CityID) {
		return
	}
	d, err := h.db.Districts.Update(id, func(d *location.District) error {
		applyDistrict(d, in, h.db.CityName(in.CityID))
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "District not found")
		return
	}
	h.Success(c, d)
}

// Delete removes a district that no address refers to
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.db.Districts.Get(id); !ok {
		h.NotFound(c, "District not found")
		return
	}
	if h.db.DistrictInUse(id) {
		h.Conflict(c, "District is used by user addresses and cannot be deleted")
		return
	}
	h.db.Districts.Delete(id)
	h.Message(c, "District deleted")
}

func (h *LocationHandler) checkCity(c *gin.Context, cityID int64) bool {
	if _, ok := h.db.Cities.Get(cityID); ok {
		return true
	}
	verr := shared.NewValidationError()
	verr.Add("cityId", "City not found")
	h.HandleError(c, verr)
	return false
}

func applyDistrict(d *location.District, in location.DistrictInput, cityName string) {
	d.CityID = in.CityID
	d.CityName = cityName
	d.Name = in.Name
	d.NameAr = in.NameAr
	d.IsActive = in.IsActive
}
