package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/service"
)

type PropertyHandler struct {
	Service *service.PropertyService
}

func NewPropertyHandler(s *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{Service: s}
}

func (h *PropertyHandler) GetProperties(c *gin.Context) {
	properties, err := h.Service.GetAllProperties(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// SearchProperties queries properties with filters and pagination.
func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	filter := repository.PropertyFilter{
		Locality: c.Query("locality"),
		Builder:  c.Query("builder"),
		Status:   c.Query("status"),
		BHK:      c.Query("bhk"),
	}

	if priceMin := c.Query("price_min_lakhs"); priceMin != "" {
		if val, err := strconv.ParseFloat(priceMin, 64); err == nil {
			filter.PriceMinLakhs = val
		}
	}
	if priceMax := c.Query("price_max_lakhs"); priceMax != "" {
		if val, err := strconv.ParseFloat(priceMax, 64); err == nil {
			filter.PriceMaxLakhs = val
		}
	}
	if year := c.Query("handover_year"); year != "" {
		if val, err := strconv.Atoi(year); err == nil {
			filter.HandoverYear = val
		}
	}
	if sources := c.Query("sources"); sources != "" {
		filter.Sources = strings.Split(sources, ",")
	}

	pagination := repository.PaginationParams{
		Page:     1,
		PageSize: 20,
	}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			pagination.Page = val
		}
	}
	if pageSize := c.Query("page_size"); pageSize != "" {
		if val, err := strconv.Atoi(pageSize); err == nil && val > 0 && val <= 100 {
			pagination.PageSize = val
		}
	}

	result, err := h.Service.SearchProperties(c.Request.Context(), filter, pagination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to search properties", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAuctions returns every stored bank-auction record.
func (h *PropertyHandler) GetAuctions(c *gin.Context) {
	auctions, err := h.Service.GetAllAuctions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch auctions"})
		return
	}
	c.JSON(http.StatusOK, auctions)
}

// TriggerCrawler starts a crawl run now. Returns 409 when one is already
// running.
func (h *PropertyHandler) TriggerCrawler(c *gin.Context) {
	if h.Service.IsCrawlActive() {
		c.JSON(http.StatusConflict, gin.H{"error": "A crawl is already running"})
		return
	}

	stats, err := h.Service.ForceCrawling(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger crawler", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Crawler finished successfully", "stats": stats})
}
