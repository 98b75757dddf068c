package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"real-estate-backend/internal/cleanup"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/search"
)

// AdminHandler handles operational endpoints: stats, retention cleanup and
// search reindexing.
type AdminHandler struct {
	db             *gorm.DB
	users          *repository.UserRepository
	cleanupService *cleanup.Service
	search         *search.SearchClient
}

func NewAdminHandler(db *gorm.DB, users *repository.UserRepository, cleanupService *cleanup.Service, searchClient *search.SearchClient) *AdminHandler {
	return &AdminHandler{
		db:             db,
		users:          users,
		cleanupService: cleanupService,
		search:         searchClient,
	}
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})

	byStatus := make(map[string]int64)
	var total int64
	for _, status := range []models.PropertyStatus{
		models.PropertyStatusAvailable,
		models.PropertyStatusRented,
		models.PropertyStatusSold,
		models.PropertyStatusUnderMaintenance,
	} {
		var n int64
		h.db.Model(&models.Property{}).Where("status = ? AND is_deleted = ?", status, false).Count(&n)
		byStatus[string(status)] = n
		total += n
	}
	byStatus["total"] = total
	stats["properties"] = byStatus

	var customerCount int64
	h.db.Model(&models.Customer{}).Where("is_deleted = ?", false).Count(&customerCount)
	stats["customers"] = map[string]interface{}{"total": customerCount}

	var saleCount int64
	var saleVolume float64
	h.db.Model(&models.Sale{}).Count(&saleCount)
	h.db.Model(&models.Sale{}).Select("COALESCE(SUM(price), 0)").Scan(&saleVolume)
	stats["sales"] = map[string]interface{}{
		"total":  saleCount,
		"volume": saleVolume,
	}

	var rentalCount int64
	h.db.Model(&models.Rental{}).Count(&rentalCount)
	stats["rentals"] = map[string]interface{}{"total": rentalCount}

	if userCount, err := h.users.Count(c.Request.Context()); err != nil {
		log.Printf("[admin] counting users: %v", err)
	} else {
		stats["users"] = map[string]interface{}{"total": userCount}
	}

	var deleteLogCount int64
	h.db.Model(&models.DeleteLog{}).Count(&deleteLogCount)
	stats["deletions"] = map[string]interface{}{"total": deleteLogCount}

	c.JSON(http.StatusOK, stats)
}

// TriggerCleanup runs the retention cleanup on demand
func (h *AdminHandler) TriggerCleanup(c *gin.Context) {
	cfg := cleanup.DefaultConfig()
	cfg.DryRun = c.Query("dry_run") == "true"
	if v := c.Query("retention_days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.RetentionDays = days
		}
	}

	log.Printf("[admin] manual cleanup requested (dry-run: %v)", cfg.DryRun)
	res, err := h.cleanupService.Run(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetDeleteLogs returns recent delete-log entries
func (h *AdminHandler) GetDeleteLogs(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	logs, err := h.cleanupService.RecentLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load delete logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs, "count": len(logs)})
}

// Reindex rebuilds the search index from the live catalogue
func (h *AdminHandler) Reindex(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not enabled"})
		return
	}

	var props []models.Property
	if err := h.db.Where("is_deleted = ?", false).Find(&props).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load properties"})
		return
	}

	if err := h.search.IndexProperties(props); err != nil {
		log.Printf("[admin] reindex failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reindex failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": len(props)})
}
