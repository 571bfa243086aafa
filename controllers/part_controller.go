package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PartInput struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price" binding:"required,gt=0"`
	Stock         int     `json:"stock"`
	MinStock      int     `json:"min_stock"`
}

func CreatePart(c *gin.Context) {
	var in PartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if in.Stock < 0 || in.MinStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Stock values must not be negative"})
		return
	}

	part := models.Part{
		Name:          in.Name,
		Category:      in.Category,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         in.Stock,
		MinStock:      in.MinStock,
	}
	if err := config.DB.Create(&part).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create part", "error": err.Error()})
		return
	}
	utils.Success(c, "Part created", part)
}

type PartRow struct {
	models.Part
	Low bool `json:"low"`
}

func GetAllParts(c *gin.Context) {
	var parts []models.Part
	q := config.DB.Order("name ASC")
	if s := c.Query("q"); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}
	if err := q.Find(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch parts", "error": err.Error()})
		return
	}

	rows := make([]PartRow, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, PartRow{Part: p, Low: p.LowStock()})
	}
	utils.Success(c, "Parts fetched", rows)
}

func GetPartByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var part models.Part
	if err := config.DB.First(&part, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Part not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch part", "error": err.Error()})
		return
	}
	utils.Success(c, "Part fetched", PartRow{Part: part, Low: part.LowStock()})
}

// LowStockParts lists parts at or below their minimum threshold.
func LowStockParts(c *gin.Context) {
	var parts []models.Part
	if err := config.DB.Where("stock <= min_stock").Order("name ASC").Find(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch parts", "error": err.Error()})
		return
	}
	utils.Success(c, "Low stock parts fetched", parts)
}

type PartUpdateInput struct {
	Name          *string  `json:"name,omitempty"`
	Category      *string  `json:"category,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	MinStock      *int     `json:"min_stock,omitempty"`
}

// UpdatePart edits catalog fields only. Stock moves exclusively through
// RestockPart, jobs and sales so every change leaves a StockMovement row.
func UpdatePart(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var part models.Part
	if err := config.DB.First(&part, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Part not found"})
		return
	}

	var in PartUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.PurchasePrice != nil {
		updates["purchase_price"] = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if *in.SalePrice <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Sale price must be positive"})
			return
		}
		updates["sale_price"] = *in.SalePrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Min stock must not be negative"})
			return
		}
		updates["min_stock"] = *in.MinStock
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&part).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed", "error": err.Error()})
		return
	}
	utils.Success(c, "Part updated", nil)
}

type RestockInput struct {
	Qty    int    `json:"qty" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required"`
}

func RestockPart(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var in RestockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var updated *models.Part
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		p, err := adjustStock(tx, uint(id), in.Qty, in.Reason, "restock", uint(id), uid)
		updated = p
		return err
	})
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Restock failed", "error": err.Error()})
		return
	}
	utils.Success(c, "Part restocked", updated)
}

func DeletePart(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var part models.Part
	if err := config.DB.First(&part, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Part not found"})
		return
	}
	if err := config.DB.Delete(&part).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed", "error": err.Error()})
		return
	}
	utils.Success(c, "Part deleted", nil)
}

// StockMovements lists the audit trail for one part.
func StockMovements(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var moves []models.StockMovement
	if err := config.DB.Where("part_id = ?", uint(id)).Order("id DESC").Find(&moves).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch movements", "error": err.Error()})
		return
	}
	utils.Success(c, "Stock movements fetched", moves)
}
