package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type SaleItemInput struct {
	PartID uint `json:"part_id" binding:"required"`
	Qty    int  `json:"qty" binding:"required,gt=0"`
}

type SaleInput struct {
	ClientID uint            `json:"client_id" binding:"required"`
	SaleDate time.Time       `json:"sale_date"`
	Discount float64         `json:"discount"`
	Remarks  string          `json:"remarks"`
	Items    []SaleItemInput `json:"items" binding:"required,min=1"`
}

// CreateSale records a walk-in retail sale in a single transaction: every
// item locks its part row, checks and decrements stock, snapshots the price,
// and the grand total is debited to the client ledger.
func CreateSale(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var in SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if in.Discount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Discount must not be negative"})
		return
	}

	var cnt int64
	if err := config.DB.Model(&models.Client{}).Where("id = ?", in.ClientID).Count(&cnt).Error; err != nil || cnt == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Client not found"})
		return
	}

	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now().UTC()
	}

	const maxRetries = 3
	var sale models.DirectSale
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = config.DB.Transaction(func(tx *gorm.DB) error {
			var last models.DirectSale
			if err := lockForUpdate(tx).
				Order("sale_seq DESC").
				Limit(1).
				Find(&last).Error; err != nil {
				return err
			}
			nextSeq := last.SaleSeq + 1

			sale = models.DirectSale{
				Code:        utils.GenSaleCode(nextSeq, saleDate),
				SaleSeq:     nextSeq,
				ClientID:    in.ClientID,
				SaleDate:    saleDate,
				Discount:    in.Discount,
				Remarks:     in.Remarks,
				CreatedByID: uid,
			}
			if err := tx.Create(&sale).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return fmt.Errorf("unique_violation: %w", err)
				}
				return err
			}

			var subtotal float64
			for _, it := range in.Items {
				part, err := adjustStock(tx, it.PartID, -it.Qty,
					"sale "+sale.Code, "direct_sale", sale.ID, uid)
				if err != nil {
					return err
				}
				line := models.DirectSaleItem{
					DirectSaleID: sale.ID,
					PartID:       part.ID,
					PartName:     part.Name,
					Qty:          it.Qty,
					UnitPrice:    part.SalePrice,
					LineTotal:    part.SalePrice * float64(it.Qty),
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
				subtotal += line.LineTotal
				sale.Items = append(sale.Items, line)
			}

			if in.Discount > subtotal {
				return fmt.Errorf("discount %v exceeds subtotal %v", in.Discount, subtotal)
			}

			sale.Subtotal = subtotal
			sale.GrandTotal = subtotal - in.Discount
			if err := tx.Model(&models.DirectSale{}).
				Where("id = ?", sale.ID).
				Updates(map[string]any{
					"subtotal":    sale.Subtotal,
					"grand_total": sale.GrandTotal,
				}).Error; err != nil {
				return err
			}

			return applyLedgerEntry(
				tx, sale.ClientID,
				models.LedgerDirectSale, "DEBIT", sale.GrandTotal,
				"direct_sale", sale.ID, uid,
				"Sale "+sale.Code, saleDate,
			)
		})

		if lastErr == nil {
			c.JSON(http.StatusCreated, gin.H{"message": "Sale recorded", "data": sale})
			return
		}
		if strings.Contains(lastErr.Error(), "unique_violation") {
			continue
		}
		break
	}

	c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record sale", "error": lastErr.Error()})
}

func GetAllSales(c *gin.Context) {
	q := config.DB.Preload("Client").Preload("Items").Order("id DESC")
	if cid := c.Query("client_id"); cid != "" {
		q = q.Where("client_id = ?", cid)
	}
	if from := getDatePtr(c, "date_from"); from != nil {
		q = q.Where("sale_date >= ?", from.Truncate(24*time.Hour))
	}
	if to := getDatePtr(c, "date_to"); to != nil {
		q = q.Where("sale_date < ?", to.Truncate(24*time.Hour).Add(24*time.Hour))
	}

	var sales []models.DirectSale
	if err := q.Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch sales", "error": err.Error()})
		return
	}
	utils.Success(c, "Sales fetched", sales)
}

func GetSaleByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var sale models.DirectSale
	if err := config.DB.Preload("Client").Preload("Items").First(&sale, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch sale", "error": err.Error()})
		return
	}
	utils.Success(c, "Sale fetched", sale)
}

// DeleteSale is admin-only and reverses everything: stock back, ledger credit.
func DeleteSale(c *gin.Context) {
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

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var sale models.DirectSale
		if err := lockForUpdate(tx).Preload("Items").First(&sale, uint(id)).Error; err != nil {
			return err
		}

		for _, line := range sale.Items {
			if _, err := adjustStock(tx, line.PartID, +line.Qty,
				"sale "+sale.Code+" deleted", "direct_sale", sale.ID, uid); err != nil {
				return err
			}
		}

		if err := applyLedgerEntry(
			tx, sale.ClientID,
			models.LedgerSaleReversed, "CREDIT", sale.GrandTotal,
			"direct_sale", sale.ID, uid,
			"Sale "+sale.Code+" deleted", time.Now().UTC(),
		); err != nil {
			return err
		}

		if err := tx.Where("direct_sale_id = ?", sale.ID).Delete(&models.DirectSaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to delete sale", "error": err.Error()})
		return
	}
	utils.Success(c, "Sale deleted (stock and ledger reversed)", nil)
}
