package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClientInput struct {
	Name           string  `json:"name" binding:"required"`
	Mobile         string  `json:"mobile" binding:"required"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	GSTIN          string  `json:"gstin"`
	OpeningBalance float64 `json:"opening_balance"`
}

func CreateClient(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var in ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if in.OpeningBalance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Opening balance must not be negative"})
		return
	}

	client := models.Client{
		Name:           in.Name,
		Mobile:         in.Mobile,
		Email:          in.Email,
		Address:        in.Address,
		GSTIN:          in.GSTIN,
		OpeningBalance: in.OpeningBalance,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&client).Error; err != nil {
			return err
		}
		if in.OpeningBalance > 0 {
			return applyLedgerEntry(
				tx, client.ID,
				models.LedgerOpening, "DEBIT", in.OpeningBalance,
				"client", client.ID, uid,
				"Opening balance", time.Now().UTC(),
			)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create client", "error": err.Error()})
		return
	}

	utils.Success(c, "Client created", client)
}

// ClientRow adds the derived delivered-business total next to the cached
// balance so the two can be reconciled at a glance.
type ClientRow struct {
	models.Client
	DeliveredTotal float64 `json:"delivered_total"`
}

func GetAllClients(c *gin.Context) {
	var clients []models.Client
	q := config.DB.Order("name ASC")
	if s := c.Query("q"); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR mobile LIKE ?", like, like)
	}
	if err := q.Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch clients", "error": err.Error()})
		return
	}

	rows := make([]ClientRow, 0, len(clients))
	for _, cl := range clients {
		var delivered float64
		if err := config.DB.Model(&models.Job{}).
			Where("client_id = ? AND status = ?", cl.ID, models.JobDelivered).
			Select("COALESCE(SUM(final_bill),0)").
			Scan(&delivered).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch clients", "error": err.Error()})
			return
		}
		rows = append(rows, ClientRow{Client: cl, DeliveredTotal: delivered})
	}
	utils.Success(c, "Clients fetched", rows)
}

func GetClientByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var client models.Client
	if err := config.DB.First(&client, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch client", "error": err.Error()})
		return
	}
	utils.Success(c, "Client fetched", client)
}

type ClientUpdateInput struct {
	Name    *string `json:"name,omitempty"`
	Mobile  *string `json:"mobile,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	GSTIN   *string `json:"gstin,omitempty"`
}

func UpdateClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var client models.Client
	if err := config.DB.First(&client, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		return
	}

	var in ClientUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Mobile != nil {
		updates["mobile"] = *in.Mobile
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.GSTIN != nil {
		updates["gstin"] = *in.GSTIN
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&client).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed", "error": err.Error()})
		return
	}
	utils.Success(c, "Client updated", nil)
}

// DeleteClient is admin-only and refused while the client is referenced.
func DeleteClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := lockForUpdate(tx).First(&client, uint(id)).Error; err != nil {
			return err
		}

		var cnt int64
		for _, m := range []any{&models.Job{}, &models.DirectSale{}, &models.Payment{}} {
			if err := tx.Model(m).Where("client_id = ?", client.ID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				return models.ErrClientReferenced
			}
		}

		if err := tx.Where("client_id = ?", client.ID).Delete(&models.LedgerEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to delete client", "error": err.Error()})
		return
	}
	utils.Success(c, "Client deleted", nil)
}

type StatementRow struct {
	models.LedgerEntry
	RunningBalance float64 `json:"running_balance"`
}

// ClientStatement replays the ledger with a running balance; the final row
// should always land on the cached client balance.
func ClientStatement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var client models.Client
	if err := config.DB.First(&client, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		return
	}

	var entries []models.LedgerEntry
	if err := config.DB.Where("client_id = ?", client.ID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch statement", "error": err.Error()})
		return
	}

	rows := make([]StatementRow, 0, len(entries))
	running := 0.0
	for _, e := range entries {
		if e.Direction == "DEBIT" {
			running += e.Amount
		} else {
			running -= e.Amount
		}
		rows = append(rows, StatementRow{LedgerEntry: e, RunningBalance: running})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Statement fetched",
		"data": gin.H{
			"client":  client,
			"entries": rows,
		},
	})
}
