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

type PaymentInput struct {
	ClientID uint      `json:"client_id" binding:"required"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	Discount float64   `json:"discount"`
	Mode     string    `json:"mode" binding:"required"`
	PaidAt   time.Time `json:"paid_at"`
	JobID    *uint     `json:"job_id"`
	Remarks  string    `json:"remarks"`
}

func validMode(m string) bool {
	switch models.PaymentMode(m) {
	case models.PayCash, models.PayUPI, models.PayCard, models.PayBank:
		return true
	}
	return false
}

// RecordPayment stores the payment row and credits the client ledger with
// amount minus discount in the same transaction. The waived discount is
// reported separately by the financial aggregator.
func RecordPayment(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var in PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if !validMode(in.Mode) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment mode"})
		return
	}
	if in.Discount < 0 || in.Discount > in.Amount {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Discount must be between 0 and amount"})
		return
	}

	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	var payment models.Payment
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Client{}).Where("id = ?", in.ClientID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return errors.New("client not found")
		}

		if in.JobID != nil {
			var job models.Job
			if err := tx.First(&job, *in.JobID).Error; err != nil {
				return err
			}
			if job.ClientID != in.ClientID {
				return errors.New("job does not belong to this client")
			}
		}

		payment = models.Payment{
			ClientID:     in.ClientID,
			Amount:       in.Amount,
			Discount:     in.Discount,
			Mode:         models.PaymentMode(in.Mode),
			PaidAt:       paidAt,
			JobID:        in.JobID,
			Remarks:      in.Remarks,
			ReceivedByID: uid,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return applyLedgerEntry(
			tx, payment.ClientID,
			models.LedgerPayment, "CREDIT", payment.Amount-payment.Discount,
			"payment", payment.ID, uid,
			"Payment received", paidAt,
		)
	})

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to record payment", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded", "data": payment})
}

func GetAllPayments(c *gin.Context) {
	q := config.DB.Preload("Client").Order("paid_at DESC, id DESC")
	if cid := c.Query("client_id"); cid != "" {
		q = q.Where("client_id = ?", cid)
	}
	if from := getDatePtr(c, "date_from"); from != nil {
		q = q.Where("paid_at >= ?", from.Truncate(24*time.Hour))
	}
	if to := getDatePtr(c, "date_to"); to != nil {
		q = q.Where("paid_at < ?", to.Truncate(24*time.Hour).Add(24*time.Hour))
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments", "error": err.Error()})
		return
	}
	utils.Success(c, "Payments fetched", payments)
}

// DeletePayment is admin-only; the ledger credit is reversed with a debit
// so the balance and the event log stay in step.
func DeletePayment(c *gin.Context) {
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
		var payment models.Payment
		if err := lockForUpdate(tx).First(&payment, uint(id)).Error; err != nil {
			return err
		}

		if err := applyLedgerEntry(
			tx, payment.ClientID,
			models.LedgerPaymentReversed, "DEBIT", payment.Amount-payment.Discount,
			"payment", payment.ID, uid,
			"Payment deleted", time.Now().UTC(),
		); err != nil {
			return err
		}
		return tx.Delete(&payment).Error
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to delete payment", "error": err.Error()})
		return
	}
	utils.Success(c, "Payment deleted (ledger reversed)", nil)
}
