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

type JobInput struct {
	ClientID     uint    `json:"client_id" binding:"required"`
	ItemName     string  `json:"item_name" binding:"required"`
	SerialNo     string  `json:"serial_no"`
	Problem      string  `json:"problem" binding:"required"`
	Remarks      string  `json:"remarks"`
	LabourCharge float64 `json:"labour_charge"`
}

func CreateJob(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var in JobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if in.LabourCharge < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Labour charge must not be negative"})
		return
	}

	var cnt int64
	if err := config.DB.Model(&models.Client{}).Where("id = ?", in.ClientID).Count(&cnt).Error; err != nil || cnt == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Client not found"})
		return
	}

	// retry on ticket-code collision between concurrent writers
	const maxRetries = 3
	var job models.Job
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = config.DB.Transaction(func(tx *gorm.DB) error {
			var last models.Job
			if err := lockForUpdate(tx).
				Order("job_seq DESC").
				Limit(1).
				Find(&last).Error; err != nil {
				return err
			}
			nextSeq := last.JobSeq + 1

			now := time.Now().UTC()
			job = models.Job{
				Code:         utils.GenJobCode(nextSeq, now),
				JobSeq:       nextSeq,
				ClientID:     in.ClientID,
				ItemName:     in.ItemName,
				SerialNo:     in.SerialNo,
				Problem:      in.Problem,
				Remarks:      in.Remarks,
				Status:       models.JobPending,
				LabourCharge: in.LabourCharge,
				FinalBill:    in.LabourCharge,
				ReceivedAt:   now,
				CreatedByID:  uid,
			}
			if err := tx.Create(&job).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return fmt.Errorf("unique_violation: %w", err)
				}
				return err
			}
			return nil
		})

		if lastErr == nil {
			c.JSON(http.StatusCreated, gin.H{"message": "Job created", "data": job})
			return
		}
		if strings.Contains(lastErr.Error(), "unique_violation") {
			continue
		}
		break
	}

	c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create job", "error": lastErr.Error()})
}

func GetAllJobs(c *gin.Context) {
	q := config.DB.Preload("Client").Preload("Parts").Order("id DESC")

	if st := strings.ToUpper(strings.TrimSpace(c.Query("status"))); st != "" {
		q = q.Where("status = ?", st)
	}
	if cid := c.Query("client_id"); cid != "" {
		q = q.Where("client_id = ?", cid)
	}

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch jobs", "error": err.Error()})
		return
	}
	utils.Success(c, "Jobs fetched", jobs)
}

func GetJobByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var job models.Job
	if err := config.DB.Preload("Client").Preload("Parts").First(&job, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch job", "error": err.Error()})
		return
	}
	utils.Success(c, "Job fetched", job)
}

type JobUpdateInput struct {
	ItemName *string `json:"item_name,omitempty"`
	SerialNo *string `json:"serial_no,omitempty"`
	Problem  *string `json:"problem,omitempty"`
	Remarks  *string `json:"remarks,omitempty"`
}

func UpdateJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var job models.Job
	if err := config.DB.First(&job, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
		return
	}

	var in JobUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.ItemName != nil {
		updates["item_name"] = *in.ItemName
	}
	if in.SerialNo != nil {
		updates["serial_no"] = *in.SerialNo
	}
	if in.Problem != nil {
		updates["problem"] = *in.Problem
	}
	if in.Remarks != nil {
		updates["remarks"] = *in.Remarks
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&job).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed", "error": err.Error()})
		return
	}
	utils.Success(c, "Job updated", nil)
}

type AddPartInput struct {
	PartID uint `json:"part_id" binding:"required"`
	Qty    int  `json:"qty" binding:"required,gt=0"`
}

// AddJobPart consumes stock and extends the bill in one transaction: the
// part row is locked, stock checked and decremented, the line item is
// snapshotted at today's sale price and the bill recomputed. A stock
// shortfall rolls the whole thing back.
func AddJobPart(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var in AddPartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var newBill float64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, uint(jobID)).Error; err != nil {
			return err
		}
		if job.Status.Terminal() {
			return models.ErrJobClosed
		}

		part, err := adjustStock(tx, in.PartID, -in.Qty,
			"consumed by job "+job.Code, "job", job.ID, uid)
		if err != nil {
			return err
		}

		line := models.JobPart{
			JobID:     job.ID,
			PartID:    part.ID,
			PartName:  part.Name,
			Qty:       in.Qty,
			UnitPrice: part.SalePrice,
			LineTotal: part.SalePrice * float64(in.Qty),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		return recomputeJobBill(tx, &job, &newBill)
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to add part", "error": err.Error()})
		return
	}
	utils.Success(c, "Part added to job", gin.H{"final_bill": newBill})
}

// RemoveJobPart reverses one line: restock plus bill recompute, same
// transactional boundary as AddJobPart.
func RemoveJobPart(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	lineID, err := strconv.ParseUint(c.Param("partID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid part id"})
		return
	}

	var newBill float64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, uint(jobID)).Error; err != nil {
			return err
		}
		if job.Status.Terminal() {
			return models.ErrJobClosed
		}

		var line models.JobPart
		if err := tx.Where("id = ? AND job_id = ?", uint(lineID), job.ID).First(&line).Error; err != nil {
			return err
		}

		if _, err := adjustStock(tx, line.PartID, +line.Qty,
			"returned from job "+job.Code, "job", job.ID, uid); err != nil {
			return err
		}
		if err := tx.Delete(&line).Error; err != nil {
			return err
		}

		return recomputeJobBill(tx, &job, &newBill)
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to remove part", "error": err.Error()})
		return
	}
	utils.Success(c, "Part removed from job", gin.H{"final_bill": newBill})
}

type LabourInput struct {
	Amount float64 `json:"amount"`
}

// SetLabour replaces the labour component and re-derives the bill from
// scratch, so repeated edits cannot drift from the parts total.
func SetLabour(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var in LabourInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if in.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Labour charge must not be negative"})
		return
	}

	var newBill float64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, uint(jobID)).Error; err != nil {
			return err
		}
		if job.Status.Terminal() {
			return models.ErrJobClosed
		}

		job.LabourCharge = in.Amount
		return recomputeJobBill(tx, &job, &newBill)
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to set labour charge", "error": err.Error()})
		return
	}
	utils.Success(c, "Labour charge updated", gin.H{"final_bill": newBill})
}

// recomputeJobBill re-derives parts_total from the line items and writes
// parts_total, labour and final_bill back in one update.
func recomputeJobBill(tx *gorm.DB, job *models.Job, out *float64) error {
	var partsTotal float64
	if err := tx.Model(&models.JobPart{}).
		Where("job_id = ?", job.ID).
		Select("COALESCE(SUM(line_total),0)").
		Scan(&partsTotal).Error; err != nil {
		return err
	}

	final := job.LabourCharge + partsTotal
	if err := tx.Model(&models.Job{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"labour_charge": job.LabourCharge,
			"parts_total":   partsTotal,
			"final_bill":    final,
		}).Error; err != nil {
		return err
	}
	if out != nil {
		*out = final
	}
	return nil
}

var allowedTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobPending:    {models.JobInProgress, models.JobCancelled},
	models.JobInProgress: {models.JobRepaired, models.JobCancelled},
	models.JobRepaired:   {models.JobDelivered, models.JobCancelled},
}

func transitionAllowed(from, to models.JobStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

// TransitionJobStatus moves a job along PENDING → IN_PROGRESS → REPAIRED →
// DELIVERED, with CANCELLED reachable from any non-delivered state. The
// DELIVERED step debits the client ledger in the same transaction; the
// update is guarded by the prior status so a repeated delivery call fails
// instead of double-crediting.
func TransitionJobStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var in StatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	target := models.JobStatus(strings.ToUpper(strings.TrimSpace(in.Status)))

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, uint(jobID)).Error; err != nil {
			return err
		}
		if !transitionAllowed(job.Status, target) {
			return fmt.Errorf("%w: %s -> %s", models.ErrBadTransition, job.Status, target)
		}

		updates := map[string]any{"status": target}
		var deliveredAt *time.Time
		if target == models.JobDelivered {
			now := time.Now().UTC()
			deliveredAt = &now
			updates["delivered_at"] = deliveredAt
		}

		res := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", job.ID, job.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("job status changed concurrently, retry")
		}

		if target == models.JobDelivered {
			return applyLedgerEntry(
				tx, job.ClientID,
				models.LedgerJobDelivered, "DEBIT", job.FinalBill,
				"job", job.ID, uid,
				"Job "+job.Code+" delivered", *deliveredAt,
			)
		}
		return nil
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to update status", "error": err.Error()})
		return
	}
	utils.Success(c, "Status updated", gin.H{"status": target})
}

// DeleteJob is admin-only. Consumed parts go back to stock; a delivered
// job also gets its ledger debit reversed before the rows are removed.
func DeleteJob(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).Preload("Parts").First(&job, uint(jobID)).Error; err != nil {
			return err
		}

		for _, line := range job.Parts {
			if _, err := adjustStock(tx, line.PartID, +line.Qty,
				"job "+job.Code+" deleted", "job", job.ID, uid); err != nil {
				return err
			}
		}

		if job.Status == models.JobDelivered {
			if err := applyLedgerEntry(
				tx, job.ClientID,
				models.LedgerJobReversed, "CREDIT", job.FinalBill,
				"job", job.ID, uid,
				"Job "+job.Code+" deleted", time.Now().UTC(),
			); err != nil {
				return err
			}
		}

		if err := tx.Where("job_id = ?", job.ID).Delete(&models.JobPart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"message": "Failed to delete job", "error": err.Error()})
		return
	}
	utils.Success(c, "Job deleted (stock and ledger reversed)", nil)
}
