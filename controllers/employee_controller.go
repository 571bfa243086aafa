package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type EmployeeInput struct {
	Name        string  `json:"name" binding:"required"`
	Phone       string  `json:"phone"`
	Position    string  `json:"position"`
	DailySalary float64 `json:"daily_salary"`
}

func CreateEmployee(c *gin.Context) {
	var in EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if in.DailySalary < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Daily salary must not be negative"})
		return
	}

	emp := models.Employee{
		Name:        in.Name,
		Phone:       in.Phone,
		Position:    in.Position,
		DailySalary: in.DailySalary,
		IsActive:    true,
	}
	if err := config.DB.Create(&emp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create employee", "error": err.Error()})
		return
	}
	utils.Success(c, "Employee created", emp)
}

func GetAllEmployees(c *gin.Context) {
	var emps []models.Employee
	if err := config.DB.Order("name ASC").Find(&emps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch employees", "error": err.Error()})
		return
	}
	utils.Success(c, "Employees fetched", emps)
}

type EmployeeUpdateInput struct {
	Name        *string  `json:"name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Position    *string  `json:"position,omitempty"`
	DailySalary *float64 `json:"daily_salary,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var emp models.Employee
	if err := config.DB.First(&emp, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}

	var in EmployeeUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Position != nil {
		updates["position"] = *in.Position
	}
	if in.DailySalary != nil {
		if *in.DailySalary < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Daily salary must not be negative"})
			return
		}
		updates["daily_salary"] = *in.DailySalary
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&emp).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed", "error": err.Error()})
		return
	}
	utils.Success(c, "Employee updated", nil)
}

type AttendanceInput struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Status     string `json:"status" binding:"required"`
}

// MarkAttendance upserts one employee's record for a calendar day.
func MarkAttendance(c *gin.Context) {
	var in AttendanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	status := models.AttendanceStatus(in.Status)
	switch status {
	case models.AttendanceFull, models.AttendanceHalf, models.AttendanceAbsent:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid attendance status"})
		return
	}

	var cnt int64
	if err := config.DB.Model(&models.Employee{}).Where("id = ?", in.EmployeeID).Count(&cnt).Error; err != nil || cnt == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Employee not found"})
		return
	}

	att := models.Attendance{
		EmployeeID: in.EmployeeID,
		Date:       day,
		Status:     status,
	}
	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&att).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark attendance", "error": err.Error()})
		return
	}
	utils.Success(c, "Attendance marked", att)
}

func AttendanceByDate(c *gin.Context) {
	day := getDatePtr(c, "date")
	if day == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "date is required (YYYY-MM-DD)"})
		return
	}
	start, before := dayRange(*day, *day)

	var rows []models.Attendance
	if err := config.DB.Preload("Employee").
		Where("date >= ? AND date < ?", start, before).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch attendance", "error": err.Error()})
		return
	}
	utils.Success(c, "Attendance fetched", rows)
}
