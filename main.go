package main

import (
	"log"
	"os"
	"time"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/routes"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Part{},
		&models.StockMovement{},
		&models.Job{},
		&models.JobPart{},
		&models.DirectSale{},
		&models.DirectSaleItem{},
		&models.Payment{},
		&models.LedgerEntry{},
		&models.Employee{},
		&models.Attendance{},
		&models.Loan{},
		&models.LoanPayment{},
		&models.Expense{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	config.SeedAdmin()

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "V-Tech Workshop API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
