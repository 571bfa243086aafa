package routes

import (
	"github.com/waraseoni/vtech-workshop-api/controllers"
	"github.com/waraseoni/vtech-workshop-api/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/register", controllers.Register)
		}

		// everything below needs a valid token
		sec := api.Group("/", middlewares.Auth())
		{
			sec.GET("/profile", controllers.Profile)
			sec.PUT("/profile", controllers.UpdateProfile)
			sec.PUT("/profile/password", controllers.ChangePassword)

			clients := sec.Group("/clients")
			{
				clients.GET("/", controllers.GetAllClients)
				clients.GET("/:id", controllers.GetClientByID)
				clients.GET("/:id/statement", controllers.ClientStatement)
				clients.POST("/", controllers.CreateClient)
				clients.PUT("/:id", controllers.UpdateClient)
				clients.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteClient)
			}

			parts := sec.Group("/parts")
			{
				parts.GET("/", controllers.GetAllParts)
				parts.GET("/low", controllers.LowStockParts)
				parts.GET("/:id", controllers.GetPartByID)
				parts.GET("/:id/movements", controllers.StockMovements)
				parts.POST("/", controllers.CreatePart)
				parts.POST("/:id/restock", controllers.RestockPart)
				parts.PUT("/:id", middlewares.RequireAdmin(), controllers.UpdatePart)
				parts.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeletePart)
			}

			jobs := sec.Group("/jobs")
			{
				jobs.GET("/", controllers.GetAllJobs)
				jobs.GET("/:id", controllers.GetJobByID)
				jobs.POST("/", controllers.CreateJob)
				jobs.PUT("/:id", controllers.UpdateJob)
				jobs.POST("/:id/parts", controllers.AddJobPart)
				jobs.DELETE("/:id/parts/:partID", controllers.RemoveJobPart)
				jobs.PUT("/:id/labour", controllers.SetLabour)
				jobs.POST("/:id/status", controllers.TransitionJobStatus)
				jobs.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteJob)
			}

			sales := sec.Group("/sales")
			{
				sales.GET("/", controllers.GetAllSales)
				sales.GET("/:id", controllers.GetSaleByID)
				sales.POST("/", controllers.CreateSale)
				sales.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteSale)
			}

			payments := sec.Group("/payments")
			{
				payments.GET("/", controllers.GetAllPayments)
				payments.POST("/", controllers.RecordPayment)
				payments.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeletePayment)
			}

			employees := sec.Group("/employees")
			{
				employees.GET("/", controllers.GetAllEmployees)
				employees.POST("/", middlewares.RequireAdmin(), controllers.CreateEmployee)
				employees.PUT("/:id", middlewares.RequireAdmin(), controllers.UpdateEmployee)
			}

			attendance := sec.Group("/attendance")
			{
				attendance.GET("/", controllers.AttendanceByDate)
				attendance.POST("/", controllers.MarkAttendance)
			}

			expenses := sec.Group("/expenses")
			{
				expenses.GET("/", controllers.GetAllExpenses)
				expenses.POST("/", controllers.CreateExpense)
				expenses.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteExpense)
			}

			loans := sec.Group("/loans", middlewares.RequireAdmin())
			{
				loans.GET("/", controllers.GetAllLoans)
				loans.POST("/", controllers.CreateLoan)
				loans.POST("/:id/payments", controllers.RecordLoanPayment)
			}

			reports := sec.Group("/reports")
			{
				reports.GET("/financial", middlewares.RequireAdmin(), controllers.FinancialReport)
				reports.GET("/stock", controllers.StockReport)
				reports.GET("/outstanding", controllers.OutstandingReport)
			}

			users := sec.Group("/users", middlewares.RequireAdmin())
			{
				users.GET("/", controllers.AdminListUsers)
				users.POST("/", controllers.AdminCreateUser)
				users.PUT("/:id", controllers.AdminUpdateUser)
			}
		}
	}
}
