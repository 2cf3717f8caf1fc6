package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobxnepal/backend/internal/handlers"
	"github.com/jobxnepal/backend/internal/middleware"
	"github.com/jobxnepal/backend/internal/models"
	"github.com/jobxnepal/backend/internal/services"
	"gorm.io/gorm"
)

// NewRouter wires the full HTTP surface. The frontend origin comes from
// configuration so cookies survive cross-origin requests.
func NewRouter(db *gorm.DB, storage services.FileStorage, frontendURL string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userHandler := handlers.NewUserHandler(db, storage)
	jobHandler := handlers.NewJobHandler(db, storage)
	applicationHandler := handlers.NewApplicationHandler(db, storage)

	authRequired := middleware.AuthMiddleware(db)
	employerOnly := middleware.RequireRoles(models.RoleEmployer)
	seekerOnly := middleware.RequireRoles(models.RoleJobSeeker)

	r.GET("/", handlers.HealthCheck)

	user := r.Group("/api/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/login", userHandler.Login)
		user.GET("/logout", authRequired, userHandler.Logout)
		user.GET("/getuser", authRequired, userHandler.GetUser)
		user.PUT("/update/profile", authRequired, userHandler.UpdateProfile)
		user.PUT("/update/password", authRequired, userHandler.UpdatePassword)
	}

	job := r.Group("/api/job")
	{
		job.POST("/post", authRequired, employerOnly, jobHandler.PostJob)
		job.GET("/getall", jobHandler.GetAllJobs)
		job.GET("/getmyjobs", authRequired, employerOnly, jobHandler.GetMyJobs)
		job.GET("/get/:id", jobHandler.GetASingleJob)
		job.DELETE("/delete/:id", authRequired, employerOnly, jobHandler.DeleteJob)
	}

	application := r.Group("/api/application", authRequired)
	{
		application.POST("/post/:id", seekerOnly, applicationHandler.PostApplication)
		application.GET("/employer/getall", employerOnly, applicationHandler.EmployerGetAllApplications)
		application.GET("/jobseeker/getall", seekerOnly, applicationHandler.JobSeekerGetAllApplications)
		application.DELETE("/delete/:id", applicationHandler.DeleteApplication)
	}

	return r
}
