package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobxnepal/backend/internal/dtos"
	"github.com/jobxnepal/backend/internal/models"
	"github.com/jobxnepal/backend/internal/services"
	"github.com/jobxnepal/backend/internal/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	DB      *gorm.DB
	Storage services.FileStorage
}

func NewApplicationHandler(db *gorm.DB, storage services.FileStorage) *ApplicationHandler {
	return &ApplicationHandler{DB: db, Storage: storage}
}

// PostApplication handles POST /api/application/post/:id (job seeker only).
// Seeker, employer and job details are snapshotted into the record at
// submission time.
func (h *ApplicationHandler) PostApplication(ctx *gin.Context) {
	seeker, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	var req dtos.PostApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid request.")
		return
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" {
		utils.RespondError(ctx, http.StatusBadRequest, "All fields are required.")
		return
	}

	jobID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(ctx, http.StatusNotFound, "Job not found.")
		return
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Job not found.")
			return
		}
		log.Error().Err(err).Msg("failed to fetch job for application")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Application{}).
		Where("job_job_id = ? AND job_seeker_id = ?", job.ID, seeker.ID).
		Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("failed to check existing application")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if count > 0 {
		utils.RespondError(ctx, http.StatusBadRequest, "You have already applied for this job.")
		return
	}

	var resume models.StoredFile
	if resumeFile, ferr := ctx.FormFile("resume"); ferr == nil && resumeFile != nil {
		resume, err = h.Storage.Upload(ctx.Request.Context(), resumeFile, services.FolderResumes)
		if err != nil {
			log.Error().Err(err).Msg("application resume upload failed")
			utils.RespondError(ctx, http.StatusInternalServerError, "Failed to upload resume.")
			return
		}
	} else if seeker.Resume.URL != "" {
		resume = seeker.Resume
	} else {
		utils.RespondError(ctx, http.StatusBadRequest, "Please upload your resume.")
		return
	}

	application := models.Application{
		JobSeekerInfo: models.JobSeekerInfo{
			ID:      seeker.ID,
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
			Role:    models.RoleJobSeeker,
			Resume:  resume,
		},
		EmployerInfo: models.EmployerInfo{
			ID:   job.PostedBy,
			Role: models.RoleEmployer,
		},
		JobInfo: models.JobInfo{
			JobID:    job.ID,
			JobTitle: job.Title,
		},
	}

	if err := h.DB.Create(&application).Error; err != nil {
		log.Error().Err(err).Msg("failed to create application")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Application submitted successfully.",
		"data":    application,
	})
}

// EmployerGetAllApplications handles GET /api/application/employer/getall.
// Applications the employer already soft-deleted stay hidden.
func (h *ApplicationHandler) EmployerGetAllApplications(ctx *gin.Context) {
	employer, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	var applications []models.Application
	if err := h.DB.
		Where("employer_id = ? AND deleted_by_employer = ?", employer.ID, false).
		Find(&applications).Error; err != nil {
		log.Error().Err(err).Msg("failed to list employer applications")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Applications fetched successfully.",
		"data":    applications,
	})
}

// JobSeekerGetAllApplications handles GET /api/application/jobseeker/getall.
func (h *ApplicationHandler) JobSeekerGetAllApplications(ctx *gin.Context) {
	seeker, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	var applications []models.Application
	if err := h.DB.
		Where("job_seeker_id = ? AND deleted_by_job_seeker = ?", seeker.ID, false).
		Find(&applications).Error; err != nil {
		log.Error().Err(err).Msg("failed to list job seeker applications")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Applications fetched successfully.",
		"data":    applications,
	})
}

// DeleteApplication handles DELETE /api/application/delete/:id. Each party
// marks its own side; the record is hard-deleted once both sides are marked.
func (h *ApplicationHandler) DeleteApplication(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(ctx, http.StatusNotFound, "Application not found.")
		return
	}

	var application models.Application
	if err := h.DB.First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Application not found.")
			return
		}
		log.Error().Err(err).Msg("failed to fetch application for deletion")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	switch user.Role {
	case models.RoleJobSeeker:
		application.DeletedBy.JobSeeker = true
	case models.RoleEmployer:
		application.DeletedBy.Employer = true
	default:
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid role.")
		return
	}

	if err := h.DB.Save(&application).Error; err != nil {
		log.Error().Err(err).Msg("failed to mark application deleted")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if application.DeletedBy.Employer && application.DeletedBy.JobSeeker {
		if err := h.DB.Delete(&application).Error; err != nil {
			log.Error().Err(err).Msg("failed to hard-delete application")
			utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application deleted successfully.",
	})
}
