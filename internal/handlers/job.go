package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobxnepal/backend/internal/dtos"
	"github.com/jobxnepal/backend/internal/models"
	"github.com/jobxnepal/backend/internal/services"
	"github.com/jobxnepal/backend/internal/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type JobHandler struct {
	DB      *gorm.DB
	Storage services.FileStorage
}

func NewJobHandler(db *gorm.DB, storage services.FileStorage) *JobHandler {
	return &JobHandler{DB: db, Storage: storage}
}

// PostJob handles POST /api/job/post (employer only, multipart form).
func (h *JobHandler) PostJob(ctx *gin.Context) {
	employer, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	var req dtos.PostJobRequest
	if err := ctx.ShouldBind(&req); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid request.")
		return
	}

	if req.Title == "" || req.JobType == "" || req.Location == "" || req.CompanyName == "" ||
		req.Introduction == "" || req.Responsibilities == "" || req.Qualifications == "" ||
		req.Salary == "" || req.JobCategory == "" {
		utils.RespondError(ctx, http.StatusBadRequest, "Please provide full job details.")
		return
	}

	if (req.WebsiteTitle != "" && req.WebsiteURL == "") || (req.WebsiteTitle == "" && req.WebsiteURL != "") {
		utils.RespondError(ctx, http.StatusBadRequest, "Provide both the website url and title, or leave both blank.")
		return
	}

	logoFile, err := ctx.FormFile("companyLogo")
	if err != nil || logoFile == nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Please upload your company's logo.")
		return
	}

	logo, err := h.Storage.Upload(ctx.Request.Context(), logoFile, services.FolderCompanyLogos)
	if err != nil {
		log.Error().Err(err).Msg("company logo upload failed")
		utils.RespondError(ctx, http.StatusInternalServerError, "Failed to upload your company's logo to cloud.")
		return
	}

	job := models.Job{
		Title:                    req.Title,
		JobType:                  req.JobType,
		Location:                 req.Location,
		CompanyName:              req.CompanyName,
		Introduction:             req.Introduction,
		Responsibilities:         req.Responsibilities,
		Qualifications:           req.Qualifications,
		Offers:                   req.Offers,
		Salary:                   req.Salary,
		HiringMultipleCandidates: req.HiringMultipleCandidates,
		JobCategory:              req.JobCategory,
		Website: models.Website{
			Title: req.WebsiteTitle,
			URL:   req.WebsiteURL,
		},
		CompanyLogo: logo,
		PostedBy:    employer.ID,
	}

	if err := h.DB.Create(&job).Error; err != nil {
		log.Error().Err(err).Msg("failed to create job")
		// The logo upload already happened, so drop the orphan.
		if derr := h.Storage.Destroy(ctx.Request.Context(), logo.PublicID); derr != nil {
			log.Error().Err(derr).Str("public_id", logo.PublicID).Msg("failed to destroy orphaned logo")
		}
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Job posted successfully.",
		"job":     job,
	})
}

// GetAllJobs handles GET /api/job/getall (public). All filters are optional;
// keyword search is a case-insensitive substring match.
func (h *JobHandler) GetAllJobs(ctx *gin.Context) {
	var query dtos.JobListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid request.")
		return
	}

	tx := h.DB.Model(&models.Job{})

	if query.City != "" {
		tx = tx.Where("location = ?", query.City)
	}
	if query.JobCategory != "" {
		tx = tx.Where("LOWER(job_category) LIKE ?", "%"+strings.ToLower(query.JobCategory)+"%")
	}
	if query.JobType != "" {
		tx = tx.Where("job_type = ?", query.JobType)
	}
	if query.SearchKeyword != "" {
		pattern := "%" + strings.ToLower(query.SearchKeyword) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(job_category) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var jobs []models.Job
	if err := tx.Find(&jobs).Error; err != nil {
		log.Error().Err(err).Msg("failed to list jobs")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    jobs,
		"count":   len(jobs),
	})
}

// GetMyJobs handles GET /api/job/getmyjobs (employer only).
func (h *JobHandler) GetMyJobs(ctx *gin.Context) {
	employer, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	var myJobs []models.Job
	if err := h.DB.Where("posted_by = ?", employer.ID).Find(&myJobs).Error; err != nil {
		log.Error().Err(err).Msg("failed to list employer jobs")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"myJobs":  myJobs,
	})
}

// GetASingleJob handles GET /api/job/get/:id (public).
func (h *JobHandler) GetASingleJob(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(ctx, http.StatusNotFound, "Job not found.")
		return
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Job not found.")
			return
		}
		log.Error().Err(err).Msg("failed to fetch job")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
	})
}

// DeleteJob handles DELETE /api/job/delete/:id (employer only). The hosted
// logo goes first, then the record; a hosting failure is logged but does not
// keep the posting around.
func (h *JobHandler) DeleteJob(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(ctx, http.StatusNotFound, "Oops! Job not found.")
		return
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Oops! Job not found.")
			return
		}
		log.Error().Err(err).Msg("failed to fetch job for deletion")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if job.CompanyLogo.PublicID != "" {
		if err := h.Storage.Destroy(ctx.Request.Context(), job.CompanyLogo.PublicID); err != nil {
			log.Error().Err(err).Str("public_id", job.CompanyLogo.PublicID).Msg("failed to destroy company logo")
		}
	}

	if err := h.DB.Delete(&job).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete job")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job deleted.",
	})
}
