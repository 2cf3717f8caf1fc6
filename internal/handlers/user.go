package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobxnepal/backend/internal/auth"
	"github.com/jobxnepal/backend/internal/dtos"
	"github.com/jobxnepal/backend/internal/models"
	"github.com/jobxnepal/backend/internal/services"
	"github.com/jobxnepal/backend/internal/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB      *gorm.DB
	Storage services.FileStorage
}

func NewUserHandler(db *gorm.DB, storage services.FileStorage) *UserHandler {
	return &UserHandler{DB: db, Storage: storage}
}

// sendToken issues the session cookie and writes the success envelope, the
// shared tail of register, login and password update.
func sendToken(ctx *gin.Context, user models.User, status int, message string) {
	token, err := auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate JWT")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	auth.SetSessionCookie(ctx, token)
	ctx.JSON(status, gin.H{
		"success": true,
		"message": message,
		"user":    user,
		"token":   token,
	})
}

// Register handles POST /api/user/register (multipart form).
func (h *UserHandler) Register(ctx *gin.Context) {
	var req dtos.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid request.")
		return
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" || req.Password == "" || req.Role == "" {
		utils.RespondError(ctx, http.StatusBadRequest, "All fields are required.")
		return
	}
	if req.Role == models.RoleJobSeeker && (req.FirstChoice == "" || req.SecondChoice == "" || req.ThirdChoice == "") {
		utils.RespondError(ctx, http.StatusBadRequest, "Please provide your preferred job choices.")
		return
	}

	resumeFile, err := ctx.FormFile("resume")
	if req.Role == models.RoleJobSeeker && (err != nil || resumeFile == nil) {
		utils.RespondError(ctx, http.StatusBadRequest, "Please upload your job resume file.")
		return
	}
	pictureFile, err := ctx.FormFile("profilePicture")
	if err != nil || pictureFile == nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Please upload your profile picture.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err = h.DB.Where("email = ? AND role = ?", email, req.Role).First(&existing).Error
	if err == nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Email is already registered with same user role.")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("failed to check existing user")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         req.Role,
		PasswordHash: string(passwordHash),
		JobChoices: models.JobChoices{
			FirstChoice:  req.FirstChoice,
			SecondChoice: req.SecondChoice,
			ThirdChoice:  req.ThirdChoice,
		},
	}

	requestCtx := ctx.Request.Context()

	picture, err := h.Storage.Upload(requestCtx, pictureFile, services.FolderProfilePictures)
	if err != nil {
		log.Error().Err(err).Msg("profile picture upload failed")
		utils.RespondError(ctx, http.StatusInternalServerError, "Failed to upload your profile picture to cloud.")
		return
	}
	user.ProfilePicture = picture

	if req.Role == models.RoleJobSeeker {
		resume, err := h.Storage.Upload(requestCtx, resumeFile, services.FolderResumes)
		if err != nil {
			log.Error().Err(err).Msg("resume upload failed")
			h.destroyQuietly(ctx, picture.PublicID)
			utils.RespondError(ctx, http.StatusInternalServerError, "Failed to upload resume to cloud.")
			return
		}
		user.Resume = resume
	}

	if err := h.DB.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user")
		// No rollback spans upload and insert, so clean the orphans up here.
		h.destroyQuietly(ctx, user.ProfilePicture.PublicID)
		h.destroyQuietly(ctx, user.Resume.PublicID)
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	sendToken(ctx, user, http.StatusCreated, "User Registered.")
}

// Login handles POST /api/user/login. Each missing-field combination keeps
// its own message.
func (h *UserHandler) Login(ctx *gin.Context) {
	var req dtos.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid request.")
		return
	}

	switch {
	case req.Email == "" && req.Password == "" && req.Role == "":
		utils.RespondError(ctx, http.StatusBadRequest, "User Role, Email and Password are required For login.")
		return
	case req.Role == "" && req.Email != "" && req.Password != "":
		utils.RespondError(ctx, http.StatusBadRequest, "User Role is required for login.")
		return
	case req.Role != "" && req.Password != "" && req.Email == "":
		utils.RespondError(ctx, http.StatusBadRequest, "Email is required for login.")
		return
	case req.Role != "" && req.Email != "" && req.Password == "":
		utils.RespondError(ctx, http.StatusBadRequest, "Password is required for login.")
		return
	}

	var user models.User
	err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusBadRequest, "Invalid email or password.")
			return
		}
		log.Error().Err(err).Msg("failed to fetch user for login")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid email or password.")
		return
	}

	if user.Role != req.Role {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid user role.")
		return
	}

	sendToken(ctx, user, http.StatusOK, "User logged in successfully.")
}

// Logout handles GET /api/user/logout.
func (h *UserHandler) Logout(ctx *gin.Context) {
	auth.ClearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully.",
	})
}

// GetUser handles GET /api/user/getuser.
func (h *UserHandler) GetUser(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// UpdateProfile handles PUT /api/user/update/profile (multipart form).
// Replacing a hosted file destroys the previous copy first.
func (h *UserHandler) UpdateProfile(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	var req dtos.UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Invalid request.")
		return
	}

	if user.Role == models.RoleJobSeeker && (req.FirstChoice == "" || req.SecondChoice == "" || req.ThirdChoice == "") {
		utils.RespondError(ctx, http.StatusBadRequest, "Please provide your all preferred job choices.")
		return
	}

	// Partial replacement: fields absent from the form keep their stored
	// values.
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.FirstChoice != "" {
		user.JobChoices.FirstChoice = req.FirstChoice
	}
	if req.SecondChoice != "" {
		user.JobChoices.SecondChoice = req.SecondChoice
	}
	if req.ThirdChoice != "" {
		user.JobChoices.ThirdChoice = req.ThirdChoice
	}

	requestCtx := ctx.Request.Context()

	if pictureFile, err := ctx.FormFile("profilePicture"); err == nil && pictureFile != nil {
		h.destroyQuietly(ctx, user.ProfilePicture.PublicID)
		picture, err := h.Storage.Upload(requestCtx, pictureFile, services.FolderProfilePictures)
		if err != nil {
			log.Error().Err(err).Msg("profile picture replacement failed")
			utils.RespondError(ctx, http.StatusInternalServerError, "Failed to upload new profile picture.")
			return
		}
		user.ProfilePicture = picture
	}

	if resumeFile, err := ctx.FormFile("resume"); err == nil && resumeFile != nil && user.Role == models.RoleJobSeeker {
		h.destroyQuietly(ctx, user.Resume.PublicID)
		resume, err := h.Storage.Upload(requestCtx, resumeFile, services.FolderResumes)
		if err != nil {
			log.Error().Err(err).Msg("resume replacement failed")
			utils.RespondError(ctx, http.StatusInternalServerError, "Failed to upload new resume.")
			return
		}
		user.Resume = resume
	}

	if err := h.DB.Save(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to update profile")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"message": "Profile updated.",
	})
}

// UpdatePassword handles PUT /api/user/update/password.
func (h *UserHandler) UpdatePassword(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User is not authenticated.")
		return
	}

	var req dtos.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "All fields are required.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		utils.RespondError(ctx, http.StatusBadRequest, "Old password is incorrect.")
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		utils.RespondError(ctx, http.StatusBadRequest, "New password & confirm password do not match.")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if err := h.DB.Model(&user).Update("password_hash", string(passwordHash)).Error; err != nil {
		log.Error().Err(err).Msg("failed to update password")
		utils.RespondError(ctx, http.StatusInternalServerError, "Internal server error.")
		return
	}

	sendToken(ctx, user, http.StatusOK, "Password updated successfully.")
}

// destroyQuietly removes a hosted file, logging instead of failing the
// request when the hosting call errors.
func (h *UserHandler) destroyQuietly(ctx *gin.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := h.Storage.Destroy(ctx.Request.Context(), publicID); err != nil {
		log.Error().Err(err).Str("public_id", publicID).Msg("failed to destroy hosted file")
	}
}
