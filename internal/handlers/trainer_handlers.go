package handlers

import (
	"errors"
	"net/http"

	"fitnexus_backend/internal/middleware"
	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/services"
	"fitnexus_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TrainerHandler holds the trainer service.
type TrainerHandler struct {
	trainerService services.TrainerService
	userService    services.UserService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(ts services.TrainerService, us services.UserService) *TrainerHandler {
	return &TrainerHandler{trainerService: ts, userService: us}
}

// SubmitApplication handles a new trainer application.
func (h *TrainerHandler) SubmitApplication(c *gin.Context) {
	var req services.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SubmitApplication: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	app, err := h.trainerService.SubmitApplication(req)
	if err != nil {
		utils.LogError(err, "SubmitApplication: Error from trainerService")
		if errors.Is(err, services.ErrApplicationValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to apply as trainer.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, app)
}

// GetAppliedTrainers lists applications by status (default pending).
func (h *TrainerHandler) GetAppliedTrainers(c *gin.Context) {
	status := c.DefaultQuery("status", string(models.ApplicationStatusPending))

	apps, err := h.trainerService.GetApplicationsByStatus(status)
	if err != nil {
		utils.LogError(err, "GetAppliedTrainers: Error from trainerService")
		if errors.Is(err, services.ErrApplicationValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to fetch applications.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ApproveApplication promotes a pending application to trainer.
func (h *TrainerHandler) ApproveApplication(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid application ID format.", err.Error()))
		return
	}

	profile, err := h.trainerService.ApproveApplication(id)
	if err != nil {
		utils.LogError(err, "ApproveApplication: Error from trainerService")
		switch {
		case errors.Is(err, services.ErrApplicationNotFound), errors.Is(err, services.ErrUserForTrainerNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		case errors.Is(err, services.ErrInvalidApplicationState):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to approve trainer.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trainer approved", "trainer": profile})
}

type rejectRequest struct {
	Feedback string `json:"feedback"`
}

// RejectApplication denies a pending application with feedback.
func (h *TrainerHandler) RejectApplication(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid application ID format.", err.Error()))
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Request body with feedback is required.", err.Error()))
		return
	}

	app, err := h.trainerService.RejectApplication(id, req.Feedback)
	if err != nil {
		utils.LogError(err, "RejectApplication: Error from trainerService")
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		case errors.Is(err, services.ErrInvalidApplicationState):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to reject trainer.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, app)
}

// RemoveTrainer demotes an approved trainer back to member.
func (h *TrainerHandler) RemoveTrainer(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid trainer ID format.", err.Error()))
		return
	}

	if err := h.trainerService.RemoveTrainer(id); err != nil {
		utils.LogError(err, "RemoveTrainer: Error from trainerService")
		switch {
		case errors.Is(err, services.ErrTrainerNotFound),
			errors.Is(err, services.ErrApplicationNotFound),
			errors.Is(err, services.ErrUserForTrainerNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to remove trainer.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trainer removed successfully"})
}

// DeleteApplication removes an application; non-admins may only delete their own.
func (h *TrainerHandler) DeleteApplication(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid application ID format.", err.Error()))
		return
	}

	caller := middleware.CallerEmail(c)
	isAdmin := false
	if role, roleErr := h.userService.GetRoleByEmail(caller); roleErr == nil {
		isAdmin = role == string(models.UserRoleAdmin)
	}

	if err := h.trainerService.DeleteApplication(id, caller, isAdmin); err != nil {
		utils.LogError(err, "DeleteApplication: Error from trainerService")
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		case errors.Is(err, services.ErrNotApplicationOwner):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to delete application.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

// GetTrainers lists the approved roster, newest first by default.
func (h *TrainerHandler) GetTrainers(c *gin.Context) {
	trainers, err := h.trainerService.GetTrainers(c.Query("sort"))
	if err != nil {
		utils.LogError(err, "GetTrainers: Error from trainerService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch trainers.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// GetTrainerByID fetches one roster entry.
func (h *TrainerHandler) GetTrainerByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid trainer ID format.", err.Error()))
		return
	}

	trainer, err := h.trainerService.GetTrainerByID(id)
	if err != nil {
		if errors.Is(err, services.ErrTrainerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Trainer not found", ""))
			return
		}
		utils.LogError(err, "GetTrainerByID: Error from trainerService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch trainer.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// GetTrainersByClass lists up to five trainers whose skills match the category.
func (h *TrainerHandler) GetTrainersByClass(c *gin.Context) {
	trainers, err := h.trainerService.GetTrainersBySkill(c.Param("category"))
	if err != nil {
		utils.LogError(err, "GetTrainersByClass: Error from trainerService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch trainers.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// GetMySlots lists the caller's slots; an explicit email query overrides for
// compatibility with the original client.
func (h *TrainerHandler) GetMySlots(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = middleware.CallerEmail(c)
	}

	slots, err := h.trainerService.GetMySlots(email)
	if err != nil {
		utils.LogError(err, "GetMySlots: Error from trainerService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch slots.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, slots)
}

// DeleteSlot removes one of the caller's own slots.
func (h *TrainerHandler) DeleteSlot(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid slot ID format.", err.Error()))
		return
	}

	if err := h.trainerService.DeleteSlot(id, middleware.CallerEmail(c)); err != nil {
		utils.LogError(err, "DeleteSlot: Error from trainerService")
		switch {
		case errors.Is(err, services.ErrSlotNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		case errors.Is(err, services.ErrNotSlotOwner):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to delete slot.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

// GetActivityLog lists a member's pending and rejected applications.
func (h *TrainerHandler) GetActivityLog(c *gin.Context) {
	apps, err := h.trainerService.GetActivityLog(c.Param("email"))
	if err != nil {
		utils.LogError(err, "GetActivityLog: Error from trainerService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch activity log.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, apps)
}
