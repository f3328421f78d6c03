package handlers

import (
	"errors"
	"net/http"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/services"
	"fitnexus_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClassHandler holds the class service.
type ClassHandler struct {
	classService services.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(cs services.ClassService) *ClassHandler {
	return &ClassHandler{classService: cs}
}

// CreateClass adds a class to the catalog.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateClass: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	class, err := h.classService.CreateClass(req)
	if err != nil {
		utils.LogError(err, "CreateClass: Error from classService")
		if errors.Is(err, services.ErrClassValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to create class.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, class)
}

// GetClasses lists the catalog with pagination, title search and sorting.
func (h *ClassHandler) GetClasses(c *gin.Context) {
	page, _ := utils.StrToInt64(c.DefaultQuery("page", "1"))
	limit, _ := utils.StrToInt64(c.DefaultQuery("limit", "10"))

	filters := services.NormalizeClassFilters(models.ClassFilters{
		Title: c.Query("title"),
		Sort:  c.Query("sort"),
		Page:  int(page),
		Limit: int(limit),
	})

	classes, total, err := h.classService.GetClasses(filters)
	if err != nil {
		utils.LogError(err, "GetClasses: Error from classService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch classes.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"result": classes,
		"page":   filters.Page,
		"limit":  filters.Limit,
	})
}

// GetPackages lists the membership tiers.
func (h *ClassHandler) GetPackages(c *gin.Context) {
	packages, err := h.classService.GetPackages()
	if err != nil {
		utils.LogError(err, "GetPackages: Error from classService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch packages.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, packages)
}
