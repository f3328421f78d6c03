package handlers

import (
	"errors"
	"net/http"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/services"
	"fitnexus_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CommunityHandler holds the review, forum and newsletter services.
type CommunityHandler struct {
	reviewService     services.ReviewService
	forumService      services.ForumService
	newsletterService services.NewsletterService
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(rs services.ReviewService, fs services.ForumService, ns services.NewsletterService) *CommunityHandler {
	return &CommunityHandler{reviewService: rs, forumService: fs, newsletterService: ns}
}

// CreateReview stores a member testimonial.
func (h *CommunityHandler) CreateReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		utils.LogError(err, "CreateReview: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.reviewService.CreateReview(&review)
	if err != nil {
		utils.LogError(err, "CreateReview: Error from reviewService")
		if errors.Is(err, services.ErrReviewValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to save review.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetReviews lists testimonials, newest first.
func (h *CommunityHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews()
	if err != nil {
		utils.LogError(err, "GetReviews: Error from reviewService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch reviews.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateForumPost stores a community forum post.
func (h *CommunityHandler) CreateForumPost(c *gin.Context) {
	var post models.ForumPost
	if err := c.ShouldBindJSON(&post); err != nil {
		utils.LogError(err, "CreateForumPost: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.forumService.CreatePost(&post)
	if err != nil {
		utils.LogError(err, "CreateForumPost: Error from forumService")
		if errors.Is(err, services.ErrForumValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to save forum post.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetForumPosts lists forum posts in pages of six.
func (h *CommunityHandler) GetForumPosts(c *gin.Context) {
	page, _ := utils.StrToInt64(c.DefaultQuery("page", "1"))
	limit, _ := utils.StrToInt64(c.DefaultQuery("limit", "6"))

	posts, total, err := h.forumService.GetPosts(models.ForumFilters{
		Page:  int(page),
		Limit: int(limit),
	})
	if err != nil {
		utils.LogError(err, "GetForumPosts: Error from forumService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch forum posts.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "result": posts})
}

// GetRecentForumPosts lists the six newest posts.
func (h *CommunityHandler) GetRecentForumPosts(c *gin.Context) {
	posts, err := h.forumService.GetRecentPosts()
	if err != nil {
		utils.LogError(err, "GetRecentForumPosts: Error from forumService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch forum posts.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, posts)
}

type subscribeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Subscribe adds a newsletter subscriber.
func (h *CommunityHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Subscribe: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	sub, err := h.newsletterService.Subscribe(req.Name, req.Email)
	if err != nil {
		utils.LogError(err, "Subscribe: Error from newsletterService")
		switch {
		case errors.Is(err, services.ErrSubscribeValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		case errors.Is(err, services.ErrAlreadySubscribed):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"This email is already subscribed.", ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to subscribe.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// GetSubscribers lists newsletter subscribers.
func (h *CommunityHandler) GetSubscribers(c *gin.Context) {
	subs, err := h.newsletterService.GetSubscribers()
	if err != nil {
		utils.LogError(err, "GetSubscribers: Error from newsletterService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch subscribers.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, subs)
}
