package controllers

import (
	"errors"
	"net/http"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/pkg/bind"
	"github.com/rohanwest/pancake/pkg/logger"
	"github.com/rohanwest/pancake/pkg/response"
	"github.com/rohanwest/pancake/pkg/router"
)

type RewardController struct {
	service *services.RewardService
}

func NewRewardController(service *services.RewardService) *RewardController {
	return &RewardController{service: service}
}

type issueRewardInput struct {
	ID          string `json:"id"`
	UserID      string `json:"userId" validate:"required"`
	Title       string `json:"title"  validate:"required"`
	Description string `json:"description"`
	Points      int    `json:"points" validate:"gte=0"`
	Status      string `json:"status" validate:"nullable,in=issued|redeemed"`
}

// Issue records a reward for a user.
func (c *RewardController) Issue(w http.ResponseWriter, r *http.Request) {
	var body issueRewardInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	reward, err := c.service.Issue(models.Reward{
		ID:          body.ID,
		UserID:      body.UserID,
		Title:       body.Title,
		Description: body.Description,
		Points:      body.Points,
		Status:      body.Status,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("issue reward failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.Created(w, reward)
}

// ForUser returns the rewards owned by one user, in creation order.
func (c *RewardController) ForUser(w http.ResponseWriter, r *http.Request) {
	rewards, err := c.service.ForUser(router.Param(r, "userId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("list user rewards failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, rewards)
}

// List returns every reward.
func (c *RewardController) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := c.service.List()
	if err != nil {
		logger.WithCtx(r.Context()).Error("list rewards failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, rewards)
}

// UpdateStatus overwrites a reward's status (e.g. redeems it).
func (c *RewardController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body statusInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	reward, err := c.service.SetStatus(router.Param(r, "rewardId"), body.Status)
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "Reward not found")
	case err != nil:
		logger.WithCtx(r.Context()).Error("update reward failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		response.Success(w, reward)
	}
}
