package api

import (
	"alcyxob/studio-admin/internal/domain"
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PlanHandler serves the subscription plan catalog.
type PlanHandler struct {
	catalogService service.CatalogService
	logger         logrus.FieldLogger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(catalogService service.CatalogService) *PlanHandler {
	return &PlanHandler{
		catalogService: catalogService,
		logger:         logging.NewModuleLogger("plan-handler"),
	}
}

// --- DTOs ---

// PlanRequest is the body of POST and PUT /subscriptions.
type PlanRequest struct {
	Name             string          `json:"name" binding:"required"`
	Price            decimal.Decimal `json:"price"`
	Type             domain.PlanType `json:"type" binding:"required,oneof=personal group"`
	SessionsPerMonth int             `json:"sessionsPerMonth" binding:"required,gt=0"`
	Features         []string        `json:"features"`
	Schedule         []string        `json:"schedule"` // ignored for personal plans
}

func (r *PlanRequest) toDomain(id string) *domain.SubscriptionPlan {
	return &domain.SubscriptionPlan{
		ID:               id,
		Name:             r.Name,
		Price:            r.Price,
		Type:             r.Type,
		SessionsPerMonth: r.SessionsPerMonth,
		Features:         r.Features,
		Schedule:         r.Schedule,
	}
}

// PlanResponse is the DTO for returning a plan.
type PlanResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Type             domain.PlanType `json:"type"`
	SessionsPerMonth int             `json:"sessionsPerMonth"`
	Features         []string        `json:"features"`
	Schedule         []string        `json:"schedule,omitempty"`
}

// PlanDetailResponse is returned by GET /subscriptions/:id. Found is false
// when the ID is unknown and the plan holds blank defaults.
type PlanDetailResponse struct {
	PlanResponse
	Found bool `json:"found"`
}

// MapPlanToResponse converts a domain.SubscriptionPlan to PlanResponse DTO.
func MapPlanToResponse(p *domain.SubscriptionPlan) PlanResponse {
	if p == nil {
		return PlanResponse{}
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PlanResponse{
		ID:               p.ID,
		Name:             p.Name,
		Price:            p.Price,
		Type:             p.Type,
		SessionsPerMonth: p.SessionsPerMonth,
		Features:         features,
		Schedule:         p.Schedule,
	}
}

// MapPlansToResponse converts a slice of plans to a slice of PlanResponse DTO.
func MapPlansToResponse(plans []domain.SubscriptionPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	return responses
}

// --- Handler Methods ---

// ListPlans handles GET /subscriptions.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.catalogService.ListPlans(c.Request.Context())
	if err != nil {
		abortWithInternalError(c, h.logger, err, "Failed to retrieve subscription plans.")
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetPlan handles GET /subscriptions/:id.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, found, err := h.catalogService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithInternalError(c, h.logger, err, "Failed to retrieve subscription plan.")
		return
	}
	c.JSON(http.StatusOK, PlanDetailResponse{PlanResponse: MapPlanToResponse(&plan), Found: found})
}

// CreatePlan handles POST /subscriptions.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.save(c, req.toDomain(""), http.StatusCreated)
}

// ReplacePlan handles PUT /subscriptions/:id. The plan is created when absent.
func (h *PlanHandler) ReplacePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.save(c, req.toDomain(c.Param("id")), http.StatusOK)
}

func (h *PlanHandler) save(c *gin.Context, plan *domain.SubscriptionPlan, status int) {
	saved, err := h.catalogService.SavePlan(c.Request.Context(), plan)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithInternalError(c, h.logger, err, "Failed to save subscription plan.")
		}
		return
	}
	c.JSON(status, MapPlanToResponse(saved))
}

// DeletePlan handles DELETE /subscriptions/:id?confirm=true.
// Clients that hold the plan keep its ID.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if !deleteConfirmed(c) {
		abortWithError(c, http.StatusPreconditionRequired, "Deleting a subscription plan must be confirmed with ?confirm=true.")
		return
	}

	if err := h.catalogService.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithInternalError(c, h.logger, err, "Failed to delete subscription plan.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
