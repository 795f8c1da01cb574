package api

import (
	"alcyxob/studio-admin/internal/domain"
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ClientHandler struct {
	rosterService service.RosterService
	logger        logrus.FieldLogger
}

func NewClientHandler(rosterService service.RosterService) *ClientHandler {
	return &ClientHandler{
		rosterService: rosterService,
		logger:        logging.NewModuleLogger("client-handler"),
	}
}

// --- DTOs ---

// ClientRequest is the body of POST and PUT /clients.
// The plan selection is checked by the service, not by binding tags.
type ClientRequest struct {
	FirstName       string              `json:"firstName" binding:"required"`
	LastName        string              `json:"lastName" binding:"required"`
	Email           string              `json:"email" binding:"required,email"`
	Phone           string              `json:"phone" binding:"required"`
	SubscriptionIDs []string            `json:"subscriptionIds"`
	StartDate       string              `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	Status          domain.ClientStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r *ClientRequest) toDomain(id string) *domain.Client {
	return &domain.Client{
		ID:              id,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		SubscriptionIDs: r.SubscriptionIDs,
		StartDate:       r.StartDate,
		Status:          r.Status,
	}
}

// ClientResponse is a client with the plans it holds. Subscriptions leaves
// out IDs whose plan was deleted; SubscriptionIDs keeps them.
type ClientResponse struct {
	ID              string              `json:"id"`
	FirstName       string              `json:"firstName"`
	LastName        string              `json:"lastName"`
	FullName        string              `json:"fullName"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	SubscriptionIDs []string            `json:"subscriptionIds"`
	Subscriptions   []PlanResponse      `json:"subscriptions"`
	StartDate       string              `json:"startDate"`
	Status          domain.ClientStatus `json:"status"`
}

type ClientDetailResponse struct {
	ClientResponse
	Found bool `json:"found"`
}

// ToggleSelectionRequest asks for the selection after toggling PlanID.
type ToggleSelectionRequest struct {
	Selection []string `json:"selection"`
	PlanID    string   `json:"planId" binding:"required"`
}

type ToggleSelectionResponse struct {
	Selection     []string       `json:"selection"`
	Subscriptions []PlanResponse `json:"subscriptions"`
}

// MapClientViewToResponse converts a service.ClientView to ClientResponse DTO.
func MapClientViewToResponse(v *service.ClientView) ClientResponse {
	ids := v.Client.SubscriptionIDs
	if ids == nil {
		ids = []string{}
	}
	return ClientResponse{
		ID:              v.Client.ID,
		FirstName:       v.Client.FirstName,
		LastName:        v.Client.LastName,
		FullName:        v.Client.FullName(),
		Email:           v.Client.Email,
		Phone:           v.Client.Phone,
		SubscriptionIDs: ids,
		Subscriptions:   MapPlansToResponse(v.Plans),
		StartDate:       v.Client.StartDate,
		Status:          v.Client.Status,
	}
}

func MapClientViewsToResponse(views []service.ClientView) []ClientResponse {
	responses := make([]ClientResponse, len(views))
	for i := range views {
		responses[i] = MapClientViewToResponse(&views[i])
	}
	return responses
}

// --- Handler Methods ---

// ListClients handles GET /clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	views, err := h.rosterService.ListClients(c.Request.Context())
	if err != nil {
		abortWithInternalError(c, h.logger, err, "Failed to retrieve clients.")
		return
	}
	c.JSON(http.StatusOK, MapClientViewsToResponse(views))
}

// GetClient handles GET /clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	view, found, err := h.rosterService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithInternalError(c, h.logger, err, "Failed to retrieve client.")
		return
	}
	c.JSON(http.StatusOK, ClientDetailResponse{ClientResponse: MapClientViewToResponse(&view), Found: found})
}

// CreateClient handles POST /clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.save(c, req.toDomain(""), http.StatusCreated)
}

// ReplaceClient handles PUT /clients/:id.
func (h *ClientHandler) ReplaceClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.save(c, req.toDomain(c.Param("id")), http.StatusOK)
}

func (h *ClientHandler) save(c *gin.Context, client *domain.Client, status int) {
	ctx := c.Request.Context()
	saved, err := h.rosterService.SaveClient(ctx, client)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithInternalError(c, h.logger, err, "Failed to save client.")
		}
		return
	}

	view, err := h.rosterService.Resolve(ctx, *saved)
	if err != nil {
		abortWithInternalError(c, h.logger, err, "Client saved but its plans could not be loaded.")
		return
	}
	logging.LoggerWithContext(h.logger, c).WithField("client_id", saved.ID).Info("Client saved")
	c.JSON(status, MapClientViewToResponse(&view))
}

// DeleteClient handles DELETE /clients/:id?confirm=true.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if !deleteConfirmed(c) {
		abortWithError(c, http.StatusPreconditionRequired, "Deleting a client must be confirmed with ?confirm=true.")
		return
	}

	if err := h.rosterService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithInternalError(c, h.logger, err, "Failed to delete client.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleSelection handles POST /clients/selection/toggle. Nothing is stored.
func (h *ClientHandler) ToggleSelection(c *gin.Context) {
	var req ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	selection, err := h.rosterService.ToggleSelection(c.Request.Context(), req.Selection, req.PlanID)
	if err != nil {
		abortWithInternalError(c, h.logger, err, "Failed to update selection.")
		return
	}
	c.JSON(http.StatusOK, ToggleSelectionResponse{
		Selection:     selection.IDs,
		Subscriptions: MapPlansToResponse(selection.Plans),
	})
}
