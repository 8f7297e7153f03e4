package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tawsila/internal/i18n"
	"tawsila/internal/middleware"
	"tawsila/internal/models"
	"tawsila/internal/repository"
	"tawsila/internal/service"
)

type requestResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	PickupText  string    `json:"pickupText"`
	DropoffText string    `json:"dropoffText"`
	BudgetDZD   int64     `json:"budgetDzd"`
	Contact     string    `json:"contact,omitempty"`
	Status      string    `json:"status"`
	Escrow      string    `json:"escrow"`
	EscrowLabel string    `json:"escrowLabel"`
	Locked      bool      `json:"locked"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// toRequestResponse renders a delivery request for the caller. Anonymous
// viewers get a degraded payload: contact details are withheld and the entry
// is marked locked with a localized hint to sign in.
func toRequestResponse(req models.DeliveryRequest, lang i18n.Language, authenticated bool) requestResponse {
	resp := requestResponse{
		ID:          req.ID,
		Title:       req.Title,
		PickupText:  req.PickupText,
		DropoffText: req.DropoffText,
		BudgetDZD:   req.BudgetDZD,
		Status:      string(req.Status),
		Escrow:      string(req.Escrow),
		EscrowLabel: i18n.T(lang, "escrow."+string(req.Escrow)),
		CreatedAt:   req.CreatedAt,
	}
	if authenticated {
		resp.Contact = req.Contact
	} else {
		resp.Locked = true
		resp.Message = i18n.T(lang, "request.locked")
	}
	return resp
}

type createRequestBody struct {
	Title       string `json:"title" binding:"required"`
	PickupText  string `json:"pickupText" binding:"required"`
	DropoffText string `json:"dropoffText" binding:"required"`
	BudgetDZD   int64  `json:"budgetDzd" binding:"required"`
	Contact     string `json:"contact"`
}

func (h HandlerSet) CreateRequest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.requests.Create(c.Request.Context(), user, service.CreateRequestInput{
		Title:       body.Title,
		PickupText:  body.PickupText,
		DropoffText: body.DropoffText,
		BudgetDZD:   body.BudgetDZD,
		Contact:     body.Contact,
	})
	if err != nil {
		if errors.Is(err, service.ErrRequestInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lang := middleware.Lang(c)
	c.JSON(http.StatusCreated, gin.H{
		"request": toRequestResponse(req, lang, true),
		"message": i18n.T(lang, "request.created"),
	})
}

func (h HandlerSet) ListRequests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	requests, err := h.requests.ListOpen(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	_, authenticated := middleware.CurrentUser(c)
	lang := middleware.Lang(c)

	resp := make([]requestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, toRequestResponse(req, lang, authenticated))
	}

	c.JSON(http.StatusOK, gin.H{"requests": resp})
}

func (h HandlerSet) GetRequest(c *gin.Context) {
	req, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": i18n.T(middleware.Lang(c), "request.not_found"),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	_, authenticated := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"request": toRequestResponse(req, middleware.Lang(c), authenticated)})
}

func (h HandlerSet) ListMyRequests(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	requests, err := h.requests.ListByBuyer(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lang := middleware.Lang(c)
	resp := make([]requestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, toRequestResponse(req, lang, true))
	}

	c.JSON(http.StatusOK, gin.H{"requests": resp})
}

func (h HandlerSet) AcceptRequest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	lang := middleware.Lang(c)
	req, err := h.requests.Accept(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": i18n.T(lang, "request.not_found"),
			})
		case errors.Is(err, models.ErrRequestNotOpen):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "request_not_open",
				"message": i18n.T(lang, "request.not_open"),
			})
		case errors.Is(err, service.ErrOwnRequest):
			c.JSON(http.StatusConflict, gin.H{"error": "own_request"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": toRequestResponse(req, lang, true),
		"message": i18n.T(lang, "request.accepted"),
	})
}

// MarketFeed is the worker-facing view of the open request pool. The route
// is gated on seller or driver, held anywhere in the role set.
func (h HandlerSet) MarketFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	requests, err := h.requests.ListOpen(c.Request.Context(), limit, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lang := middleware.Lang(c)
	resp := make([]requestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, toRequestResponse(req, lang, true))
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":   resp,
		"nightBonus": h.nightFlag.Active(),
	})
}
