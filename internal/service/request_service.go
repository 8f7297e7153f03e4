package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"tawsila/internal/ids"
	"tawsila/internal/models"
)

var (
	ErrRequestInvalid = errors.New("invalid delivery request")
	ErrOwnRequest     = errors.New("cannot accept own request")
)

type RequestService struct {
	requests RequestStore
	log      zerolog.Logger
}

func NewRequestService(requests RequestStore, log zerolog.Logger) *RequestService {
	return &RequestService{requests: requests, log: log}
}

type CreateRequestInput struct {
	Title       string
	PickupText  string
	DropoffText string
	BudgetDZD   int64
	Contact     string
}

// Create publishes a buyer's delivery request. Contact falls back to the
// buyer's phone, then email, so a courier always has a way to reach them.
func (s *RequestService) Create(ctx context.Context, buyer models.User, input CreateRequestInput) (models.DeliveryRequest, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || input.PickupText == "" || input.DropoffText == "" || input.BudgetDZD <= 0 {
		return models.DeliveryRequest{}, ErrRequestInvalid
	}

	contact := strings.TrimSpace(input.Contact)
	if contact == "" && buyer.Phone != nil {
		contact = *buyer.Phone
	}
	if contact == "" {
		contact = buyer.Email
	}

	req := models.DeliveryRequest{
		ID:          ids.New(),
		BuyerID:     buyer.ID,
		Title:       input.Title,
		PickupText:  input.PickupText,
		DropoffText: input.DropoffText,
		BudgetDZD:   input.BudgetDZD,
		Contact:     contact,
		Status:      models.RequestStatusOpen,
		Escrow:      models.EscrowAwaitingPayment,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return models.DeliveryRequest{}, err
	}
	s.log.Info().Str("request_id", req.ID).Str("buyer_id", buyer.ID).Msg("delivery request published")
	return req, nil
}

func (s *RequestService) Get(ctx context.Context, id string) (models.DeliveryRequest, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *RequestService) ListOpen(ctx context.Context, limit int, offset int) ([]models.DeliveryRequest, error) {
	return s.requests.ListOpen(ctx, limit, offset)
}

func (s *RequestService) ListByBuyer(ctx context.Context, buyerID string) ([]models.DeliveryRequest, error) {
	return s.requests.ListByBuyer(ctx, buyerID)
}

// Accept commits a driver to an open request and advances the escrow label.
func (s *RequestService) Accept(ctx context.Context, driver models.User, requestID string) (models.DeliveryRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return models.DeliveryRequest{}, err
	}

	if req.BuyerID == driver.ID {
		return models.DeliveryRequest{}, ErrOwnRequest
	}

	if err := req.Accept(driver.ID); err != nil {
		return models.DeliveryRequest{}, err
	}

	if err := s.requests.Update(ctx, req); err != nil {
		return models.DeliveryRequest{}, err
	}
	s.log.Info().Str("request_id", req.ID).Str("driver_id", driver.ID).Msg("delivery request accepted")
	return req, nil
}
