package models

import (
	"fmt"
	"time"
)

// EscrowStatus is the label set shown to users for a request's payment
// stage. Settlement itself happens outside this platform; we only carry the
// labels through their depicted progression.
type EscrowStatus string

const (
	EscrowAwaitingPayment EscrowStatus = "awaiting_payment"
	EscrowHeld            EscrowStatus = "held"
	EscrowDelivered       EscrowStatus = "delivered"
	EscrowReleased        EscrowStatus = "released"
)

type RequestStatus string

const (
	RequestStatusOpen     RequestStatus = "open"
	RequestStatusAccepted RequestStatus = "accepted"
)

// DeliveryRequest is a buyer's ask for something to be fetched and
// delivered. Contact is the field masked from anonymous viewers.
type DeliveryRequest struct {
	ID          string
	BuyerID     string
	Title       string
	PickupText  string
	DropoffText string
	BudgetDZD   int64
	Contact     string
	Status      RequestStatus
	Escrow      EscrowStatus
	DriverID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var ErrRequestNotOpen = fmt.Errorf("request is not open")

// Accept assigns a driver and advances the escrow label to held, matching
// the depicted progression once a courier is committed.
func (r *DeliveryRequest) Accept(driverID string) error {
	if r.Status != RequestStatusOpen {
		return ErrRequestNotOpen
	}
	r.Status = RequestStatusAccepted
	r.DriverID = &driverID
	r.Escrow = EscrowHeld
	return nil
}
