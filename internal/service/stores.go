package service

import (
	"context"

	"tawsila/internal/models"
)

// Store interfaces are declared where they are consumed so the in-memory
// repositories can back the unit tests. The Postgres repositories satisfy
// them as-is.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, user models.User) error
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	DeleteOldestSessions(ctx context.Context, userID string, keepLatest int) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByDevice(ctx context.Context, userID string, deviceID string) error
	FindByRefreshHash(ctx context.Context, userID string, refreshHash []byte) (models.Session, error)
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
	Touch(ctx context.Context, sessionID string, ip string, userAgent string) error
}

type PreferenceStore interface {
	Get(ctx context.Context, userID string) (models.Preference, error)
	Save(ctx context.Context, pref models.Preference) error
}

type RequestStore interface {
	Create(ctx context.Context, req models.DeliveryRequest) error
	GetByID(ctx context.Context, id string) (models.DeliveryRequest, error)
	Update(ctx context.Context, req models.DeliveryRequest) error
	ListOpen(ctx context.Context, limit int, offset int) ([]models.DeliveryRequest, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]models.DeliveryRequest, error)
}

// SessionMirror is the redis copy of session rows. Nil disables mirroring;
// the database remains authoritative either way.
type SessionMirror interface {
	Set(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, id string) error
}
