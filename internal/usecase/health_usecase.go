package usecase

import (
	"context"

	"kanam-academy-backend/internal/domain"
)

type HealthStatus struct {
	Status         string `json:"status"`
	MailConfigured bool   `json:"mail_configured"`
	Redis          bool   `json:"redis"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	contactUC domain.ContactUsecase
	redisPing func(ctx context.Context) error
}

// NewHealthUsecase reports service readiness. redisPing may be nil when Redis is not used.
func NewHealthUsecase(contactUC domain.ContactUsecase, redisPing func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{
		contactUC: contactUC,
		redisPing: redisPing,
	}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:         "ok",
		MailConfigured: u.contactUC.MailConfigured(),
		Redis:          u.redisPing != nil && u.redisPing(ctx) == nil,
	}
}
