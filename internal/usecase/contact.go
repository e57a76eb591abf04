package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kanam-academy-backend/internal/domain"
	"kanam-academy-backend/pkg/logger"
	"kanam-academy-backend/pkg/validation"
)

type contactUsecase struct {
	mailer   domain.Mailer
	settings domain.MailSettings
	validate *validator.Validate
}

// NewContactUsecase creates a new contact usecase. The validator must have the
// contact rules registered (see validation.New).
func NewContactUsecase(mailer domain.Mailer, settings domain.MailSettings, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		mailer:   mailer,
		settings: settings,
		validate: validate,
	}
}

func (uc *contactUsecase) MailConfigured() bool {
	return uc.mailer != nil && uc.settings.Configured()
}

// SendContactMessage validates the submission and sends both contact emails
func (uc *contactUsecase) SendContactMessage(ctx context.Context, sub *domain.ContactSubmission) error {
	if err := uc.validate.Struct(sub); err != nil {
		logger.Log.Debug("contact submission rejected",
			zap.Strings("problems", validation.FormatValidationErrors(err)))
		if validation.HasTag(err, "required") {
			return domain.ErrMissingFields
		}
		return domain.ErrInvalidEmail
	}

	if !uc.MailConfigured() {
		logger.Log.Warn("contact email transport is not configured",
			zap.String("driver", uc.settings.Driver))
		return domain.ErrMailNotConfigured
	}

	operator := operatorMessage(sub, uc.settings)
	ack, err := acknowledgmentMessage(sub, uc.settings)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	// Once accepted, delivery runs to completion even if the caller goes away.
	sendCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.Go(func() error {
		return uc.mailer.Send(sendCtx, operator)
	})
	g.Go(func() error {
		return uc.mailer.Send(sendCtx, ack)
	})

	if err := g.Wait(); err != nil {
		// The error handler reports the cause; this line only adds submission context.
		logger.Log.Warn("contact email delivery failed",
			zap.String("submitter", logger.MaskEmail(sub.Email)),
			zap.String("role", string(sub.Role)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	logger.Log.Info("contact message sent",
		zap.String("submitter", logger.MaskEmail(sub.Email)),
		zap.String("role", string(sub.Role)),
		zap.String("help_topic", sub.HelpTopic),
	)
	return nil
}
