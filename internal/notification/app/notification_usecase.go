package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskflow_realtime/internal/notification/domain"
	"taskflow_realtime/internal/notification/mailer"
	"taskflow_realtime/internal/notification/repository"
	rtdomain "taskflow_realtime/internal/realtime/domain"
	errprocess "taskflow_realtime/pkg/err"
	"taskflow_realtime/pkg/logger"
	"taskflow_realtime/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMailDisabled no mail transport configured
var ErrMailDisabled = errors.New("mail transport not configured")

// UserEmitter push an event to one user's private channel
type UserEmitter interface {
	EmitToUser(ctx context.Context, userID string, event rtdomain.Event, data interface{})
}

// NotificationUseCase notification delivery gate + settings
type NotificationUseCase struct {
	recipients repository.RecipientRepository
	emitter    UserEmitter
	mailer     mailer.Mailer
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewNotificationUseCase create NotificationUseCase; mail may be nil (email channel disabled)
func NewNotificationUseCase(recipients repository.RecipientRepository, emitter UserEmitter, mail mailer.Mailer, m *metrics.Metrics) *NotificationUseCase {
	return &NotificationUseCase{
		recipients: recipients,
		emitter:    emitter,
		mailer:     mail,
		metrics:    m,
		now:        time.Now,
	}
}

// Create run the gate for one notification: push if allowed, email if allowed and supplied.
// email failure never fails the request
func (uc *NotificationUseCase) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResult, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	recipient, err := uc.recipients.FindRecipient(ctx, req.TargetUserID)
	if err != nil {
		return nil, err
	}
	settings := recipient.EffectiveSettings()
	typeEnabled, _ := settings.TypeEnabled(req.Type)

	result := &domain.CreateResult{
		Notification: domain.Notification{
			ID:        uuid.NewString(),
			Type:      req.Type,
			Title:     req.Title,
			Body:      req.Body,
			Timestamp: uc.now(),
			Read:      false,
			UserID:    req.TargetUserID,
			Data:      req.Options.Data,
		},
	}

	if settings.Push && typeEnabled {
		uc.emitter.EmitToUser(ctx, req.TargetUserID, rtdomain.NotificationNew, result.Notification)
		result.Pushed = true
		uc.metrics.Notification("push", "sent")
	} else {
		uc.metrics.Notification("push", "skipped")
	}

	result.Emailed = uc.maybeEmail(ctx, req, settings.Email && typeEnabled)
	return result, nil
}

func (uc *NotificationUseCase) maybeEmail(ctx context.Context, req domain.CreateRequest, allowed bool) bool {
	opts := req.Options
	if !allowed || uc.mailer == nil || req.UserEmail == "" || opts.EmailSubject == "" || opts.EmailBody == "" {
		uc.metrics.Notification("email", "skipped")
		return false
	}

	if _, err := uc.mailer.Send(ctx, req.UserEmail, opts.EmailSubject, opts.EmailBody); err != nil {
		// 寄信失敗不影響通知建立
		logger.Log.Error("notification email failed",
			zap.String("user_id", req.TargetUserID),
			zap.String("type", string(req.Type)),
			zap.Error(err))
		uc.metrics.Notification("email", "failed")
		return false
	}
	uc.metrics.Notification("email", "sent")
	return true
}

func validateCreate(req domain.CreateRequest) error {
	var missing []string
	if req.Type == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Body) == "" {
		missing = append(missing, "body")
	}
	if req.TargetUserID == "" {
		missing = append(missing, "targetUserId")
	}
	if len(missing) > 0 {
		return errprocess.Malformed("missing %s", strings.Join(missing, ", "))
	}
	if _, ok := domain.DefaultSettings().TypeEnabled(req.Type); !ok {
		return errprocess.Malformed("unknown notification type %q", req.Type)
	}
	return nil
}

// Settings stored or default settings of userID
func (uc *NotificationUseCase) Settings(ctx context.Context, userID string) (domain.Settings, error) {
	recipient, err := uc.recipients.FindRecipient(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	return recipient.EffectiveSettings(), nil
}

// UpdateSettings merge patch over the effective settings and store the result
func (uc *NotificationUseCase) UpdateSettings(ctx context.Context, userID string, patch domain.SettingsPatch) (domain.Settings, error) {
	current, err := uc.Settings(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}

	updated := patch.Apply(current)
	if err := uc.recipients.UpdateSettings(ctx, userID, updated); err != nil {
		return domain.Settings{}, err
	}
	logger.Log.Info("notification settings updated", zap.String("user_id", userID))
	return updated, nil
}

// SendEmail direct email, bypasses preferences
func (uc *NotificationUseCase) SendEmail(ctx context.Context, req domain.EmailRequest) (*domain.EmailResult, error) {
	if req.To == "" || req.Subject == "" || req.Body == "" {
		return nil, errprocess.Malformed("to, subject and body are required")
	}
	if uc.mailer == nil {
		return nil, ErrMailDisabled
	}

	id, err := uc.mailer.Send(ctx, req.To, req.Subject, req.Body)
	if err != nil {
		uc.metrics.Notification("email", "failed")
		return nil, err
	}
	uc.metrics.Notification("email", "sent")
	return &domain.EmailResult{To: req.To, Subject: req.Subject, Body: req.Body, MessageID: id}, nil
}
