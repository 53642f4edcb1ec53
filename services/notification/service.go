package notification

import (
	"fmt"

	userRepo "buskpod/database/repository/user"
	"buskpod/models"
	"buskpod/services/tasks"
	"buskpod/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService queues booking emails and SMS for background
// delivery. Every method is fire-and-forget: failures are logged and never
// propagate to the caller.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Client *asynq.Client
}

func NewDefaultNotificationService(users userRepo.UserRepository) *DefaultNotificationService {
	return &DefaultNotificationService{Users: users, Client: tasks.GetClient()}
}

// BookingCreated queues the booking-received notification.
func (s *DefaultNotificationService) BookingCreated(bk *models.PodBooking) {
	s.dispatchBooking(bk, TemplateBookingCreated)
}

// BookingStatusChanged queues the status-update notification.
func (s *DefaultNotificationService) BookingStatusChanged(bk *models.PodBooking) {
	s.dispatchBooking(bk, TemplateBookingStatus)
}

func (s *DefaultNotificationService) dispatchBooking(bk *models.PodBooking, tmpl string) {
	logger := utils.GetLogger()

	u, err := s.Users.GetByID(bk.UserID)
	if err != nil || u == nil {
		logger.Warn("notification skipped: user lookup failed",
			zap.String("userId", bk.UserID), zap.Error(err))
		return
	}

	context := map[string]string{
		"name":      u.FullName,
		"reference": bk.BookingReference,
		"date":      bk.BookingDate,
		"status":    string(bk.Status),
		"amount":    fmt.Sprintf("%.2f", bk.TotalAmount),
	}

	s.enqueue(models.NotificationPayload{
		Channel:  ChannelEmail,
		To:       u.Email,
		Subject:  SubjectFor(tmpl),
		Template: tmpl,
		Context:  context,
	})
	if u.Phone != "" {
		s.enqueue(models.NotificationPayload{
			Channel:  ChannelSMS,
			To:       u.Phone,
			Template: tmpl,
			Context:  context,
		})
	}
}

func (s *DefaultNotificationService) enqueue(payload models.NotificationPayload) {
	logger := utils.GetLogger()
	task, err := tasks.NewNotificationTask(payload)
	if err != nil {
		logger.Warn("failed to build notification task", zap.Error(err))
		return
	}
	if _, err := s.Client.Enqueue(task); err != nil {
		logger.Warn("failed to enqueue notification",
			zap.String("channel", payload.Channel), zap.Error(err))
	}
}
