package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// Notifier creates in-app notifications and emails opted-in recipients.
type Notifier struct {
	DB     *gorm.DB
	Mailer Mailer
	Log    *zap.Logger
}

func NewNotifier(db *gorm.DB, mailer Mailer, log *zap.Logger) *Notifier {
	return &Notifier{DB: db, Mailer: mailer, Log: log}
}

// Broadcast creates a Notification for every recipient and emails those whose
// profile has notifications enabled. A nil recipients slice means all active
// users. Mailing failures are logged, not returned; the broadcast itself must
// not fail because of the mail provider.
func (n *Notifier) Broadcast(title, body, url, level string, senderID *uint, recipients []models.User) (int, error) {
	if recipients == nil {
		if err := n.DB.Where("is_active = ?", true).Find(&recipients).Error; err != nil {
			return 0, err
		}
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	notifications := make([]models.Notification, 0, len(recipients))
	var emails []string

	for _, user := range recipients {
		notifications = append(notifications, models.Notification{
			RecipientID: user.ID,
			SenderID:    senderID,
			Title:       title,
			Body:        body,
			URL:         url,
			Level:       level,
		})

		var profile models.Profile
		err := n.DB.Where("user_id = ?", user.ID).First(&profile).Error
		if err == nil && profile.ReceiveNotifications && user.Email != "" {
			emails = append(emails, user.Email)
		}
	}

	if err := n.DB.CreateInBatches(notifications, 500).Error; err != nil {
		return 0, err
	}

	if len(emails) > 0 {
		if err := n.Mailer.Send(emails, title, body); err != nil {
			n.Log.Warn("broadcast email failed", zap.Error(err))
		}
	}

	return len(notifications), nil
}
