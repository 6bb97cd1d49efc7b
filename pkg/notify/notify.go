// Package notify creates in-app notification rows. Fan-out is best-effort:
// a failed insert is logged and never propagates, so the primary write that
// triggered it still succeeds.
package notify

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"mundosolar.mx/backend/models"
)

type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

func marshalData(data map[string]interface{}) datatypes.JSON {
	if len(data) == 0 {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// NotifyAdmins creates one notification per active admin user.
func (s *Service) NotifyAdmins(ntype models.NotificationType, title, message string, data map[string]interface{}) {
	var admins []models.User
	if err := s.db.Where("role = ? AND is_active = ?", models.RoleAdmin, true).Find(&admins).Error; err != nil {
		s.log.Warn().Err(err).Msg("notify: could not list admins")
		return
	}

	payload := marshalData(data)
	for _, admin := range admins {
		userID := admin.ID
		n := models.Notification{
			UserID:  &userID,
			Type:    ntype,
			Title:   title,
			Message: message,
			Data:    payload,
		}
		if err := s.db.Create(&n).Error; err != nil {
			s.log.Warn().Err(err).Str("userId", admin.ID.String()).Msg("notify: admin notification failed")
		}
	}
}

// NotifyUser creates one notification for a staff user.
func (s *Service) NotifyUser(userID uuid.UUID, ntype models.NotificationType, title, message string, data map[string]interface{}) {
	n := models.Notification{
		UserID:  &userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Data:    marshalData(data),
	}
	if err := s.db.Create(&n).Error; err != nil {
		s.log.Warn().Err(err).Str("userId", userID.String()).Msg("notify: user notification failed")
	}
}

// NotifyClient creates one notification for a portal client.
func (s *Service) NotifyClient(clientID uuid.UUID, ntype models.NotificationType, title, message string, data map[string]interface{}) {
	n := models.Notification{
		ClientID: &clientID,
		Type:     ntype,
		Title:    title,
		Message:  message,
		Data:     marshalData(data),
	}
	if err := s.db.Create(&n).Error; err != nil {
		s.log.Warn().Err(err).Str("clientId", clientID.String()).Msg("notify: client notification failed")
	}
}
