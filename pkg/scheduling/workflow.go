package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/pkg/notify"
)

var (
	ErrMaintenanceNotFound = errors.New("maintenance not found")
	ErrNotCancelled        = errors.New("only cancelled maintenances can be deleted")
	ErrNotOwner            = errors.New("maintenance does not belong to client")
)

// WorkflowService owns the maintenance status workflow. Every status change
// appends a history entry; transitions are deliberately permissive about
// which edges are allowed.
type WorkflowService struct {
	db       *gorm.DB
	notifier *notify.Service
	log      zerolog.Logger
	now      func() time.Time
}

func NewWorkflowService(db *gorm.DB, notifier *notify.Service, log zerolog.Logger) *WorkflowService {
	return &WorkflowService{db: db, notifier: notifier, log: log, now: time.Now}
}

// statusMessages selects the client-facing message per new status.
var statusMessages = map[models.MaintenanceStatus]string{
	models.MaintenancePendingApproval: "Tu solicitud de mantenimiento fue recibida y está en revisión.",
	models.MaintenanceScheduled:       "Tu mantenimiento fue agendado.",
	models.MaintenanceInProgress:      "El técnico comenzó el mantenimiento de tu sistema.",
	models.MaintenanceCompleted:       "El mantenimiento de tu sistema fue completado.",
	models.MaintenanceCancelled:       "Tu mantenimiento fue cancelado.",
}

// InitialStatusFor returns the starting status by creation path: client
// requests await approval, admin-created visits are scheduled directly.
func InitialStatusFor(createdByAdmin bool) models.MaintenanceStatus {
	if createdByAdmin {
		return models.MaintenanceScheduled
	}
	return models.MaintenancePendingApproval
}

// ApplyTransition mutates the record for a new status: IN_PROGRESS stamps
// startedDate once, COMPLETED stamps completedDate. It never rejects an
// edge; the workflow stays permissive.
func ApplyTransition(rec *models.MaintenanceRecord, newStatus models.MaintenanceStatus, now time.Time) {
	rec.Status = newStatus
	switch newStatus {
	case models.MaintenanceInProgress:
		if rec.StartedDate == nil {
			t := now
			rec.StartedDate = &t
		}
	case models.MaintenanceCompleted:
		t := now
		rec.CompletedDate = &t
	}
}

// CreateRequestInput is a portal client's maintenance request.
type CreateRequestInput struct {
	ClientID      uuid.UUID
	SolarSystemID *uuid.UUID
	Type          string
	Title         string
	Description   string
	PreferredDate *time.Time
	Priority      string
}

// CreateRequest files a client request as PENDING_APPROVAL and notifies
// every active admin (best-effort).
func (s *WorkflowService) CreateRequest(in CreateRequestInput) (*models.MaintenanceRecord, error) {
	now := s.now()
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityScheduled
	}

	rec := models.MaintenanceRecord{
		ClientID:      in.ClientID,
		SolarSystemID: in.SolarSystemID,
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		Status:        models.MaintenancePendingApproval,
		Priority:      priority,
		RequestedDate: &now,
		ScheduledDate: in.PreferredDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		history := models.MaintenanceStatusChange{
			MaintenanceID: rec.ID,
			Status:        models.MaintenancePendingApproval,
			ChangedBy:     in.ClientID,
			Notes:         "Solicitud creada por el cliente",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create maintenance request: %w", err)
	}

	s.notifier.NotifyAdmins(models.NotificationMaintenanceRequest,
		"Nueva solicitud de mantenimiento",
		fmt.Sprintf("El cliente solicitó: %s", rec.Title),
		map[string]interface{}{"maintenanceId": rec.ID.String(), "clientId": in.ClientID.String()})

	return &rec, nil
}

// CreateScheduledInput is an admin-created, directly scheduled visit.
type CreateScheduledInput struct {
	AdminID       uuid.UUID
	ClientID      uuid.UUID
	SolarSystemID *uuid.UUID
	TechnicianIDs []uuid.UUID
	Type          string
	Title         string
	Description   string
	ScheduledDate time.Time
	Priority      string
	Notes         string
}

// CreateScheduled creates a visit already in SCHEDULED, assigns the
// technicians, appends one history entry and notifies the client.
func (s *WorkflowService) CreateScheduled(in CreateScheduledInput) (*models.MaintenanceRecord, error) {
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityScheduled
	}

	rec := models.MaintenanceRecord{
		ClientID:      in.ClientID,
		SolarSystemID: in.SolarSystemID,
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		Status:        models.MaintenanceScheduled,
		Priority:      priority,
		ScheduledDate: &in.ScheduledDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		history := models.MaintenanceStatusChange{
			MaintenanceID: rec.ID,
			Status:        models.MaintenanceScheduled,
			ChangedBy:     in.AdminID,
			Notes:         in.Notes,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		for i, techID := range in.TechnicianIDs {
			role := "assistant"
			if i == 0 {
				role = "lead"
			}
			assignment := models.MaintenanceAssignment{
				MaintenanceID: rec.ID,
				TechnicianID:  techID,
				Role:          role,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create scheduled maintenance: %w", err)
	}

	s.notifier.NotifyClient(in.ClientID, models.NotificationMaintenanceStatus,
		"Mantenimiento agendado",
		statusMessages[models.MaintenanceScheduled],
		map[string]interface{}{"maintenanceId": rec.ID.String()})

	return &rec, nil
}

// TransitionStatus appends a history entry tagged with the new status, actor
// and notes, stamps the lifecycle dates, and sends the client a
// status-selected message.
func (s *WorkflowService) TransitionStatus(id uuid.UUID, newStatus models.MaintenanceStatus, actorID uuid.UUID, notes string) (*models.MaintenanceRecord, error) {
	var rec models.MaintenanceRecord

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMaintenanceNotFound
			}
			return err
		}

		ApplyTransition(&rec, newStatus, s.now())
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}

		history := models.MaintenanceStatusChange{
			MaintenanceID: rec.ID,
			Status:        newStatus,
			ChangedBy:     actorID,
			Notes:         notes,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	message, ok := statusMessages[newStatus]
	if !ok {
		message = "El estado de tu mantenimiento cambió."
	}
	s.notifier.NotifyClient(rec.ClientID, models.NotificationMaintenanceStatus,
		"Actualización de mantenimiento", message,
		map[string]interface{}{"maintenanceId": rec.ID.String(), "status": string(newStatus)})

	return &rec, nil
}

// DeleteByClient removes a maintenance on behalf of the owning portal
// client. Only cancelled records may be deleted.
func (s *WorkflowService) DeleteByClient(id, clientID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var rec models.MaintenanceRecord
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMaintenanceNotFound
			}
			return err
		}
		if rec.ClientID != clientID {
			return ErrNotOwner
		}
		if rec.Status != models.MaintenanceCancelled {
			return ErrNotCancelled
		}
		return tx.Delete(&rec).Error
	})
}
