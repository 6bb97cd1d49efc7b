// models/maintenance.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceStatus values. Transitions are recorded in history; the workflow
// is deliberately permissive about which edges are allowed.
type MaintenanceStatus string

const (
	MaintenancePendingApproval MaintenanceStatus = "PENDING_APPROVAL"
	MaintenanceScheduled       MaintenanceStatus = "SCHEDULED"
	MaintenanceInProgress      MaintenanceStatus = "IN_PROGRESS"
	MaintenanceCompleted       MaintenanceStatus = "COMPLETED"
	MaintenanceCancelled       MaintenanceStatus = "CANCELLED"
)

// MaintenancePriority values.
const (
	PriorityScheduled = "SCHEDULED"
	PriorityUrgent    = "URGENT"
)

type MaintenanceRecord struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID      uuid.UUID         `gorm:"type:uuid;index;not null" json:"clientId"`
	Client        *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	SolarSystemID *uuid.UUID        `gorm:"type:uuid;index" json:"solarSystemId,omitempty"`
	SolarSystem   *SolarSystem      `gorm:"foreignKey:SolarSystemID" json:"solarSystem,omitempty"`
	Type          string            `gorm:"size:50;not null" json:"type"`
	Title         string            `gorm:"size:200;not null" json:"title"`
	Description   string            `gorm:"size:1000" json:"description"`
	Status        MaintenanceStatus `gorm:"size:30;not null;index" json:"status"`
	Priority      string            `gorm:"size:20;not null;default:'SCHEDULED'" json:"priority"`

	RequestedDate *time.Time `json:"requestedDate,omitempty"`
	ScheduledDate *time.Time `gorm:"index" json:"scheduledDate,omitempty"`
	StartedDate   *time.Time `json:"startedDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	History     []MaintenanceStatusChange `gorm:"foreignKey:MaintenanceID" json:"history,omitempty"`
	Assignments []MaintenanceAssignment   `gorm:"foreignKey:MaintenanceID" json:"assignments,omitempty"`
}

// MaintenanceStatusChange is one entry in the ordered transition history.
type MaintenanceStatusChange struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MaintenanceID uuid.UUID         `gorm:"type:uuid;index;not null" json:"maintenanceId"`
	Status        MaintenanceStatus `gorm:"size:30;not null" json:"status"`
	ChangedBy     uuid.UUID         `gorm:"type:uuid;not null" json:"changedBy"`
	Notes         string            `gorm:"size:500" json:"notes"`
	CreatedAt     time.Time         `gorm:"autoCreateTime;index" json:"createdAt"`
}

// MaintenanceAssignment links a technician to a maintenance with a role tag
// (lead, assistant, ...).
type MaintenanceAssignment struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MaintenanceID uuid.UUID   `gorm:"type:uuid;index;not null" json:"maintenanceId"`
	TechnicianID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"technicianId"`
	Technician    *Technician `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Role          string      `gorm:"size:30;not null;default:'lead'" json:"role"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}
