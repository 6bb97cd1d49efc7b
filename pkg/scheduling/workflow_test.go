package scheduling

import (
	"testing"
	"time"

	"mundosolar.mx/backend/models"
)

func TestInitialStatusFor(t *testing.T) {
	if got := InitialStatusFor(false); got != models.MaintenancePendingApproval {
		t.Errorf("client request starts as %s, expected PENDING_APPROVAL", got)
	}
	if got := InitialStatusFor(true); got != models.MaintenanceScheduled {
		t.Errorf("admin-created visit starts as %s, expected SCHEDULED", got)
	}
}

func TestApplyTransitionStampsDates(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	rec := &models.MaintenanceRecord{Status: models.MaintenanceScheduled}

	ApplyTransition(rec, models.MaintenanceInProgress, now)
	if rec.Status != models.MaintenanceInProgress {
		t.Fatalf("status = %s", rec.Status)
	}
	if rec.StartedDate == nil || !rec.StartedDate.Equal(now) {
		t.Fatalf("startedDate = %v, expected %v", rec.StartedDate, now)
	}

	// A second IN_PROGRESS transition must not overwrite startedDate.
	later := now.Add(2 * time.Hour)
	ApplyTransition(rec, models.MaintenanceInProgress, later)
	if !rec.StartedDate.Equal(now) {
		t.Errorf("startedDate overwritten to %v", rec.StartedDate)
	}

	ApplyTransition(rec, models.MaintenanceCompleted, later)
	if rec.CompletedDate == nil || !rec.CompletedDate.Equal(later) {
		t.Errorf("completedDate = %v, expected %v", rec.CompletedDate, later)
	}
}

// The workflow is permissive: any status can follow any other, including
// edges like COMPLETED back to SCHEDULED.
func TestApplyTransitionPermissive(t *testing.T) {
	now := time.Now()
	statuses := []models.MaintenanceStatus{
		models.MaintenancePendingApproval,
		models.MaintenanceScheduled,
		models.MaintenanceInProgress,
		models.MaintenanceCompleted,
		models.MaintenanceCancelled,
		models.MaintenanceScheduled, // reanimation of a cancelled visit
	}

	rec := &models.MaintenanceRecord{Status: models.MaintenancePendingApproval}
	for _, next := range statuses {
		ApplyTransition(rec, next, now)
		if rec.Status != next {
			t.Fatalf("transition to %s not applied, status = %s", next, rec.Status)
		}
	}
}

func TestStatusMessagesCoverAllStatuses(t *testing.T) {
	for _, status := range []models.MaintenanceStatus{
		models.MaintenancePendingApproval,
		models.MaintenanceScheduled,
		models.MaintenanceInProgress,
		models.MaintenanceCompleted,
		models.MaintenanceCancelled,
	} {
		if _, ok := statusMessages[status]; !ok {
			t.Errorf("no client message for status %s", status)
		}
	}
}
