package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
)

// GetMyNotifications lists the authenticated staff user's notifications.
func GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	page, limit, offset := parsePagination(r)

	query := config.DB.Model(&models.Notification{}).Where("user_id = ?", claims.UserID)
	if r.URL.Query().Get("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	if err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&notifications).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: notifications, Page: page, Limit: limit, Total: total})
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	id := mux.Vars(r)["id"]

	var notification models.Notification
	if err := config.DB.First(&notification, "id = ? AND user_id = ?", id, claims.UserID).Error; err != nil {
		respondError(w, http.StatusNotFound, "notificación no encontrada")
		return
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := config.DB.Save(&notification).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notification)
}

// MarkAllNotificationsRead marks everything unread for the user.
func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	now := time.Now()

	res := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", claims.UserID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		respondInternal(w, res.Error)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"marked": res.RowsAffected})
}

// GetPortalNotifications lists the portal client's notifications.
func GetPortalNotifications(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)
	page, limit, offset := parsePagination(r)

	query := config.DB.Model(&models.Notification{}).Where("client_id = ?", clientID)
	if r.URL.Query().Get("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	if err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&notifications).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: notifications, Page: page, Limit: limit, Total: total})
}

// MarkPortalNotificationRead marks one of the client's notifications read.
func MarkPortalNotificationRead(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)
	id := mux.Vars(r)["id"]

	var notification models.Notification
	if err := config.DB.First(&notification, "id = ? AND client_id = ?", id, clientID).Error; err != nil {
		respondError(w, http.StatusNotFound, "notificación no encontrada")
		return
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := config.DB.Save(&notification).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notification)
}
