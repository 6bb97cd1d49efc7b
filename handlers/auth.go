// handlers/auth.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
)

type registerReq struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin staff technician"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondInternal(w, err)
		return
	}
	u := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "el correo o teléfono ya está registrado")
		} else {
			respondInternal(w, err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"id": u.ID})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Role  string    `json:"role"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos")
		return
	}
	var u models.User
	if err := config.DB.Where("email = ? AND is_active = ?", req.Email, true).First(&u).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}

	token, err := middleware.GenerateToken(u.ID.String(), u.Role, u.Name, u.Email)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  userPayload{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role},
	})
}

// PortalLogin authenticates a portal client and sets the signed portal
// cookie.
func PortalLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos")
		return
	}
	var c models.Client
	if err := config.DB.Where("email = ? AND is_active = ? AND portal_access = ?", req.Email, true, true).
		First(&c).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}

	token, err := middleware.GeneratePortalToken(c.ID, c.Email)
	if err != nil {
		respondInternal(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "portal_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"client": map[string]interface{}{
			"id":    c.ID,
			"name":  c.Name,
			"email": c.Email,
		},
	})
}

// GetCurrentUser resolves the bearer token back to the user record.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "no autenticado")
		return
	}
	var u models.User
	if err := config.DB.First(&u, "id = ?", claims.UserID).Error; err != nil {
		respondError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, userPayload{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role})
}
