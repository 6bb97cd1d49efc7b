// middleware/portal.go
package middleware

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// The client portal uses its own signed token with a separate secret so a
// leaked staff secret never opens the portal and vice versa.
var portalKey = []byte(os.Getenv("PORTAL_TOKEN_SECRET"))

// PortalClaims carry the client identity in the portal token.
type PortalClaims struct {
	ClientID string `json:"clientId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// GeneratePortalToken creates the signed portal token, valid for 7 days.
func GeneratePortalToken(clientID uuid.UUID, email string) (string, error) {
	claims := PortalClaims{
		ClientID: clientID.String(),
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(portalKey)
}

// PortalMiddleware validates the portal token from the cookie or the
// Authorization header and stashes the claims in ctx.
func PortalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ""
		if cookie, err := r.Cookie("portal_token"); err == nil {
			tokenStr = cookie.Value
		}
		if tokenStr == "" {
			auth := r.Header.Get("Authorization")
			if len(auth) > 7 && auth[:7] == "Bearer " {
				tokenStr = auth[7:]
			}
		}
		if tokenStr == "" {
			http.Error(w, "sesión de portal requerida", http.StatusUnauthorized)
			return
		}

		token, err := jwt.ParseWithClaims(tokenStr, &PortalClaims{}, func(t *jwt.Token) (interface{}, error) {
			return portalKey, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "sesión inválida o expirada", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(*PortalClaims)
		if !ok {
			http.Error(w, "sesión inválida", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), portalClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPortalClientID returns the authenticated client's id, or uuid.Nil.
func GetPortalClientID(r *http.Request) uuid.UUID {
	claims, _ := r.Context().Value(portalClaimsKey).(*PortalClaims)
	if claims == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(claims.ClientID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
