package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
//
// The back office has a single operator credential from configuration; order
// submission routes require the token this issues.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	env := getDeps().Env
	if env.OperatorEmail == "" || env.OperatorPasswordHash == "" {
		RespondError(c, http.StatusServiceUnavailable, "operator login is not configured", nil)
		return
	}
	if req.Email != env.OperatorEmail {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(env.OperatorPasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  req.Email,
		"role": "operator",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  gin.H{"email": req.Email, "role": "operator"},
	})
}
