package handlers

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alibi-backend/internal/config"
	"alibi-backend/internal/database"
	"alibi-backend/internal/middleware"
	"alibi-backend/internal/models"
)

const otpTTL = 10 * time.Minute

type AuthHandler struct {
	config   *config.Config
	dbClient *database.Client
}

func NewAuthHandler(cfg *config.Config, dbClient *database.Client) *AuthHandler {
	return &AuthHandler{
		config:   cfg,
		dbClient: dbClient,
	}
}

// Register godoc
// @Summary     Register a new account
// @Description Creates an unverified account and issues a one-time code. The
// @Description account cannot log in until the code is verified.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.RegisterRequest true "Registration details"
// @Success     201 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to hash password"})
		return
	}

	code, err := generateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate verification code"})
		return
	}

	expires := sql.NullTime{Time: time.Now().Add(otpTTL), Valid: true}
	user, err := h.dbClient.CreateUser(strings.ToLower(req.Email), string(hash), req.DisplayName, req.Phone, code, expires)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create account", Message: err.Error()})
		return
	}

	// Mail delivery is an external concern; the code is logged so operators
	// can relay it in development.
	log.Printf("auth: verification code for %s: %s", user.Email, code)

	c.JSON(http.StatusCreated, models.NewUserResponse(user))
}

// VerifyOTP godoc
// @Summary     Verify a one-time code
// @Description Marks the account verified and starts a session.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.OTPVerifyRequest true "Email and code"
// @Success     200 {object} models.LoginResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	user, err := h.dbClient.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid code"})
		return
	}

	if user.Verified {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "account already verified"})
		return
	}

	if !user.OTPMatches(req.Code, time.Now()) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid or expired code"})
		return
	}

	if err := h.dbClient.MarkUserVerified(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to verify account", Message: err.Error()})
		return
	}
	user.Verified = true

	h.startSession(c, user)
}

// Login godoc
// @Summary     Log in
// @Description Issues a session token and sets the session cookies the page
// @Description guard reads.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.LoginResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	user, err := h.dbClient.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid email or password"})
		return
	}

	if !user.Verified {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "account not verified"})
		return
	}

	h.startSession(c, user)
}

// Me godoc
// @Summary     Current account
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UserResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	user, err := h.dbClient.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// Logout godoc
// @Summary     Log out
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.MessageResponse
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	secure := h.config.Environment == "production"
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.RoleCookie, "", -1, "/", "", secure, false)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) {
	token, err := middleware.GenerateToken(h.config.JWTSecret, user.ID.String(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to issue token", Message: err.Error()})
		return
	}

	maxAge := int(middleware.TokenTTL.Seconds())
	secure := h.config.Environment == "production"
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", secure, true)
	// Role cookie is readable by the frontend for layout decisions; the
	// guard and API trust the token claim, not this cookie.
	c.SetCookie(middleware.RoleCookie, user.Role, maxAge, "/", "", secure, false)

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	})
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
