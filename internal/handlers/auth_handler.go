package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/redislock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type StaffStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthHandler struct {
	users   StaffStore
	limiter redislock.AttemptLimiter
	audit   *audit.Dispatcher
	log     zerolog.Logger

	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthHandler(
	users StaffStore,
	limiter redislock.AttemptLimiter,
	audit *audit.Dispatcher,
	log zerolog.Logger,
	secret string,
	ttl time.Duration,
) *AuthHandler {
	return &AuthHandler{
		users:   users,
		limiter: limiter,
		audit:   audit,
		log:     log,
		secret:  secret,
		ttl:     ttl,
		now:     time.Now,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "username and password are required")
		return
	}

	ctx := c.Request.Context()
	username := strings.TrimSpace(req.Username)
	key := "login:" + c.ClientIP() + ":" + strings.ToLower(username)

	allowed, err := h.limiter.Allow(ctx, key)
	if err != nil {
		// Fail open while Redis is down.
		h.log.Warn().Err(err).Msg("login limiter unavailable")
		allowed = true
	}
	if !allowed {
		h.audit.Dispatch(audit.Event{
			Actor:    "staff:" + username,
			Action:   audit.ActionStaffLoginRateLimited,
			Entity:   "user",
			Metadata: map[string]string{"ip": c.ClientIP()},
		})
		httperr.TooManyRequests(c, "too_many_attempts", "Too many login attempts. Try again in a minute")
		return
	}

	user, err := h.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password")
			return
		}
		h.log.Error().Err(err).Msg("login lookup failed")
		httperr.Internal(c, "internal_error", "Internal Server Error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password")
		return
	}

	token, err := middleware.IssueToken(user, h.secret, h.ttl, h.now())
	if err != nil {
		h.log.Error().Err(err).Msg("sign token failed")
		httperr.Internal(c, "failed_to_generate_token", "Could not sign token")
		return
	}

	if err := h.limiter.Reset(ctx, key); err != nil {
		h.log.Warn().Err(err).Msg("reset login attempts failed")
	}

	h.audit.Dispatch(audit.Event{
		Actor:    "staff:" + user.Username,
		Action:   audit.ActionStaffLogin,
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		},
		"token": token,
	})
}
