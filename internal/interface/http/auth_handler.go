package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository"
	"github.com/oksasatya/go-ddd-event-management/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
	"github.com/oksasatya/go-ddd-event-management/pkg/response"
	"github.com/oksasatya/go-ddd-event-management/pkg/validation"
)

const (
	msgMissingCredentials = "Missing username or password"
	msgInvalidCredentials = "Invalid username or password"
	msgUserExists         = "User already exists"
)

type AuthHandler struct {
	Users      repository.UserRepository
	JWT        *helpers.JWTManager
	RDB        *redis.Client    // nil disables sessions
	Cookies    *helpers.Manager // nil disables the access_token cookie
	Logger     *logrus.Logger
	BcryptCost int
}

func NewAuthHandler(users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, cookies *helpers.Manager, logger *logrus.Logger, bcryptCost int) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwt, RDB: rdb, Cookies: cookies, Logger: logger, BcryptCost: bcryptCost}
}

type registerRequest struct {
	Username *string `json:"username" binding:"required,max=80"`
	Password *string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := msgMissingCredentials
		if !validation.IsMissingField(err) && isValidationError(err) {
			msg = "Invalid registration payload"
		}
		response.Error(c, http.StatusBadRequest, msg, validation.ToDetails(err))
		return
	}

	hash, err := helpers.HashPassword(*req.Password, h.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		response.Error(c, http.StatusBadRequest, "Invalid registration payload", map[string]string{"password": "must be at most 72 bytes long"})
		return
	}
	if err != nil {
		helpers.LogError(h.Logger, "hash password failed", err, logFields(c, nil))
		response.Error(c, http.StatusInternalServerError, "error creating user", response.InternalError)
		return
	}

	u := &entity.User{Username: *req.Username, Password: hash}
	if err := h.Users.Create(c.Request.Context(), u); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			response.Message(c, http.StatusBadRequest, msgUserExists)
			return
		}
		helpers.LogError(h.Logger, "create user failed", err, logFields(c, nil))
		response.Error(c, http.StatusInternalServerError, "error creating user", response.InternalError)
		return
	}

	helpers.LogInfo(h.Logger, "user registered", logFields(c, logrus.Fields{"user_id": u.ID}))
	response.Message(c, http.StatusCreated, "User created successfully")
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validation.IsMissingField(err) {
			response.Message(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	ctx := c.Request.Context()
	u, err := h.Users.GetByUsername(ctx, *req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Message(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		helpers.LogError(h.Logger, "lookup user failed", err, logFields(c, nil))
		response.Error(c, http.StatusInternalServerError, "error logging in", response.InternalError)
		return
	}
	if !helpers.CompareHashAndPassword(u.Password, *req.Password) {
		response.Message(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	var sid string
	if h.RDB != nil {
		sid = uuid.NewString()
	}
	token, exp, err := h.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		helpers.LogError(h.Logger, "sign token failed", err, logFields(c, logrus.Fields{"user_id": u.ID}))
		response.Error(c, http.StatusInternalServerError, "error logging in", response.InternalError)
		return
	}

	if h.RDB != nil {
		s := helpers.Session{UserID: u.ID, Username: u.Username, SessionID: sid, CreatedAt: time.Now()}
		if err := helpers.SaveSession(ctx, h.RDB, s, h.JWT.AccessTTL); err != nil {
			helpers.LogError(h.Logger, "save session failed", err, logFields(c, logrus.Fields{"user_id": u.ID}))
			response.Error(c, http.StatusInternalServerError, "error logging in", response.InternalError)
			return
		}
	}
	if h.Cookies != nil {
		h.Cookies.SetAccess(c, token, exp)
	}

	helpers.LogInfo(h.Logger, "user logged in", logFields(c, logrus.Fields{"user_id": u.ID}))
	response.JSON(c, http.StatusOK, tokenResponse{AccessToken: token})
}

// Logout POST /logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	if uid == 0 {
		response.Message(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if h.RDB != nil {
		if err := helpers.DeleteSession(c.Request.Context(), h.RDB, uid); err != nil {
			helpers.LogError(h.Logger, "delete session failed", err, logFields(c, logrus.Fields{"user_id": uid}))
			response.Error(c, http.StatusInternalServerError, "error logging out", response.InternalError)
			return
		}
	}
	if h.Cookies != nil {
		h.Cookies.Clear(c)
	}
	response.Message(c, http.StatusOK, "Logged out")
}
