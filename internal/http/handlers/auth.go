package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"drinkwise/internal/auth"
	"drinkwise/internal/config"
	dbpkg "drinkwise/internal/db"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func issueFor(cfg *config.Config, user *dbpkg.User) (string, error) {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	return auth.IssueToken(cfg.JWTSecret, user.ID, ttl, time.Now())
}

// Register creates an account and signs the caller straight in.
func Register(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req registerRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			jsonError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			jsonError(ctx, fasthttp.StatusBadRequest, "email and password required")
			return
		}

		user, err := dbpkg.CreateUser(db, uuid.NewString(), req.Email, req.Name, req.Password)
		if err != nil {
			jsonError(ctx, fasthttp.StatusBadRequest, "failed to create user (email may already exist)")
			return
		}

		token, err := issueFor(cfg, user)
		if err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to issue token")
			return
		}

		jsonResponse(ctx, fasthttp.StatusCreated, map[string]any{"token": token, "user": user})
	}
}

// Login verifies credentials and issues a fresh token.
func Login(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req loginRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			jsonError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		user, err := dbpkg.UserByEmail(db, req.Email)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(ctx, fasthttp.StatusUnauthorized, "invalid email or password")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "database error")
			return
		}

		if !user.CheckPassword(req.Password) {
			jsonError(ctx, fasthttp.StatusUnauthorized, "invalid email or password")
			return
		}

		token, err := issueFor(cfg, user)
		if err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to issue token")
			return
		}

		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{"token": token, "user": user})
	}
}

// Me returns the account behind the presented token.
func Me() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, user)
	}
}
