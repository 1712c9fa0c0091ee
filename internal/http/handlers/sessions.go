package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "drinkwise/internal/db"
)

type createSessionRequest struct {
	Name string `json:"name"`
}

// ListSessions returns the caller's sessions, newest first, with nested drinks.
func ListSessions(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		sessions, err := dbpkg.SessionsByUser(db, user.ID)
		if err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to fetch sessions")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, sessions)
	}
}

// CreateSession starts a new active session for the caller.
func CreateSession(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		var req createSessionRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			jsonError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Name == "" {
			req.Name = "Session"
		}

		session, err := dbpkg.CreateSession(db, uuid.NewString(), user.ID, req.Name, time.Now())
		if err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to create session")
			return
		}

		CountSessionStarted()
		jsonResponse(ctx, fasthttp.StatusCreated, session)
	}
}

// GetSession returns one owned session with its drinks.
func GetSession(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		session, err := dbpkg.SessionByID(db, user.ID, pathParam(ctx, "id"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(ctx, fasthttp.StatusNotFound, "session not found")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to fetch session")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, session)
	}
}

// EndSession closes an active session, setting its end time. A session
// that was already ended (by the owner in another tab or by the
// inactivity worker) yields 409 rather than a silent overwrite.
func EndSession(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		session, err := dbpkg.EndSession(db, user.ID, pathParam(ctx, "id"), time.Now())
		if err != nil {
			if err == dbpkg.ErrConflict {
				jsonError(ctx, fasthttp.StatusConflict, "session is not active")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to end session")
			return
		}

		CountSessionEnded("manual")
		jsonResponse(ctx, fasthttp.StatusOK, session)
	}
}

// ResumeSession reopens a closed session and clears its end time.
func ResumeSession(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		session, err := dbpkg.ResumeSession(db, user.ID, pathParam(ctx, "id"))
		if err != nil {
			if err == dbpkg.ErrConflict {
				jsonError(ctx, fasthttp.StatusConflict, "session is already active")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to resume session")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, session)
	}
}

// DeleteSession removes a session and all of its drinks.
func DeleteSession(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		if err := dbpkg.DeleteSession(db, user.ID, pathParam(ctx, "id")); err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(ctx, fasthttp.StatusNotFound, "session not found")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to delete session")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	}
}
