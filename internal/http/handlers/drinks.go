package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"drinkwise/internal/catalog"
	dbpkg "drinkwise/internal/db"
	"drinkwise/internal/stats"
)

type createDrinkRequest struct {
	SessionID  string         `json:"sessionId"`
	Units      float64        `json:"units"`
	BuzzLevel  float64        `json:"buzzLevel"`
	DrinkName  string         `json:"drinkName,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type updateDrinkRequest struct {
	Units     float64 `json:"units"`
	BuzzLevel float64 `json:"buzzLevel"`
}

// SessionDrinks returns a session's drinks in ascending timestamp order.
func SessionDrinks(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		drinks, err := dbpkg.DrinksBySession(db, user.ID, pathParam(ctx, "sessionId"))
		if err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to fetch drinks")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, drinks)
	}
}

// CreateDrink logs a drink into one of the caller's active sessions.
// Buzz level is clamped to [0,10]; non-positive units are rejected.
func CreateDrink(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		var req createDrinkRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			jsonError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.SessionID == "" {
			jsonError(ctx, fasthttp.StatusBadRequest, "sessionId required")
			return
		}
		if !stats.ValidUnits(req.Units) {
			jsonError(ctx, fasthttp.StatusBadRequest, "units must be greater than zero")
			return
		}

		session, err := dbpkg.SessionByID(db, user.ID, req.SessionID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(ctx, fasthttp.StatusNotFound, "session not found")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to fetch session")
			return
		}
		if !session.IsActive {
			jsonError(ctx, fasthttp.StatusConflict, "session is not active")
			return
		}

		attrs := datatypes.JSONMap{}
		for k, v := range req.Attributes {
			attrs[k] = v
		}
		// Fill serving detail from the catalog when the label matches
		// and the client sent nothing of its own.
		if def := catalog.Lookup(req.DrinkName); def != nil && len(attrs) == 0 {
			attrs["volume"] = def.Volume
			attrs["abv"] = def.ABV
		}

		drink := &dbpkg.Drink{
			ID:         uuid.NewString(),
			SessionID:  session.ID,
			UserID:     user.ID,
			Units:      req.Units,
			BuzzLevel:  stats.ClampBuzz(req.BuzzLevel),
			DrinkName:  req.DrinkName,
			Attributes: attrs,
			Timestamp:  time.Now(),
		}

		if err := dbpkg.CreateDrink(db, drink); err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to create drink")
			return
		}

		CountDrinkLogged(drink.Units)
		jsonResponse(ctx, fasthttp.StatusCreated, drink)
	}
}

// UpdateDrink changes units and buzz level of an owned drink.
func UpdateDrink(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		var req updateDrinkRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			jsonError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if !stats.ValidUnits(req.Units) {
			jsonError(ctx, fasthttp.StatusBadRequest, "units must be greater than zero")
			return
		}

		drink, err := dbpkg.UpdateDrink(db, user.ID, pathParam(ctx, "id"), req.Units, stats.ClampBuzz(req.BuzzLevel))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(ctx, fasthttp.StatusNotFound, "drink not found")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to update drink")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, drink)
	}
}

// DeleteDrink removes a single owned drink.
func DeleteDrink(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		if err := dbpkg.DeleteDrink(db, user.ID, pathParam(ctx, "id")); err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(ctx, fasthttp.StatusNotFound, "drink not found")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to delete drink")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	}
}

// Catalog returns the built-in drink reference list.
func Catalog() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		jsonResponse(ctx, fasthttp.StatusOK, catalog.Categories())
	}
}
