package middleware

import (
	"bytes"
	"strings"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"drinkwise/internal/auth"
	"drinkwise/internal/config"
	dbpkg "drinkwise/internal/db"
	httpctx "drinkwise/internal/http/ctx"
)

func unauthorized(ctx *fasthttp.RequestCtx, msg string) {
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"error":"` + msg + `"}`)
}

// BearerAuth validates signed bearer tokens, loads the account they were
// issued for and attaches it to the request. Requests without a valid
// identity never reach a handler.
func BearerAuth(db *gorm.DB, cfg *config.Config) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			header := ctx.Request.Header.Peek("Authorization")
			if len(header) == 0 {
				unauthorized(ctx, "missing Authorization header")
				return
			}

			const prefix = "Bearer "
			if !bytes.HasPrefix(header, []byte(prefix)) {
				unauthorized(ctx, "invalid Authorization header")
				return
			}

			token := strings.TrimSpace(string(header[len(prefix):]))
			if token == "" {
				unauthorized(ctx, "empty bearer token")
				return
			}

			userID, err := auth.ParseToken(cfg.JWTSecret, token)
			if err != nil {
				unauthorized(ctx, "invalid token")
				return
			}

			user, err := dbpkg.UserByID(db, userID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					unauthorized(ctx, "unknown user")
					return
				}
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetContentType("application/json")
				ctx.SetBodyString(`{"error":"database error"}`)
				return
			}

			httpctx.SetUserToken(ctx, token)
			httpctx.SetUser(ctx, user)
			next(ctx)
		}
	}
}
