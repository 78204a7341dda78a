package middleware

import (
	"github.com/valyala/fasthttp"
)

const (
	allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowedHeaders = "Content-Type, X-Request-ID"
)

// CORS decorates responses with cross-origin headers for the configured
// client origin. An empty origin allows any caller, which suits local
// development and single-tenant deployments.
func CORS(origin string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			setCORSHeaders(ctx, origin)
			next(ctx)
		}
	}
}

// CORSPreflight answers OPTIONS requests. Wire it as the router's global
// OPTIONS handler.
func CORSPreflight(origin string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		setCORSHeaders(ctx, origin)
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	}
}

func setCORSHeaders(ctx *fasthttp.RequestCtx, origin string) {
	if origin == "" {
		origin = "*"
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	ctx.Response.Header.Set("Access-Control-Allow-Methods", allowedMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", allowedHeaders)
}
