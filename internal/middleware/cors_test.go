package middleware

import (
	"testing"

	"github.com/valyala/fasthttp"
)

func TestCORSHeaders(t *testing.T) {
	var called bool
	handler := CORS("http://localhost:5173")(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	var ctx fasthttp.RequestCtx
	handler(&ctx)

	if !called {
		t.Fatal("wrapped handler not invoked")
	}
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")); got == "" {
		t.Error("Allow-Methods header missing")
	}
}

func TestCORSDefaultOrigin(t *testing.T) {
	handler := CORS("")(func(ctx *fasthttp.RequestCtx) {})

	var ctx fasthttp.RequestCtx
	handler(&ctx)

	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	var ctx fasthttp.RequestCtx
	CORSPreflight("http://localhost:5173")(&ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusNoContent {
		t.Errorf("status = %d, want 204", ctx.Response.StatusCode())
	}
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
