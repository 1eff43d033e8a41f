package web

import (
	"syscall"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements. Errors
// returned here are turned into HTTP responses by the framework.
type Handler func(c *Context) error

// Middleware wraps a Handler with additional behaviour.
type Middleware func(Handler) Handler

// App is the entrypoint for the web application. It wraps a gin engine so
// routes can be registered either through the error-aware helpers below or
// directly through gin when raw access to the writer is needed.
type App struct {
	*gin.Engine
	shutdown chan struct{}
}

func NewApp() *App {
	return &App{
		Engine:   gin.New(),
		shutdown: make(chan struct{}),
	}
}

// SignalShutdown is used to gracefully shut down the app when an integrity
// issue is identified.
func (a *App) SignalShutdown() {
	close(a.shutdown)
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	// Wrap the handler with its middleware chain, innermost first.
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}

	h := func(c *gin.Context) {
		ctx := &Context{
			Context: c,
			Ctx:     c.Request.Context(),
		}

		if err := handler(ctx); err != nil {
			_ = ctx.RespondError(err)
		}
	}

	a.Engine.Handle(method, path, h)
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle("GET", path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle("POST", path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle("PUT", path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle("PATCH", path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle("DELETE", path, handler, mw...)
}

func (a *App) Head(path string, handler Handler, mw ...Middleware) {
	a.handle("HEAD", path, handler, mw...)
}
