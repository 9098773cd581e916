package router

import (
	"net/http"

	"github.com/ferdiebergado/goexpress"
)

type GoexpressRouter struct {
	handler *goexpress.Router
}

var _ Router = (*GoexpressRouter)(nil)

func NewGoexpressRouter() *GoexpressRouter {
	return &GoexpressRouter{
		handler: goexpress.New(),
	}
}

func (r *GoexpressRouter) Get(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handler.Get(pattern, handler, middlewares...)
}

func (r *GoexpressRouter) Post(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handler.Post(pattern, handler, middlewares...)
}

func (r *GoexpressRouter) Put(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handler.Put(pattern, handler, middlewares...)
}

func (r *GoexpressRouter) Patch(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handler.Patch(pattern, handler, middlewares...)
}

func (r *GoexpressRouter) Delete(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handler.Delete(pattern, handler, middlewares...)
}

func (r *GoexpressRouter) Options(pattern string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.handler.Options(pattern, handler, middlewares...)
}

func (r *GoexpressRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *GoexpressRouter) Use(middleware Middleware) {
	r.handler.Use(middleware)
}

// Group shares the parent's mux, so grouped routes are served by the parent router.
func (r *GoexpressRouter) Group(prefix string, fn func(r Router), middlewares ...Middleware) {
	gr := &GoexpressRouter{
		handler: goexpress.New(),
	}
	gr.handler.SetPrefix(prefix)
	gr.handler.SetMux(r.handler.Mux())

	inherited := r.handler.Middlewares()
	mws := make([]Middleware, 0, len(inherited)+len(middlewares))
	mws = append(mws, inherited...)
	mws = append(mws, middlewares...)
	gr.handler.SetMiddlewares(mws)

	fn(gr)
}
