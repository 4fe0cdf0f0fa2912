package router

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}
)

// Route associa método e caminho a um handler, com os guardas de perfil próprios da rota
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // aplicados na ordem da lista
}

type Router struct {
	router     *httprouter.Router
	registered map[string]struct{}
}

type ConfigRouter func(router *Router)

// New monta o router com respostas JSON para rota inexistente e método não suportado
func New(configs ...ConfigRouter) Router {
	r := &Router{
		router:     httprouter.New(),
		registered: map[string]struct{}{},
	}

	r.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrUnknownEntity, "Recurso não encontrado: "+req.URL.Path, nil)
	})
	r.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não suportado: "+req.Method, nil)
	})
	// preflight é respondido pelo middleware de CORS
	r.router.HandleOPTIONS = false

	for _, config := range configs {
		config(r)
	}

	return *r
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes registra as rotas; a mesma combinação de método e caminho não pode aparecer duas vezes
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		key := route.Method + " " + route.Path
		if _, dup := r.registered[key]; dup {
			panic(fmt.Sprintf("rota registrada em duplicidade: %s", key))
		}
		r.registered[key] = struct{}{}

		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}

// Routes lista as rotas registradas em ordem alfabética, usado pelo log de inicialização
func (r Router) Routes() []string {
	out := make([]string, 0, len(r.registered))
	for key := range r.registered {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
