package providers

import (
	"net/http"
	"sidebard/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Put(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
	index  map[string]int
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(url, http.MethodGet, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(url, http.MethodPost, handler)
}

func (rp *RouterProvider) Put(url string, handler http.Handler) {
	rp.add(url, http.MethodPut, handler)
}

// add registers handler for method on url. Several methods on one url share a
// single route so the mux sees each pattern once.
func (rp *RouterProvider) add(url, method string, handler http.Handler) {
	if i, ok := rp.index[url]; ok {
		mh := rp.routes[i].Handler.(methodHandlers)
		mh[method] = handler
		return
	}
	rp.index[url] = len(rp.routes)
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandlers{method: handler},
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{index: make(map[string]int)}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return methodHandlers{method: handler}
}

type methodHandlers map[string]http.Handler

func (mh methodHandlers) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, ok := mh[r.Method]
	if !ok {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	handler.ServeHTTP(w, r)
}
