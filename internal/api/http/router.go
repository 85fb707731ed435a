package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler, resolver SessionResolver) http.Handler {
	r := mux.NewRouter()
	r.Use(withMetrics)
	r.Use(withSession)
	r.Use(withProfile(resolver))
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("SouqEats starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
