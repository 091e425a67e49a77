package server

import (
	"net/http"

	"goapworld/server/domain"
	"goapworld/server/handler"
)

func Route(room domain.Membership, opts ...domain.EndpointOption) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", handler.NewAcceptHandler(room, opts...))
	mux.Handle("/healthz", handler.NewHealthHandler())
	return mux
}
