package main

import (
	"fmt"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(cfg ServerConfig, services *Services) *http.Server {
	// Serve HTTP/2 without TLS alongside HTTP/1.1 for WebSocket upgrades
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(services.Gateway.Handler(), &http2.Server{}),
	}
}
