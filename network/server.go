package network

import (
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json"

	"github.com/untrading/libnfr-go/market"
)

// NewHandler builds the JSON-RPC handler for a market. Methods are
// namespaced under Name, e.g. "nfr.Buy".
func NewHandler(m *market.Market) (http.Handler, error) {
	svc, err := NewService(m)
	if err != nil {
		return nil, err
	}

	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(svc, Name); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", server)
	return mux, nil
}

// NewServer builds an HTTP server serving the market's JSON-RPC API on addr.
func NewServer(addr string, m *market.Market) (*http.Server, error) {
	handler, err := NewHandler(m)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
