package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

var notReady atomic.Bool

// SetReady flips the global readiness gate. Graceful shutdown marks the
// process not ready so load balancers drain it before connections close.
func SetReady(ready bool) {
	notReady.Store(!ready)
}

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	CheckRates() error
	CheckCoupons() error
	CheckCatalog() error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker Checker
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate and reference-data probes.
func (h Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if notReady.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	ratesStatus := "ok"
	if err := h.Checker.CheckRates(); err != nil {
		ratesStatus = err.Error()
	}
	couponsStatus := "ok"
	if err := h.Checker.CheckCoupons(); err != nil {
		couponsStatus = err.Error()
	}
	catalogStatus := "ok"
	if err := h.Checker.CheckCatalog(); err != nil {
		catalogStatus = err.Error()
	}
	status := map[string]string{
		"rates":   ratesStatus,
		"coupons": couponsStatus,
		"catalog": catalogStatus,
	}
	if ratesStatus != "ok" || couponsStatus != "ok" || catalogStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}
