// Package statusapi is a small read-only HTTP introspection server over a
// Plan, grounded on server/endpoints.go's chi-based routing.
package statusapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kinstaky/logicroute/internal/routing"
)

// Server exposes a Plan's routing decisions over HTTP. It never mutates
// the plan it was built with.
type Server struct {
	router http.Handler
	plan   *routing.Plan
}

// New builds a Server over plan, routed the way logicc serve mounts it.
func New(plan *routing.Plan) *Server {
	s := &Server{plan: plan}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Get("/plan", s.handlePlan)
	r.Get("/front-ports", s.handleFrontPorts)
	s.router = r

	return s
}

// ServeHTTP lets Server be passed directly to http.ListenAndServe.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

type planView struct {
	FrontOutputs    []routing.PortSource `json:"front_outputs"`
	OrGates         int                  `json:"or_gates"`
	AndGates        int                  `json:"and_gates"`
	DivisorOrGates  int                  `json:"divisor_or_gates"`
	DivisorAndGates int                  `json:"divisor_and_gates"`
	Dividers        int                  `json:"dividers"`
	Clocks          []int                `json:"clocks_hz"`
	Scalers         []routing.PortSource `json:"scalers"`
	BackEnabled     bool                 `json:"back_enabled"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	clocks := make([]int, s.plan.ClockSize())
	for i := range clocks {
		clocks[i] = s.plan.ClockFrequency(i)
	}

	view := planView{
		FrontOutputs:    s.plan.FrontOutputs,
		OrGates:         s.plan.OrGateSize(),
		AndGates:        s.plan.AndGateSize(),
		DivisorOrGates:  s.plan.DivisorOrGateSize(),
		DivisorAndGates: s.plan.DivisorAndGateSize(),
		Dividers:        s.plan.DividerSize(),
		Clocks:          clocks,
		Scalers:         s.plan.Scalers,
		BackEnabled:     s.plan.BackEnable(),
	}
	writeJSON(w, view)
}

type frontPortView struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Input  bool   `json:"input"`
	Output bool   `json:"output"`
	Lemo   bool   `json:"lemo"`
}

func (s *Server) handleFrontPorts(w http.ResponseWriter, r *http.Request) {
	ports := make([]frontPortView, routing.FrontIoNum)
	groups := []byte{'A', 'B', 'C'}
	for i := range ports {
		group := groups[i/routing.FrontIoGroupSize]
		offset := i % routing.FrontIoGroupSize
		ports[i] = frontPortView{
			Index:  i,
			Name:   string(group) + strconv.Itoa(offset),
			Input:  s.plan.IsFrontInput(i),
			Output: s.plan.IsFrontOutput(i),
			Lemo:   s.plan.IsFrontLemo(i),
		}
	}
	writeJSON(w, ports)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
