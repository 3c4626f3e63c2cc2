// Package v1 exposes the planning API over plain JSON HTTP.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/voyago/tripdesk/agents"
	logcontext "github.com/voyago/tripdesk/context"
	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/trip"
)

// Server handles the v1 planning routes
type Server struct {
	Planner agents.Planner
	Agent   *agents.TripAgent
}

// Router builds the v1 route table
func (s *Server) Router() *httprouter.Router {
	router := httprouter.New()
	router.POST("/v1/itineraries", s.withRequestID(s.planItinerary))
	router.POST("/v1/chat", s.withRequestID(s.chat))
	router.GET("/healthz", s.withRequestID(s.health))
	return router
}

// withRequestID stamps every request with an ID for log correlation
func (s *Server) withRequestID(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = logcontext.NewRequestID()
		}
		ctx := logcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-Id", requestID)
		h(w, r.WithContext(ctx), ps)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type itineraryResponse struct {
	Itinerary *trip.Itinerary `json:"itinerary"`
	Markdown  string          `json:"markdown"`
	Complete  bool            `json:"complete"`
}

func (s *Server) planItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req trip.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	log.Infof(ctx, "planning request %s-%s", req.Origin, req.Destination)

	it, err := s.Planner.Plan(ctx, req)
	if err != nil {
		var pfe *agents.PlanningFailedError
		if errors.As(err, &pfe) {
			log.Errorf(ctx, "planning failed: %v", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		var ire *trip.InvalidRequestError
		if errors.As(err, &ire) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		log.Errorf(ctx, "planning error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, itineraryResponse{
		Itinerary: it,
		Markdown:  agents.FormatItinerary(it),
		Complete:  it.Complete(),
	})
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Answer   string           `json:"answer"`
	TripData *agents.TripData `json:"trip_data,omitempty"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if s.Agent == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no language model configured"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	log.Infof(ctx, "chat request: %s", req.Query)

	answer, data, err := s.Agent.Run(ctx, req.Query)
	if err != nil {
		log.Errorf(ctx, "chat failed: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer, TripData: data})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
