package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/hevy2notion/internal/syncer"
)

// Response bodies of the sync endpoints.
const (
	MsgSynced = "Notion updated successfully with Hevy data"
	// MsgSkipped is answered with 200: an already synced workout is not a
	// failure, unlike the 500 the express handler sent with the same body.
	MsgSkipped      = "Notion not updated with Hevy data due to not having new workouts"
	MsgNoWorkouts   = "Notion not updated, Hevy returned no workouts"
	MsgFetchFailed  = "Error fetching Hevy data"
	MsgStateCleared = "Last workout ID cleared successfully"
)

// reply is the {statusCode, body} envelope returned by the sync endpoints.
type reply struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type stateResponse struct {
	LastWorkoutID string `json:"last_workout_id"`
	Present       bool   `json:"present"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdateNotion(w http.ResponseWriter, r *http.Request) {
	res, err := s.syncer.Run(r.Context())
	if err != nil {
		if errors.Is(err, syncer.ErrFetch) {
			writeReply(w, http.StatusInternalServerError, MsgFetchFailed)
			return
		}
		writeReply(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch res.Status {
	case syncer.StatusSkipped:
		writeReply(w, http.StatusOK, MsgSkipped)
	case syncer.StatusNoWorkouts:
		writeReply(w, http.StatusOK, MsgNoWorkouts)
	default:
		if err := res.Err(); err != nil {
			writeReply(w, http.StatusBadGateway, err.Error())
			return
		}
		writeReply(w, http.StatusOK, MsgSynced)
	}
}

func (s *Server) handleClearLastWorkoutID(w http.ResponseWriter, r *http.Request) {
	if err := s.syncer.Reset(r.Context()); err != nil {
		s.log.Error("clear sync state", "error", err)
		writeReply(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeReply(w, http.StatusOK, MsgStateCleared)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id, ok, err := s.syncer.LastWorkoutID(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{LastWorkoutID: id, Present: ok})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := s.syncer.Preview(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, syncer.ErrFetch) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no workouts"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeReply(w http.ResponseWriter, status int, body string) {
	writeJSON(w, status, reply{StatusCode: status, Body: body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
