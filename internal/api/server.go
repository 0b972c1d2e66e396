// Package api exposes the costmap clearing operations over HTTP. Each
// endpoint maps 1:1 to one clearing operation; the transport does no work
// of its own beyond parameter parsing and status mapping.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ROBOTIS-move/navigation2/internal/clearing"
	"github.com/ROBOTIS-move/navigation2/internal/httputil"
	"github.com/ROBOTIS-move/navigation2/internal/monitoring"
)

// Server serves the clearing endpoints for one costmap.
type Server struct {
	svc   *clearing.Service
	poses *clearing.StaticPoseProvider
}

// NewServer creates a server over the given clearing service. poses may be
// nil when pose updates are not served over HTTP.
func NewServer(svc *clearing.Service, poses *clearing.StaticPoseProvider) *Server {
	return &Server{
		svc:   svc,
		poses: poses,
	}
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to the Costmap Server!"))
}

// ServeMux returns the route table for the clearing endpoints.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/clear_entirely", s.clearEntirelyHandler)
	mux.HandleFunc("/clear_around_robot", s.clearAroundRobotHandler)
	mux.HandleFunc("/clear_except_region", s.clearExceptRegionHandler)
	mux.HandleFunc("/pose", s.poseHandler)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) clearEntirelyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	reqID := uuid.New().String()
	monitoring.Logf("[%s] received request to clear the costmap entirely", reqID)

	if err := s.svc.ClearEntirely(); err != nil {
		monitoring.Logf("[%s] clear entirely failed: %v", reqID, err)
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared", "request_id": reqID})
}

func (s *Server) clearAroundRobotHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	windowX, ok := parseFloatField(w, r, "window_size_x")
	if !ok {
		return
	}
	windowY, ok := parseFloatField(w, r, "window_size_y")
	if !ok {
		return
	}

	reqID := uuid.New().String()
	monitoring.Logf("[%s] received request to clear around robot (window %gx%g)", reqID, windowX, windowY)

	if err := s.svc.ClearAroundRobot(windowX, windowY); err != nil {
		monitoring.Logf("[%s] clear around robot failed: %v", reqID, err)
		writeClearError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared", "request_id": reqID})
}

func (s *Server) clearExceptRegionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	resetDistance, ok := parseFloatField(w, r, "reset_distance")
	if !ok {
		return
	}

	reqID := uuid.New().String()
	monitoring.Logf("[%s] received request to clear except a region (reset distance %g)", reqID, resetDistance)

	if err := s.svc.ClearExceptRegion(resetDistance); err != nil {
		monitoring.Logf("[%s] clear except region failed: %v", reqID, err)
		writeClearError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared", "request_id": reqID})
}

func (s *Server) poseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.poses == nil {
		httputil.InternalServerError(w, "pose updates not served by this instance")
		return
	}

	x, ok := parseFloatField(w, r, "x")
	if !ok {
		return
	}
	y, ok := parseFloatField(w, r, "y")
	if !ok {
		return
	}
	yaw, ok := parseFloatField(w, r, "yaw")
	if !ok {
		return
	}

	s.poses.SetPose(clearing.Pose{X: x, Y: y, Yaw: yaw})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "pose updated"})
}

// parseFloatField reads a required float form field, writing a 400 on
// failure.
func parseFloatField(w http.ResponseWriter, r *http.Request, field string) (float64, bool) {
	raw := r.FormValue(field)
	if raw == "" {
		httputil.BadRequest(w, "missing form field "+field)
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		httputil.BadRequest(w, "invalid "+field+": "+raw)
		return 0, false
	}
	return v, true
}

// writeClearError maps a clearing failure onto an HTTP status: pose
// unavailability is a 503 (the collaborator cannot serve right now, the
// map is untouched), anything else is a 500.
func writeClearError(w http.ResponseWriter, err error) {
	if errors.Is(err, clearing.ErrNoPose) {
		httputil.ServiceUnavailable(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}
