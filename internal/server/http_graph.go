package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/discovery/internal/events"
	"github.com/alfredjeanlab/discovery/internal/graph"
	"github.com/alfredjeanlab/discovery/internal/model"
)

// handleListProjects handles GET /v1/projects.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.logger.Error("list projects failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"total":    len(projects),
	})
}

// handleGetProjectGraph handles GET /v1/projects/{id}/graph.
// Builds the relationship graph of one project for visualization.
func (s *Server) handleGetProjectGraph(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := s.builder.Build(r.Context(), projectID)
	if errors.Is(err, graph.ErrProjectNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("project %d not found", projectID))
		return
	}
	if err != nil {
		s.logger.Error("build graph failed",
			"project_id", projectID,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
		writeError(w, http.StatusInternalServerError, "failed to build graph")
		return
	}

	s.publish(r.Context(), events.TopicGraphBuilt, events.GraphBuilt{
		ProjectID: projectID,
		Stats:     data.Stats,
	})
	writeJSON(w, http.StatusOK, data)
}

// parseProjectID parses a path segment as a positive project id.
func parseProjectID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", raw)
	}
	return id, nil
}
