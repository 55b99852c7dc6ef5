package handler

import (
	"net/http"
	"strings"
)

const berthsPrefix = "/api/v1/berths"

// RouteLabel turns a request path into the route pattern it was served by,
// keeping berth names out of metric labels.
func RouteLabel(r *http.Request) string {
	path := r.URL.Path

	switch path {
	case "/health", "/ready", "/metrics", berthsPrefix, berthsPrefix + "/resolve":
		return path
	}

	rest, ok := strings.CutPrefix(path, berthsPrefix+"/name/")
	if !ok || rest == "" {
		return "other"
	}

	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1:
		return berthsPrefix + "/name/:name"
	case len(parts) == 2 && parts[1] == "schedule":
		return berthsPrefix + "/name/:name/schedule"
	case len(parts) == 3 && parts[1] == "schedule" && parts[2] == "export":
		return berthsPrefix + "/name/:name/schedule/export"
	default:
		return "other"
	}
}
