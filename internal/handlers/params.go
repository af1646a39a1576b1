package handlers

import "net/http"

// getParam returns a path parameter value regardless of whether the router
// stores it with a leading colon (pat) or via the net/http PathValue API.
func getParam(r *http.Request, name string) string {
	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}
	return r.PathValue(name)
}
