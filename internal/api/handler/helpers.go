package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// pathID parses the {id} path variable
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewInvalidRequestError("invalid id")
	}
	return id, nil
}

// siteIDFilter parses the optional ?site_id= query parameter.
// Absent means all sites.
func siteIDFilter(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("site_id")
	if raw == "" {
		return storage.AllSites, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewInvalidRequestError("invalid site_id")
	}
	return id, nil
}
