// Package permissions holds the route table the RBAC middleware checks. Each
// entry names a chi route pattern and method together with the staff levels
// allowed to call it. Entries marked skip are public, like login and the guest
// booking endpoints.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether level is one of the listed levels.
func (p Permission) Allows(level string) bool {
	return slices.Contains(p.Permissions, level)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func routeKey(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the entry for a route pattern and method, or the zero
// Permission when the route is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index != nil {
		if idx, ok := r.index[routeKey(path, method)]; ok {
			return r.Endpoints[idx]
		}

		return Permission{}
	}

	idx := slices.IndexFunc(r.Endpoints, func(p Permission) bool {
		return p.Path == path && strings.EqualFold(p.Method, method)
	})
	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Parse decodes a route table. It rejects entries without a path or with an
// unknown method, and routes listed twice.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[string]int, len(data.Endpoints))

	for idx, endpoint := range data.Endpoints {
		if endpoint.Path == "" {
			return nil, fmt.Errorf("permission %d has no path", idx)
		}

		switch strings.ToUpper(endpoint.Method) {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return nil, fmt.Errorf("permission %s has unsupported method %q", endpoint.Path, endpoint.Method)
		}

		key := routeKey(endpoint.Path, endpoint.Method)
		if _, dup := data.index[key]; dup {
			return nil, fmt.Errorf("permission %s is listed twice", key)
		}

		data.index[key] = idx
	}

	return &data, nil
}

// Get loads the embedded table. It returns nil on a broken table, which makes
// RBAC deny every protected route.
func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("embedded permissions are invalid")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("permissions loaded")

	return data
}
