package handlers

import (
	"sync"

	"backoffice/internal/catalog"
	"backoffice/internal/config"
	"backoffice/internal/upstream"
	"backoffice/internal/wizard"
)

// Deps wires the handler package to its collaborators. Handlers stay
// package-level funcs; the router installs the live set once at startup.
type Deps struct {
	Env      config.Env
	Upstream *upstream.Client
	Catalog  *catalog.Service
	Wizards  *wizard.Store
	Views    *ViewRegistry
}

var (
	depsMu sync.RWMutex
	live   Deps
)

// Configure installs the handler dependencies.
func Configure(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	live = d
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return live
}
