package httpapi

import "net/http"

// NewMux registers every route; Handler wraps it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	lh := LeadsHandler{
		Runner:    d.Runner,
		Limiter:   d.Limiter,
		Validator: d.Validator,
		Hub:       d.Hub,
	}
	mux.HandleFunc("/api/generate-leads", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Generate,
	}))
	mux.HandleFunc("/api/leads/export", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Export,
	}))

	hh := HealthHandler{SourceStatus: d.SourceStatus}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		OnConfig:    d.OnConfig,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

func Handler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog, Cors)
}
