package analytics

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"finhub/internal/auth"
	"finhub/internal/core"
	"finhub/internal/log"
	"finhub/internal/web"
)

// Handler mounts the summary endpoint. The health probe stays outside
// the auth middleware; everything under /api requires a bearer token.
func Handler(engine *Engine, resolver auth.Resolver, logger *log.Logger) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/summary", func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.FromContext(r.Context())
		if !ok {
			web.RespondError(w, r, core.ErrUnauthorized)
			return
		}

		filter, err := parseFilter(r.URL.Query())
		if err != nil {
			web.RespondError(w, r, err)
			return
		}

		summary, err := engine.Summarize(r.Context(), principal.ID, filter)
		if err != nil {
			web.RespondError(w, r, err)
			return
		}
		web.Respond(w, http.StatusOK, summary)
	})

	mux := http.NewServeMux()
	mux.Handle("GET /health", web.HealthHandler("analytics-service"))
	mux.Handle("/api/", auth.Middleware(resolver)(api))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		web.Fail(w, http.StatusNotFound, "Not found")
	})

	return log.Middleware(logger)(mux)
}

func parseFilter(q url.Values) (Filter, error) {
	var f Filter
	f.AccountID = strings.TrimSpace(q.Get("accountId"))

	if raw := q.Get("from"); raw != "" {
		from, err := core.ParseDate(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: invalid from date", core.ErrValidation)
		}
		f.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := core.ParseDate(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: invalid to date", core.ErrValidation)
		}
		f.To = to
	}
	return f, nil
}
