// Package gateway is the single public entrypoint. It terminates CORS,
// matches the request path against the route table and relays the
// request to the owning backend. It never inspects tokens or bodies;
// authentication and validation belong to the services behind it.
package gateway

import (
	"io"
	"net/http"
	"strings"

	"finhub/internal/config"
	"finhub/internal/log"
	"finhub/internal/web"
)

// route maps a path prefix to one backend. stripPrefix routes rewrite
// the matched prefix away so resource services see family-relative
// paths; the rest forward the path untouched. bare reports whether the
// prefix with no trailing segment is itself routable.
type route struct {
	prefix      string
	target      string
	stripPrefix bool
	bare        bool
}

type Gateway struct {
	client *http.Client
	routes []route
	logger *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Gateway {
	return &Gateway{
		client: &http.Client{Timeout: cfg.ProxyTimeout},
		routes: []route{
			{prefix: "/api/accounts", target: cfg.AccountServiceURL, stripPrefix: true, bare: true},
			{prefix: "/api/transactions", target: cfg.TransactionServiceURL, stripPrefix: true, bare: true},
			{prefix: "/api/categories", target: cfg.CategoryServiceURL, stripPrefix: true, bare: true},
			{prefix: "/api/summary", target: cfg.AnalyticsServiceURL, bare: true},
			// Subscriptions serve the shared family contract at the
			// service root, like the other resource families.
			{prefix: "/api/subscriptions", target: cfg.SubscriptionServiceURL, stripPrefix: true, bare: true},
			{prefix: "/api/plaid", target: cfg.PlaidServiceURL},
		},
		logger: logger,
	}
}

// Handler assembles the gateway chain: request logging, CORS, then the
// route table.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", web.HealthHandler("gateway"))
	mux.HandleFunc("/", g.dispatch)

	return log.Middleware(g.logger)(cors(mux))
}

func (g *Gateway) dispatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	for _, rt := range g.routes {
		if rt.bare && path == rt.prefix {
			backendPath := rt.prefix
			if rt.stripPrefix {
				backendPath = "/"
			}
			g.forward(w, r, rt.target, backendPath)
			return
		}
		if strings.HasPrefix(path, rt.prefix+"/") {
			backendPath := path
			if rt.stripPrefix {
				backendPath = strings.TrimPrefix(path, rt.prefix)
			}
			g.forward(w, r, rt.target, backendPath)
			return
		}
	}
	web.Fail(w, http.StatusNotFound, "Not found")
}

// forward relays the request to target. Only the method, the body, the
// Authorization header and the query string cross the boundary; every
// relayed request is declared application/json.
func (g *Gateway) forward(w http.ResponseWriter, r *http.Request, target, path string) {
	url := target + path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	body := r.Body
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		body = nil
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, body)
	if err != nil {
		g.logger.ErrorContext(r.Context(), "Proxy request build failed",
			log.FieldError, err, "target", target, "path", path)
		web.Fail(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if authz := r.Header.Get("Authorization"); authz != "" {
		req.Header.Set("Authorization", authz)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.WarnContext(r.Context(), "Backend unreachable",
			log.FieldError, err, "target", target, "path", path)
		web.Fail(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
