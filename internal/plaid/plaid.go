// Package plaid serves the bank-linking token exchange. Tokens are
// sandbox-shaped placeholders minted locally; the service exists so the
// gateway contract and the frontend flow are complete end to end.
package plaid

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"finhub/internal/auth"
	"finhub/internal/log"
	"finhub/internal/web"
)

type linkToken struct {
	LinkToken  string    `json:"link_token"`
	Expiration time.Time `json:"expiration"`
}

type accessToken struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// Handler mounts the two token endpoints behind bearer auth.
func Handler(resolver auth.Resolver, logger *log.Logger) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /api/plaid/create-link-token", func(w http.ResponseWriter, r *http.Request) {
		token := linkToken{
			LinkToken:  "link-sandbox-" + uuid.NewString(),
			Expiration: time.Now().UTC().Add(4 * time.Hour),
		}
		web.Respond(w, http.StatusOK, token)
	})

	api.HandleFunc("POST /api/plaid/exchange-public-token", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PublicToken string `json:"public_token"`
		}
		if err := web.DecodeJSON(r, &body); err != nil {
			web.RespondError(w, r, err)
			return
		}
		if body.PublicToken == "" {
			web.Fail(w, http.StatusBadRequest, "public_token is required")
			return
		}
		token := accessToken{
			AccessToken: "access-sandbox-" + uuid.NewString(),
			ItemID:      uuid.NewString(),
		}
		web.Respond(w, http.StatusOK, token)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", web.HealthHandler("plaid-service"))
	mux.Handle("/api/", auth.Middleware(resolver)(api))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		web.Fail(w, http.StatusNotFound, "Not found")
	})

	return log.Middleware(logger)(mux)
}
