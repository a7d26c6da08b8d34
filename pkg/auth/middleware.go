package auth

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
)

// RequireAuth is a chi middleware that lets Authenticated requests through with
// the operator in the request context and answers Anonymous ones with a
// 303 redirect to the login path.
//
// After this middleware, handlers can safely call auth.OperatorFromCtx(r.Context()).
func RequireAuth(gate *Gate, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := gate.Decide(r)
			if !d.Allow {
				log.DebugContext(r.Context(), "anonymous request redirected", "path", r.URL.Path)
				http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
				return
			}
			telemetry.SentrySetOperator(r.Context(), d.Operator)
			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), d.Operator)))
		})
	}
}
