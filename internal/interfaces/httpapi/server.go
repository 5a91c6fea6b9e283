package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/squadup/internal/platform/logging"
)

// RouterOptions carries the deployment-specific knobs of the router.
type RouterOptions struct {
	CORSAllowedOrigins []string
	// InternalJobToken guards /v1/internal routes. Empty disables them.
	InternalJobToken string
}

// NewRouter mounts every route and wraps the mux, outermost first, in
// tracing, request logging, CORS and panic recovery.
func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerCheckoutRoutes(mux, handler, verifier)
	registerPublicDomainRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)
	registerInternalJobRoutes(mux, handler, opts.InternalJobToken)

	var h http.Handler = mux
	h = recoverPanic(logger, h)
	h = CORS(opts.CORSAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// Aborted handlers must keep unwinding so net/http drops the connection.
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			ctx := r.Context()
			logger.ErrorContext(ctx, "panic recovered",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
			)
			writeInternalError(ctx, w)
		}()
		next.ServeHTTP(w, r)
	})
}
