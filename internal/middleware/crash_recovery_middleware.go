package hytech_middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hytech-racing/car-search-webserver/internal/logging"
	"go.uber.org/zap"
)

// CrashRecovery recovers panics from the rest of the chain, writes a crash file
// with the last recorded log lines and answers with a JSON 500.
func CrashRecovery(recorder *logging.CrashRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger := logging.FromContext(r.Context())
				logger.Error("panic recovered",
					zap.Any("panic", rvr),
					zap.Stack("stacktrace"),
				)

				if recorder != nil {
					crashFile, err := recorder.WriteCrashFile(rvr)
					if err != nil {
						logger.Error("could not write crash file", zap.Error(err))
					} else {
						logger.Warn("crash file written", zap.String("path", crashFile))
					}
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"data":    make([]interface{}, 0),
					"message": "internal server error",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
