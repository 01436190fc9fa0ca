package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
)

//nolint:errcheck,gosec,contextcheck // ignore error
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				//nolint:err113,errorlint // this must compare directly
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				stack := debug.Stack()
				if frames := internalFrames(stack); len(frames) > 0 {
					slog.ErrorContext(r.Context(), "panic on the server", "because", rvr, "stack", frames)
				} else {
					slog.ErrorContext(r.Context(), "panic on the server trace debug", "because", rvr, "stack", string(stack))
				}

				if r.Header.Get("Connection") == "Upgrade" {
					return
				}
				writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// internalFrames keeps the "internal/<pkg>/<file>.go:<line>" locations of a
// debug.Stack dump.
func internalFrames(stack []byte) []string {
	var frames []string
	for line := range strings.SplitSeq(string(stack), "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, "/internal/")
		if idx < 0 || !strings.Contains(line, ".go:") {
			continue
		}
		loc, _, _ := strings.Cut(line[idx+1:], " ")
		frames = append(frames, loc)
	}
	return frames
}
