package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type accessLog struct {
	Time      string `json:"time"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Millis    int64  `json:"ms"`
	Bytes     int    `json:"bytes"`
	RequestID string `json:"request_id"`
}

type loggingWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *loggingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggingWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

// Logger emits one JSON line per request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)

		line, _ := json.Marshal(accessLog{
			Time:      start.UTC().Format(time.RFC3339),
			Method:    r.Method,
			Path:      r.URL.Path,
			Status:    lw.status,
			Millis:    time.Since(start).Milliseconds(),
			Bytes:     lw.written,
			RequestID: GetRequestID(r.Context()),
		})
		log.Println(string(line))
	})
}
