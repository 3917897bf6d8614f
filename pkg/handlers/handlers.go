// Package handlers provides HTTP response utilities.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"os"
	"time"
)

// RespondError logs the error and writes it as a one-line plain text body.
// Server errors are logged at error level, client errors at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

// RespondFile streams f as a download named filename.
// The Content-Disposition header marks the response as an attachment.
func RespondFile(w http.ResponseWriter, r *http.Request, f *os.File, filename, contentType string) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Cache-Control", "no-store")

	http.ServeContent(w, r, filename, time.Time{}, f)
}
