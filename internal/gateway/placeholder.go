package gateway

import "net/http"

// placeholderSVG is the fixed inline graphic served when an image cannot be
// fetched and has no cached copy.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200" viewBox="0 0 200 200"><rect width="200" height="200" fill="#f0f0f0"/><text x="100" y="100" text-anchor="middle" dy="0.3em" font-family="Arial" font-size="14" fill="#666">Image unavailable</text></svg>`

func writePlaceholderImage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(placeholderSVG))
}
