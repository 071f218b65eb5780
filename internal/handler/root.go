package handler

import "net/http"

const greeting = "hello world, from a simple authentication service"

// HandleRoot handles GET / requests.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(greeting))
}
