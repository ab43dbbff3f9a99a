package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes payload as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"something went wrong"}`))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondError writes a JSON error body of the form {"message": "..."}.
// Every error the API returns uses this shape.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

// RespondMessage writes a 2xx JSON body of the form {"message": "..."}.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}
