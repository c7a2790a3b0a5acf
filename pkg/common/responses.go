package common

import (
	"encoding/json"
	"net/http"
	"reflect"
)

// DataResponse wraps a single item
type DataResponse struct {
	Data interface{} `json:"data"`
}

// MessageResponse acknowledges a write
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON sends data as-is. Nil slices are sent as empty arrays.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice && v.IsNil() {
		data = reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondData sends {"data": ...}
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, DataResponse{Data: data})
}

// RespondMessage sends {"message": ...}
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}

// DecodeObject reads a JSON object body, keeping numbers as json.Number so
// integer and float fields can be told apart during schema validation.
func DecodeObject(r *http.Request, maxBytes int64) (map[string]interface{}, error) {
	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	defer body.Close()

	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var payload map[string]interface{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
