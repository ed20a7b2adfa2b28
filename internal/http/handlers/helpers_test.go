package handlers

import (
	"encoding/json"
	"net/http/httptest"
)

func unmarshalBody(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}
