package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type Envelope map[string]any

const maxBodyBytes = 32 << 20 // audio payloads are base64 blobs, allow a generous body

func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return fmt.Errorf("body must not exceed %d bytes", maxBytesError.Limit)
		}

		return fmt.Errorf("malformed JSON body: %w", err)
	}

	return nil
}

func WriteJSON(w http.ResponseWriter, status int, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)

	return err
}
