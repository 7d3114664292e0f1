package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"finhub-engine/repository"
)

const maxBodyBytes = 1 << 20

// calculator is what every cached endpoint needs: somewhere to memoize
// responses and somewhere to log.
type calculator struct {
	cache repository.CacheRepository
	log   logrus.FieldLogger
}

func cacheKey(route, scope string, body []byte) string {
	var b strings.Builder
	b.WriteString("finhub:")
	b.WriteString(route)
	if scope != "" {
		b.WriteByte(':')
		b.WriteString(scope)
	}
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(xxhash.Sum64(body), 16))
	return b.String()
}

// readJSONBody enforces the content type and size limit and returns the raw
// body. It writes the error response itself.
func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		log.WithError(err).Warn("error writing response")
	}
}

// encode codifica en un buffer para no escribir headers si falla.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// serveCalculation decodes In, runs compute and writes the result. Identical
// bodies within the same scope are answered from the cache; cache failures
// never fail the request.
func serveCalculation[In any, Out any](
	c calculator,
	w http.ResponseWriter,
	r *http.Request,
	route string,
	scope string,
	compute func(In) Out,
) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}

	log := c.log.WithField("route", route)
	key := cacheKey(route, scope, body)
	if cached, hit := c.cache.Get(r.Context(), key); hit {
		log.Debug("cache hit")
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, log, http.StatusOK, []byte(cached))
		return
	}

	var input In
	if err := json.Unmarshal(body, &input); err != nil {
		log.WithError(err).Info("error decoding request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	payload, err := encode(compute(input))
	if err != nil {
		log.WithError(err).Error("error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := c.cache.Set(r.Context(), key, string(payload)); err != nil {
		log.WithError(err).Warn("failed to cache response")
	}
	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, log, http.StatusOK, payload)
}
