package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibreTranslateClient_Translate(t *testing.T) {
	var body libreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(libreResponse{TranslatedText: "Привет"})
	}))
	defer srv.Close()

	c := NewLibreTranslateClient(srv.URL+"/", "secret", time.Second, quietLogger())
	out, err := c.Translate(context.Background(), "Hello", "auto", "ru")
	require.NoError(t, err)
	assert.Equal(t, "Привет", out)
	assert.Equal(t, libreRequest{Q: "Hello", Source: "auto", Target: "ru", Format: "text", APIKey: "secret"}, body)
}

func TestLibreTranslateClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "error field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(libreResponse{Error: "target not supported"})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewLibreTranslateClient(srv.URL, "", time.Second, quietLogger())
			_, err := c.Translate(context.Background(), "Hello", "en", "zh-cn")
			assert.Error(t, err)
		})
	}
}

func TestLibreTranslateClient_CheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/languages" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"code":"en"}]`))
	}))
	defer srv.Close()

	c := NewLibreTranslateClient(srv.URL, "", time.Second, quietLogger())
	assert.NoError(t, c.CheckHealth(context.Background()))
	assert.Equal(t, "zh", libreCode("zh-CN"))
}
