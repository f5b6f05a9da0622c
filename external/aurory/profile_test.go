package aurory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
)

func TestProfileClientResolvesAvatar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/p-42" {
			t.Errorf("path = %q, want /players/p-42", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"p-42","name":"Vex","avatarUrl":"https://cdn.example/v.png"}`))
	}))
	defer server.Close()

	client := NewProfileClient(ProfileClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	if got := client.AvatarURL(context.Background(), "p-42"); got != "https://cdn.example/v.png" {
		t.Fatalf("avatar = %q", got)
	}
}

func TestProfileClientFallsBackToDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/players/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/players/blank":
			_, _ = w.Write([]byte(`{"id":"blank","name":"Blank","avatarUrl":""}`))
		}
	}))
	defer server.Close()

	client := NewProfileClient(ProfileClientConfig{
		BaseURL:       server.URL,
		DefaultAvatar: "https://cdn.example/default.png",
		Logger:        logging.NewNop(),
	})

	cases := []string{"missing", "blank", ""}
	for _, playerID := range cases {
		if got := client.AvatarURL(context.Background(), playerID); got != "https://cdn.example/default.png" {
			t.Errorf("AvatarURL(%q) = %q, want default", playerID, got)
		}
	}
}
