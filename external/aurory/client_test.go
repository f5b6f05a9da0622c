package aurory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/resilience"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

func newTestClient(t *testing.T, baseURL string, descending bool) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		BaseURL:    baseURL,
		Descending: descending,
		PageDelay:  0,
		Logger:     logging.NewNop(),
	})
}

func drain(t *testing.T, it usecase.MatchIterator) []usecase.MatchEvent {
	t.Helper()
	var events []usecase.MatchEvent
	for {
		event, ok := it.Next(context.Background())
		if !ok {
			return events
		}
		events = append(events, event)
	}
}

func eventJSON(createdAt time.Time, result, opponentID, opponentName string) string {
	return fmt.Sprintf(`{"createdAt":%q,"result":%q,"opponent":{"id":%q,"name":%q},"eventTag":"season-3"}`,
		createdAt.UTC().Format(time.RFC3339), result, opponentID, opponentName)
}

func TestMatchesPaginatesUntilTotalPages(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("competitor"); got != "Sam" {
			t.Errorf("competitor query = %q, want Sam", got)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		switch page {
		case 1:
			fmt.Fprintf(w, `{"data":[%s,%s],"currentPage":1,"totalPages":2,"totalElements":3}`,
				eventJSON(base.Add(2*time.Hour), "win", "p-9", "Drake"),
				eventJSON(base.Add(time.Hour), "loss", "p-4", "Mira"))
		case 2:
			fmt.Fprintf(w, `{"data":[%s],"currentPage":2,"totalPages":2,"totalElements":3}`,
				eventJSON(base.Add(30*time.Minute), "win", "p-7", "Okoye"))
		default:
			t.Errorf("unexpected page request %d", page)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	events := drain(t, client.Matches("Sam", base))

	it := client.Matches("Sam", base)
	_ = drain(t, it)
	if err := it.Err(); err != nil {
		t.Fatalf("iterator error = %v, want nil", err)
	}

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].OpponentName != "Drake" || events[0].Result != match.ResultWin {
		t.Errorf("first event = %+v", events[0])
	}
	if events[2].OpponentName != "Okoye" {
		t.Errorf("last event opponent = %q, want Okoye", events[2].OpponentName)
	}
}

func TestMatchesSkipsCPUAndMalformedEntries(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[%s,%s,%s,%s],"currentPage":1,"totalPages":1,"totalElements":4}`,
			eventJSON(base.Add(time.Hour), "win", "CPU", "CPU"),
			eventJSON(base.Add(2*time.Hour), "draw", "p-1", "Vex"),
			`{"createdAt":"not-a-time","result":"win","opponent":{"id":"p-2","name":"Nia"}}`,
			eventJSON(base.Add(3*time.Hour), "loss", "p-3", "Rio"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	it := client.Matches("Sam", base)
	events := drain(t, it)

	if len(events) != 1 || events[0].OpponentName != "Rio" {
		t.Fatalf("events = %+v, want only Rio", events)
	}
	cpu, malformed := it.Skipped()
	if cpu != 1 {
		t.Errorf("cpu skipped = %d, want 1", cpu)
	}
	if malformed != 2 {
		t.Errorf("malformed skipped = %d, want 2", malformed)
	}
}

func TestMatchesFiltersEventsAtOrBeforeSince(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[%s,%s,%s],"currentPage":1,"totalPages":1,"totalElements":3}`,
			eventJSON(base.Add(time.Hour), "win", "p-1", "Vex"),
			eventJSON(base, "win", "p-2", "Nia"),
			eventJSON(base.Add(-time.Hour), "loss", "p-3", "Rio"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	events := drain(t, client.Matches("Sam", base))

	if len(events) != 1 || events[0].OpponentName != "Vex" {
		t.Fatalf("events = %+v, want only Vex", events)
	}
}

func TestMatchesDescendingStopsAtStalePage(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	var pagesServed int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		switch page {
		case 1:
			fmt.Fprintf(w, `{"data":[%s],"currentPage":1,"totalPages":50,"totalElements":50}`,
				eventJSON(base.Add(time.Hour), "win", "p-1", "Vex"))
		case 2:
			fmt.Fprintf(w, `{"data":[%s],"currentPage":2,"totalPages":50,"totalElements":50}`,
				eventJSON(base.Add(-time.Hour), "win", "p-2", "Nia"))
		default:
			t.Errorf("fetched page %d past the stale boundary", page)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, true)
	events := drain(t, client.Matches("Sam", base))

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if pagesServed != 2 {
		t.Errorf("pages served = %d, want 2", pagesServed)
	}
}

func TestMatchesTruncatesOnPageFailure(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 1 {
			fmt.Fprintf(w, `{"data":[%s],"currentPage":1,"totalPages":3,"totalElements":3}`,
				eventJSON(base.Add(time.Hour), "win", "p-1", "Vex"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	it := client.Matches("Sam", base)
	events := drain(t, it)

	if len(events) != 1 {
		t.Fatalf("got %d events before truncation, want 1", len(events))
	}
	if it.Err() == nil {
		t.Fatal("expected a truncation error")
	}
}

func TestMatchesRetriesTransientStatus(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	var attempts int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `{"data":[%s],"currentPage":1,"totalPages":1,"totalElements":1}`,
			eventJSON(base.Add(time.Hour), "win", "p-1", "Vex"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
		PageDelay:  0,
		Logger:     logging.NewNop(),
	})
	it := client.Matches("Sam", base)
	events := drain(t, it)

	if err := it.Err(); err != nil {
		t.Fatalf("iterator error = %v, want nil", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestMatchesCircuitBreakerRejectsWhenOpen(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	client.breaker.RecordFailure()

	it := client.Matches("Sam", time.Now().Add(-time.Hour))
	if _, ok := it.Next(context.Background()); ok {
		t.Fatal("expected no events from an open circuit")
	}
	if !errors.Is(it.Err(), usecase.ErrDependencyUnavailable) {
		t.Fatalf("iterator error = %v, want ErrDependencyUnavailable", it.Err())
	}
}

func TestMatchesEmptyCompetitorIsInvalidInput(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", false)
	it := client.Matches("  ", time.Now())
	if _, ok := it.Next(context.Background()); ok {
		t.Fatal("expected no events for an empty competitor")
	}
	if !errors.Is(it.Err(), usecase.ErrInvalidInput) {
		t.Fatalf("iterator error = %v, want ErrInvalidInput", it.Err())
	}
}
