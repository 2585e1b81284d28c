package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *prometheus.Registry) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	return NewClient(Options{
		BaseURL:    srv.URL + "/",
		Timeout:    2 * time.Second,
		Registerer: reg,
		Logger:     zerolog.Nop(),
	}), reg
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestGetEventsNormalizesEnvelope(t *testing.T) {
	client, reg := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(RequestIDHeader) == "" {
			t.Errorf("missing request id header")
		}
		writeJSON(w, http.StatusOK, `{"data":[{"id":1,"title":"Fair"},{"id":"2","title":"Gig"}]}`)
	})

	events, err := client.GetEvents(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0].ID != "1" || events[1].Title != "Gig" {
		t.Fatalf("unexpected events %+v", events)
	}

	count := testutil.ToFloat64(client.metrics.requests.WithLabelValues("getEvents", "success"))
	if count != 1 {
		t.Fatalf("expected one successful request counted, got %v", count)
	}
	if n, err := testutil.GatherAndCount(reg, "uniconnect_gateway_requests_total"); err != nil || n != 1 {
		t.Fatalf("expected registered counter, got %d, %v", n, err)
	}
}

func TestLoginRetainsToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds models.Credentials
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Errorf("decode credentials: %v", err)
			}
			if creds.Email != "a@b.com" || creds.Password != "abcd1234" {
				t.Errorf("unexpected credentials %+v", creds)
			}
			writeJSON(w, http.StatusOK, `{"data":{"user":{"id":"u1","email":"a@b.com"},"token":{"accessToken":"tok"}}}`)
		case "/bookings":
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("expected bearer token, got %q", got)
			}
			writeJSON(w, http.StatusOK, `[]`)
		default:
			http.NotFound(w, r)
		}
	})

	user, err := client.Login(context.Background(), "a@b.com", "abcd1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || client.Token() != "tok" {
		t.Fatalf("unexpected user %+v token %q", user, client.Token())
	}
	if _, err := client.GetBookings(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyOtpMissingUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"verified"}`)
	})

	_, err := client.VerifyOtp(context.Background(), "a@b.com", "123456")
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.Kind != KindApplication || gwErr.Message != "Invalid response from server: Missing user" {
		t.Fatalf("unexpected error %+v", gwErr)
	}
}

func TestApplicationErrorCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"error":{"message":"email already registered"}}`)
	})

	err := client.Signup(context.Background(), models.SignupPayload{Password: "abcd1234"})
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.Status != http.StatusConflict || gwErr.Message != "email already registered" {
		t.Fatalf("unexpected error %+v", gwErr)
	}
	if !errors.Is(err, apperrors.ErrApplication) {
		t.Fatalf("expected ErrApplication in chain")
	}
	if MessageFor(err, "fallback") != "email already registered" {
		t.Fatalf("expected backend message for toast")
	}
}

func TestApplicationErrorWithoutMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.AddEvent(context.Background(), models.Event{Title: "x"})
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) || gwErr.Message != "" || gwErr.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestTimeoutIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Logger: zerolog.Nop()})
	_, err := client.GetEvents(context.Background())
	if !errors.Is(err, apperrors.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if !IsUnreachable(err) {
		t.Fatalf("timeout must count as unreachable")
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Options{BaseURL: url, Logger: zerolog.Nop()})
	accs, err := client.GetAccommodations(context.Background())
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if accs == nil || len(accs) != 0 {
		t.Fatalf("expected empty slice on failure")
	}
}

func TestCanceledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetBookings(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestCommentsQueryAndDelete(t *testing.T) {
	var deleted string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/comments":
			if r.URL.Query().Get("postId") != "p1" || r.URL.Query().Get("postType") != "EVENT" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			writeJSON(w, http.StatusOK, `{"comments":[{"id":"c1","text":"hi"}]}`)
		case r.Method == http.MethodDelete:
			deleted = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})

	comments, err := client.GetComments(context.Background(), "p1", models.PostTypeEvent)
	if err != nil || len(comments) != 1 || comments[0].Text != "hi" {
		t.Fatalf("unexpected comments %+v, %v", comments, err)
	}
	if err := client.DeleteAccommodation(context.Background(), "a 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "/accommodations/a 1" {
		t.Fatalf("unexpected delete path %q", deleted)
	}
}

func TestJoinEventAcceptsMessageBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"message":"joined"}`)
	})

	participant, err := client.JoinEvent(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if participant.EventID != "e1" {
		t.Fatalf("expected event id to be filled in, got %+v", participant)
	}
}

func TestUploadMediaMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if r.FormValue("postId") != "e1" || r.FormValue("postType") != "EVENT" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			if string(data) != "png-bytes" || header.Filename != "poster.png" {
				t.Errorf("unexpected file %q %q", header.Filename, data)
			}
		}
		writeJSON(w, http.StatusCreated, `{"media":{"id":"m1","url":"https://cdn/m1.png"}}`)
	})

	media, err := client.UploadMedia(context.Background(), models.MediaUpload{
		PostID:      "e1",
		PostType:    models.PostTypeEvent,
		Filename:    "poster.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if media.ID != "m1" || media.URL != "https://cdn/m1.png" {
		t.Fatalf("unexpected media %+v", media)
	}
}
