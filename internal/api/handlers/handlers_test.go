package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/models"
	"github.com/osa911/portfolio-contact/internal/repository"
	"github.com/osa911/portfolio-contact/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Mock Notifier
type mockNotifier struct {
	configured bool
	sendErr    error
	verifyErr  error
	sends      int
}

func (m *mockNotifier) Configured() bool { return m.configured }

func (m *mockNotifier) Send(ctx context.Context, msg *models.StoredMessage) error {
	m.sends++
	return m.sendErr
}

func (m *mockNotifier) Verify(ctx context.Context) error { return m.verifyErr }

// Mock MessageRepository that always fails
type failingRepository struct {
	err error
}

func (r *failingRepository) Append(ctx context.Context, msg *models.StoredMessage) error { return r.err }

func (r *failingRepository) List(ctx context.Context) ([]*models.StoredMessage, error) {
	return nil, r.err
}

type apiBody struct {
	OK       bool                    `json:"ok"`
	Message  string                  `json:"message"`
	Warning  string                  `json:"warning"`
	Count    int                     `json:"count"`
	Messages []*models.StoredMessage `json:"messages"`
}

type testEnv struct {
	router   *gin.Engine
	repo     repository.MessageRepository
	notifier *mockNotifier
}

func newTestEnv(t *testing.T, repo repository.MessageRepository, notifier *mockNotifier, required bool) *testEnv {
	t.Helper()
	if repo == nil {
		repo = repository.NewFileMessageRepository(filepath.Join(t.TempDir(), "messages.json"))
	}
	logger := logging.NewNop()
	svc := service.NewContactService(repo, notifier, required, logger)

	router := gin.New()
	router.GET("/health", NewHealthHandler().Check)
	router.POST("/contact", NewContactHandler(svc, logger).Submit)
	router.GET("/messages", NewMessagesHandler(svc, logger).List)
	router.GET("/smtp-test", NewSMTPHandler(svc).Test)

	return &testEnv{router: router, repo: repo, notifier: notifier}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, apiBody) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed apiBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	return w, parsed
}

const validJSON = `{"name":"A","email":"a@b.com","subject":"S","message":"M"}`

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil, &mockNotifier{}, false)

	w, body := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.OK)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestContact_ValidationErrors(t *testing.T) {
	env := newTestEnv(t, nil, &mockNotifier{configured: true}, false)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"name":"A"}`, "All fields are required."},
		{"blank field", `{"name":"A","email":"a@b.com","subject":"  ","message":"M"}`, "All fields are required."},
		{"empty body", "", "All fields are required."},
		{"bad email", `{"name":"A","email":"nope","subject":"S","message":"M"}`, "Invalid email address."},
		{"missing wins over bad email", `{"name":"","email":"nope","subject":"S","message":"M"}`, "All fields are required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.do(t, http.MethodPost, "/contact", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, body.OK)
			assert.Equal(t, tt.want, body.Message)
		})
	}

	messages, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Zero(t, env.notifier.sends)
}

func TestContact_MalformedJSON(t *testing.T) {
	env := newTestEnv(t, nil, &mockNotifier{}, false)

	w, body := env.do(t, http.MethodPost, "/contact", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.OK)
	assert.Equal(t, "Invalid request body.", body.Message)
}

func TestContact_StoredWhenRelayNotConfigured(t *testing.T) {
	env := newTestEnv(t, nil, &mockNotifier{}, false)

	w, body := env.do(t, http.MethodPost, "/contact", validJSON)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Message received and stored successfully."}`, w.Body.String())
	assert.True(t, body.OK)

	messages, err := env.repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "a@b.com", messages[0].Email)
}

func TestContact_Sent(t *testing.T) {
	env := newTestEnv(t, nil, &mockNotifier{configured: true}, false)

	w, body := env.do(t, http.MethodPost, "/contact", validJSON)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Message sent successfully.", body.Message)
	assert.Empty(t, body.Warning)
	assert.Equal(t, 1, env.notifier.sends)
}

func TestContact_DeliveryFailureWarning(t *testing.T) {
	notifier := &mockNotifier{
		configured: true,
		sendErr:    &service.DeliveryAuthError{Err: errors.New("535 5.7.8 Username and Password not accepted")},
	}
	env := newTestEnv(t, nil, notifier, false)

	w, body := env.do(t, http.MethodPost, "/contact", validJSON)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.OK)
	assert.Equal(t, "Message received and stored successfully (email delivery skipped).", body.Message)
	assert.NotEmpty(t, body.Warning)
	assert.NotContains(t, body.Warning, "Username and Password not accepted")
}

func TestContact_RequiredDeliveryFailure(t *testing.T) {
	tests := []struct {
		name    string
		sendErr error
	}{
		{"auth", &service.DeliveryAuthError{Err: errors.New("535")}},
		{"transport", &service.DeliveryError{Stage: "connect", Err: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, &mockNotifier{configured: true, sendErr: tt.sendErr}, true)

			w, body := env.do(t, http.MethodPost, "/contact", validJSON)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, body.OK)
			assert.NotEmpty(t, body.Message)

			// Still listed
			w, body = env.do(t, http.MethodGet, "/messages", "")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 1, body.Count)
		})
	}
}

func TestContact_StoreFailure(t *testing.T) {
	notifier := &mockNotifier{configured: true}
	env := newTestEnv(t, &failingRepository{err: errors.New("disk full")}, notifier, false)

	w, body := env.do(t, http.MethodPost, "/contact", validJSON)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, body.OK)
	assert.Equal(t, "Server error while storing message.", body.Message)
	assert.Zero(t, notifier.sends)
}

func TestMessages(t *testing.T) {
	env := newTestEnv(t, nil, &mockNotifier{}, false)

	w, body := env.do(t, http.MethodGet, "/messages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"count":0,"messages":[]}`, w.Body.String())

	for _, subject := range []string{"one", "two", "three"} {
		payload := `{"name":"A","email":"a@b.com","subject":"` + subject + `","message":"M"}`
		w, _ := env.do(t, http.MethodPost, "/contact", payload)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, body = env.do(t, http.MethodGet, "/messages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.OK)
	assert.Equal(t, 3, body.Count)
	require.Len(t, body.Messages, 3)
	assert.Equal(t, "one", body.Messages[0].Subject)
	assert.Equal(t, "two", body.Messages[1].Subject)
	assert.Equal(t, "three", body.Messages[2].Subject)
	assert.Equal(t, models.DeliveryStored, body.Messages[0].Delivery)
}

func TestMessages_ReadFailure(t *testing.T) {
	env := newTestEnv(t, &failingRepository{err: errors.New("corrupt")}, &mockNotifier{}, false)

	w, body := env.do(t, http.MethodGet, "/messages", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, body.OK)
	assert.Equal(t, "Cannot read messages.", body.Message)
}

func TestSMTPTest(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv(t, nil, &mockNotifier{}, false)
		w, body := env.do(t, http.MethodGet, "/smtp-test", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, body.OK)
		assert.Equal(t, "SMTP not configured. Form can still store messages locally.", body.Message)
	})

	t.Run("valid", func(t *testing.T) {
		env := newTestEnv(t, nil, &mockNotifier{configured: true}, false)
		w, body := env.do(t, http.MethodGet, "/smtp-test", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "SMTP connection/auth is valid.", body.Message)
	})

	t.Run("auth failure", func(t *testing.T) {
		notifier := &mockNotifier{configured: true, verifyErr: &service.DeliveryAuthError{Err: errors.New("535")}}
		env := newTestEnv(t, nil, notifier, false)

		for i := 0; i < 2; i++ {
			w, body := env.do(t, http.MethodGet, "/smtp-test", "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, body.OK)
			assert.NotEmpty(t, body.Message)
		}
		assert.Zero(t, notifier.sends)

		messages, err := env.repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusForKind(service.ErrKindValidation))
	assert.Equal(t, http.StatusInternalServerError, statusForKind(service.ErrKindStore))
	assert.Equal(t, http.StatusUnauthorized, statusForKind(service.ErrKindDeliveryAuth))
	assert.Equal(t, http.StatusUnauthorized, statusForKind(service.ErrKindDelivery))
	assert.Equal(t, http.StatusInternalServerError, statusForKind(service.ErrKindInternal))
}
