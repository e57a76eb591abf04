package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kanam-academy-backend/config"
	"kanam-academy-backend/internal/domain"
	"kanam-academy-backend/internal/usecase"
	"kanam-academy-backend/pkg/logger"
	"kanam-academy-backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingMailer stands in for the mail transport.
type recordingMailer struct {
	mu     sync.Mutex
	sent   []domain.EmailMessage
	failTo string
}

func (m *recordingMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if m.failTo != "" && msg.To == m.failTo {
		return errors.New("421 service not available")
	}
	return nil
}

func (m *recordingMailer) to(addr string) (domain.EmailMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.sent {
		if msg.To == addr {
			return msg, true
		}
	}
	return domain.EmailMessage{}, false
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func configuredSettings() domain.MailSettings {
	cfg := &config.Config{
		MailDriver:        "smtp",
		SMTPHost:          "smtp.example.com",
		SMTPPort:          587,
		SMTPUser:          "mailer@kanamacademy.com",
		SMTPPass:          "secret",
		ContactInboxEmail: "team@kanamacademy.com",
		SiteName:          "Kanam Academy",
	}
	return cfg.Mail()
}

func newTestRouter(mailer domain.Mailer, settings domain.MailSettings) *gin.Engine {
	return newTestRouterWithConfig(mailer, settings, &config.Config{
		AllowedOrigins:         []string{"http://localhost:3000"},
		ContactRateLimit:       10000,
		RateLimitWindowSeconds: 60,
	})
}

func newTestRouterWithConfig(mailer domain.Mailer, settings domain.MailSettings, cfg *config.Config) *gin.Engine {
	contactUC := usecase.NewContactUsecase(mailer, settings, validation.New())
	return NewRouter(RouterDeps{
		ContactUC: contactUC,
		HealthUC:  usecase.NewHealthUsecase(contactUC, nil),
		Config:    cfg,
	})
}

func postContact(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitContactScenarios(t *testing.T) {
	t.Run("Should deliver both emails for a complete submission", func(t *testing.T) {
		mailer := &recordingMailer{}
		r := newTestRouter(mailer, configuredSettings())

		w := postContact(r, `{"name":"Ana","email":"ana@example.com","role":"parent_guardian","message":"Hi"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 2, mailer.count())

		operator, ok := mailer.to("team@kanamacademy.com")
		require.True(t, ok)
		assert.Equal(t, "mailer@kanamacademy.com", operator.From)
		assert.Contains(t, operator.TextBody, "Role: Parent/Guardian")

		_, ok = mailer.to("ana@example.com")
		assert.True(t, ok)
	})

	t.Run("Should acknowledge a general question when no topic is sent", func(t *testing.T) {
		mailer := &recordingMailer{}
		r := newTestRouter(mailer, configuredSettings())

		w := postContact(r, `{"name":"Ana","email":"ana@example.com","role":"parent_guardian","message":"Hi"}`)
		require.Equal(t, http.StatusOK, w.Code)

		ack, ok := mailer.to("ana@example.com")
		require.True(t, ok)
		assert.Contains(t, ack.TextBody, "Your topic: General question")
	})

	t.Run("Should reject a submission without email", func(t *testing.T) {
		mailer := &recordingMailer{}
		r := newTestRouter(mailer, configuredSettings())

		w := postContact(r, `{"name":"Ana","role":"parent_guardian","message":"Hi"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Name, email, and message are required."}`, w.Body.String())
		assert.Zero(t, mailer.count())
	})
}

func TestSubmitContactBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed json", `{"name":`, msgInvalidBody},
		{"empty body", ``, msgInvalidBody},
		{"json null", `null`, msgInvalidBody},
		{"json array", `[{"name":"Ana"}]`, msgInvalidBody},
		{"trailing data", `{"name":"Ana","email":"ana@example.com","message":"Hi"} garbage{`, msgInvalidBody},
		{"second object", `{"name":"Ana","email":"ana@example.com","message":"Hi"}{}`, msgInvalidBody},
		{"blank fields after trim", `{"name":"  ","email":"ana@example.com","message":"\n"}`, msgMissingFields},
		{"non-string fields", `{"name":42,"email":"ana@example.com","message":["Hi"]}`, msgMissingFields},
		{"not-an-email", `{"name":"Ana","email":"not-an-email","message":"Hi"}`, msgInvalidEmail},
		{"missing tld", `{"name":"Ana","email":"missing@domain","message":"Hi"}`, msgInvalidEmail},
		{"missing local part", `{"name":"Ana","email":"@nodomain.com","message":"Hi"}`, msgInvalidEmail},
	}

	for _, tt := range tests {
		t.Run("Should reject "+tt.name, func(t *testing.T) {
			mailer := &recordingMailer{}
			r := newTestRouter(mailer, configuredSettings())

			w := postContact(r, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, body["error"])
			assert.Zero(t, mailer.count())
		})
	}
}

func TestSubmitContactOversizedBody(t *testing.T) {
	mailer := &recordingMailer{}
	r := newTestRouter(mailer, configuredSettings())

	huge := `{"name":"Ana","email":"ana@example.com","message":"` + strings.Repeat("a", maxContactBodyBytes) + `"}`
	w := postContact(r, huge)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mailer.count())
}

func TestSubmitContactNotConfigured(t *testing.T) {
	mailer := &recordingMailer{}
	settings := configuredSettings()
	settings.Password = ""
	r := newTestRouter(mailer, settings)

	w := postContact(r, `{"name":"Ana","email":"ana@example.com","message":"Hi"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"`+msgMailNotConfigured+`"}`, w.Body.String())
	assert.Zero(t, mailer.count())
}

func TestSubmitContactDeliveryFailure(t *testing.T) {
	mailer := &recordingMailer{failTo: "team@kanamacademy.com"}
	r := newTestRouter(mailer, configuredSettings())

	w := postContact(r, `{"name":"Ana","email":"ana@example.com","message":"Hi"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"`+msgDeliveryFailed+`"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "421")
	assert.Equal(t, 2, mailer.count())
}

func TestSubmitContactDeliveryFailureLogsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	mailer := &recordingMailer{failTo: "team@kanamacademy.com"}
	r := newTestRouter(mailer, configuredSettings())

	w := postContact(r, `{"name":"Ana","email":"ana@example.com","message":"Hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "421 service not available")
}

func TestSubmitContactRepeatIsNotDeduplicated(t *testing.T) {
	mailer := &recordingMailer{}
	r := newTestRouter(mailer, configuredSettings())
	body := `{"name":"Ana","email":"ana@example.com","message":"Hi"}`

	require.Equal(t, http.StatusOK, postContact(r, body).Code)
	require.Equal(t, http.StatusOK, postContact(r, body).Code)
	assert.Equal(t, 4, mailer.count())
}

func TestSubmitContactEscapesHTML(t *testing.T) {
	mailer := &recordingMailer{}
	r := newTestRouter(mailer, configuredSettings())

	w := postContact(r, `{"name":"Ana","email":"ana@example.com","message":"<script>alert(1)</script>"}`)
	require.Equal(t, http.StatusOK, w.Code)

	ack, ok := mailer.to("ana@example.com")
	require.True(t, ok)
	assert.Contains(t, ack.HTMLBody, "&lt;script&gt;")
	assert.NotContains(t, ack.HTMLBody, "<script>")
}

func TestSubmitContactUnknownRole(t *testing.T) {
	mailer := &recordingMailer{}
	r := newTestRouter(mailer, configuredSettings())

	w := postContact(r, `{"name":"Ana","email":"ana@example.com","role":"wizard","message":"Hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	operator, ok := mailer.to("team@kanamacademy.com")
	require.True(t, ok)
	assert.Contains(t, operator.TextBody, "Role: Other")
}

func TestListTopics(t *testing.T) {
	r := newTestRouter(&recordingMailer{}, configuredSettings())

	t.Run("Should list every role", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/contact/topics", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp TopicsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Roles, len(domain.Roles))
		for _, rt := range resp.Roles {
			assert.Equal(t, rt.Topics[0], rt.DefaultTopic)
		}
	})

	t.Run("Should filter by role", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/contact/topics?role=educator_school", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp TopicsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Roles, 1)
		assert.Equal(t, "Educator/School", resp.Roles[0].Label)
	})

	t.Run("Should reject an unknown role", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/contact/topics?role=wizard", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealth(t *testing.T) {
	settings := configuredSettings()
	settings.Host = ""
	r := newTestRouter(&recordingMailer{}, settings)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","mail_configured":false,"redis":false}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNoRoute(t *testing.T) {
	r := newTestRouter(&recordingMailer{}, configuredSettings())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found."}`, w.Body.String())
}

func TestContactRateLimitUsesPeerAddress(t *testing.T) {
	post := func(r *gin.Engine, remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact",
			strings.NewReader(`{"name":"Ana","email":"ana@example.com","message":"Hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwarded)
		req.RemoteAddr = remote + ":51000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("Should ignore forwarded headers from untrusted peers", func(t *testing.T) {
		mailer := &recordingMailer{}
		r := newTestRouterWithConfig(mailer, configuredSettings(), &config.Config{
			ContactRateLimit:       1,
			RateLimitWindowSeconds: 60,
		})

		codes := []int{
			post(r, "203.0.113.50", "10.0.0.1"),
			post(r, "203.0.113.50", "10.0.0.2"),
			post(r, "203.0.113.50", "10.0.0.3"),
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
		assert.Equal(t, 2, mailer.count())
	})

	t.Run("Should honor forwarded headers from a trusted proxy", func(t *testing.T) {
		mailer := &recordingMailer{}
		r := newTestRouterWithConfig(mailer, configuredSettings(), &config.Config{
			TrustedProxies:         []string{"203.0.113.60"},
			ContactRateLimit:       1,
			RateLimitWindowSeconds: 60,
		})

		assert.Equal(t, http.StatusOK, post(r, "203.0.113.60", "198.51.100.21"))
		assert.Equal(t, http.StatusOK, post(r, "203.0.113.60", "198.51.100.22"))
		assert.Equal(t, http.StatusTooManyRequests, post(r, "203.0.113.60", "198.51.100.21"))
	})
}
