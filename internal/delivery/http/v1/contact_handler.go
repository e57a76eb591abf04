package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanam-academy-backend/internal/delivery/http/response"
	"kanam-academy-backend/internal/domain"
	"kanam-academy-backend/pkg/apperror"
)

// maxContactBodyBytes caps the submission body size.
const maxContactBodyBytes = 64 << 10

// User-facing messages returned by the contact endpoint.
const (
	msgInvalidBody       = "Invalid request body."
	msgMissingFields     = "Name, email, and message are required."
	msgInvalidEmail      = "Please provide a valid email address."
	msgMailNotConfigured = "Contact form email is not configured yet. Please try again soon."
	msgDeliveryFailed    = "We could not send your message right now. Please try again shortly."
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required).
// Extra handlers run before SubmitContact (e.g. rate limiting).
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, submitMiddleware ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", append(submitMiddleware, handler.SubmitContact)...)
	public.GET("/contact/topics", handler.ListTopics)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates a contact form submission, then emails the team and sends the submitter an acknowledgment.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.OKResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      429      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Failure      503      {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	// Decode loosely: every field is optional and non-string values count as empty.
	raw, err := decodeContactBody(c.Request.Body)
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, msgInvalidBody, err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), submissionFromBody(raw)); err != nil {
		c.Error(contactError(err))
		return
	}

	response.OK(c, http.StatusOK)
}

// ListTopics godoc
// @Summary      List Help Topics
// @Description  Returns every role with its label and ordered help topics. The first topic is the default.
// @Tags         contact
// @Produce      json
// @Param        role  query     string  false  "Limit to one role"
// @Success      200   {object}  TopicsResponse
// @Failure      400   {object}  response.ErrorResponse
// @Router       /contact/topics [get]
func (h *ContactHandler) ListTopics(c *gin.Context) {
	roles := domain.Roles
	if q := c.Query("role"); q != "" {
		r := domain.Role(q)
		if !r.Valid() {
			c.Error(apperror.BadRequest("Unknown role."))
			return
		}
		roles = []domain.Role{r}
	}

	resp := TopicsResponse{Roles: make([]RoleTopics, 0, len(roles))}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, RoleTopics{
			Role:         r,
			Label:        r.Label(),
			DefaultTopic: r.DefaultTopic(),
			Topics:       r.HelpTopics(),
		})
	}
	response.JSON(c, http.StatusOK, resp)
}

type RoleTopics struct {
	Role         domain.Role `json:"role"`
	Label        string      `json:"label"`
	DefaultTopic string      `json:"defaultTopic"`
	Topics       []string    `json:"topics"`
}

type TopicsResponse struct {
	Roles []RoleTopics `json:"roles"`
}

// decodeContactBody requires the body to be exactly one JSON object.
func decodeContactBody(body io.Reader) (map[string]interface{}, error) {
	dec := json.NewDecoder(body)

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, domain.ErrInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, domain.ErrInvalidBody
	}
	return raw, nil
}

func submissionFromBody(raw map[string]interface{}) *domain.ContactSubmission {
	role, _ := raw["role"].(string)

	return &domain.ContactSubmission{
		Name:            stringField(raw, "name"),
		Email:           stringField(raw, "email"),
		Role:            domain.ParseRole(role),
		HelpTopic:       stringField(raw, "helpTopic"),
		LearnerAge:      stringField(raw, "learnerAge"),
		ExperienceLevel: stringField(raw, "experienceLevel"),
		Goals:           stringField(raw, "goals"),
		GradeBand:       stringField(raw, "gradeBand"),
		StartWindow:     stringField(raw, "startWindow"),
		LearnerCount:    stringField(raw, "learnerCount"),
		Organization:    stringField(raw, "organization"),
		Message:         stringField(raw, "message"),
	}
}

func stringField(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)
	return strings.TrimSpace(s)
}

func contactError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return apperror.BadRequest(msgMissingFields)
	case errors.Is(err, domain.ErrInvalidEmail):
		return apperror.BadRequest(msgInvalidEmail)
	case errors.Is(err, domain.ErrMailNotConfigured):
		return apperror.ServiceUnavailable(msgMailNotConfigured, err)
	default:
		return apperror.New(http.StatusInternalServerError, msgDeliveryFailed, err)
	}
}
