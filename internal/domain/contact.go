package domain

import (
	"context"
	"errors"
)

// Role identifies who is reaching out through the contact form.
type Role string

const (
	RoleParentGuardian Role = "parent_guardian"
	RoleEducatorSchool Role = "educator_school"
	RoleProgramPartner Role = "program_partner"
	RoleOther          Role = "other"
)

// DefaultHelpTopic is used in acknowledgments when the submitter left the topic blank.
const DefaultHelpTopic = "General question"

// Roles lists every role in display order.
var Roles = []Role{RoleParentGuardian, RoleEducatorSchool, RoleProgramPartner, RoleOther}

var roleLabels = map[Role]string{
	RoleParentGuardian: "Parent/Guardian",
	RoleEducatorSchool: "Educator/School",
	RoleProgramPartner: "Program Partner",
	RoleOther:          "Other",
}

// helpTopics maps each role to its ordered option set. The first entry is the default.
var helpTopics = map[Role][]string{
	RoleParentGuardian: {
		"Choosing a starting track",
		"Schedules and live class times",
		"Pricing and enrollment",
		"Device and software setup",
		DefaultHelpTopic,
	},
	RoleEducatorSchool: {
		"Classroom or school partnership",
		"Curriculum alignment and standards",
		"Pilot program",
		"School pricing and licensing",
		DefaultHelpTopic,
	},
	RoleProgramPartner: {
		"After-school or camp partnership",
		"Co-hosted program",
		"Instructor support",
		"Partnership pricing",
		DefaultHelpTopic,
	},
	RoleOther: {
		DefaultHelpTopic,
		"Press and media",
		"Careers",
		"Something else",
	},
}

// ParseRole normalizes a wire value. Unknown values become RoleOther.
func ParseRole(s string) Role {
	r := Role(s)
	if _, ok := roleLabels[r]; ok {
		return r
	}
	return RoleOther
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human-readable role name used in operator emails.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return roleLabels[RoleOther]
}

// HelpTopics returns a copy of the role's option set.
func (r Role) HelpTopics() []string {
	topics := helpTopics[ParseRole(string(r))]
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}

// DefaultTopic returns the first option of the role's set.
func (r Role) DefaultTopic() string {
	return helpTopics[ParseRole(string(r))][0]
}

// HasTopic reports whether topic belongs to the role's option set.
func (r Role) HasTopic(topic string) bool {
	for _, t := range helpTopics[ParseRole(string(r))] {
		if t == topic {
			return true
		}
	}
	return false
}

// ShowsLearnerDetails reports whether learnerAge, experienceLevel and goals apply.
func (r Role) ShowsLearnerDetails() bool {
	return r == RoleParentGuardian
}

// ShowsOrganizationDetails reports whether gradeBand, startWindow, learnerCount and
// organization apply.
func (r Role) ShowsOrganizationDetails() bool {
	return r == RoleEducatorSchool || r == RoleProgramPartner
}

// ContactRequest is the JSON body posted by the contact form. Every field is optional on the
// wire; values are re-validated server side.
type ContactRequest struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Role            string `json:"role,omitempty"`
	HelpTopic       string `json:"helpTopic,omitempty"`
	LearnerAge      string `json:"learnerAge,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	Goals           string `json:"goals,omitempty"`
	GradeBand       string `json:"gradeBand,omitempty"`
	StartWindow     string `json:"startWindow,omitempty"`
	LearnerCount    string `json:"learnerCount,omitempty"`
	Organization    string `json:"organization,omitempty"`
	Message         string `json:"message,omitempty"`
}

// ContactSubmission is a sanitized submission ready for validation.
type ContactSubmission struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,contact_email"`
	Role            Role
	HelpTopic       string
	LearnerAge      string
	ExperienceLevel string
	Goals           string
	GradeBand       string
	StartWindow     string
	LearnerCount    string
	Organization    string
	Message         string `validate:"required"`
}

// MailSettings is the resolved outbound mail configuration for contact emails.
type MailSettings struct {
	Driver       string
	Host         string
	Port         int
	Username     string
	Password     string
	Secure       bool
	APIKey       string
	FromEmail    string
	ContactInbox string
	SiteName     string
}

// Configured reports whether the transport has everything it needs to attempt delivery.
func (s MailSettings) Configured() bool {
	switch s.Driver {
	case "console":
		return s.FromEmail != "" && s.ContactInbox != ""
	case "sendgrid":
		return s.APIKey != "" && s.FromEmail != "" && s.ContactInbox != ""
	default:
		return s.Host != "" && s.Username != "" && s.Password != ""
	}
}

// EmailMessage is one outbound email. HTMLBody is optional.
type EmailMessage struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers a single message. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates a submission and sends the operator notification and
	// the user acknowledgment.
	SendContactMessage(ctx context.Context, sub *ContactSubmission) error
	// MailConfigured reports whether submissions can currently be delivered.
	MailConfigured() bool
}

var (
	ErrInvalidBody       = errors.New("invalid request body")
	ErrMissingFields     = errors.New("name, email, and message are required")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrMailNotConfigured = errors.New("email service is not configured")
	ErrDeliveryFailed    = errors.New("contact email delivery failed")
)
