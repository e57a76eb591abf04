package contactform

import (
	"fmt"
	"strings"

	"kanam-academy-backend/internal/domain"
)

// Field names accepted by UpdateField. They match the JSON keys of the request.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldRole            = "role"
	FieldHelpTopic       = "helpTopic"
	FieldLearnerAge      = "learnerAge"
	FieldExperienceLevel = "experienceLevel"
	FieldGoals           = "goals"
	FieldGradeBand       = "gradeBand"
	FieldStartWindow     = "startWindow"
	FieldLearnerCount    = "learnerCount"
	FieldOrganization    = "organization"
	FieldMessage         = "message"
)

// Draft is the in-progress contact form. HelpTopic always belongs to Role's option set.
type Draft struct {
	Name            string
	Email           string
	Role            domain.Role
	HelpTopic       string
	LearnerAge      string
	ExperienceLevel string
	Goals           string
	GradeBand       string
	StartWindow     string
	LearnerCount    string
	Organization    string
	Message         string
}

// NewDraft returns an empty draft for a parent or guardian.
func NewDraft() Draft {
	return Draft{
		Role:      domain.RoleParentGuardian,
		HelpTopic: domain.RoleParentGuardian.DefaultTopic(),
	}
}

// Reset empties the draft.
func (d *Draft) Reset() {
	*d = NewDraft()
}

// UpdateField sets one field. Changing the role resets the help topic to the new
// role's default; a help topic outside the role's options is rejected.
func (d *Draft) UpdateField(name, value string) error {
	switch name {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldRole:
		r := domain.Role(value)
		if !r.Valid() {
			return fmt.Errorf("contactform: unknown role %q", value)
		}
		d.Role = r
		d.HelpTopic = r.DefaultTopic()
	case FieldHelpTopic:
		if !d.Role.HasTopic(value) {
			return fmt.Errorf("contactform: %q is not a help topic for %s", value, d.Role.Label())
		}
		d.HelpTopic = value
	case FieldLearnerAge:
		d.LearnerAge = value
	case FieldExperienceLevel:
		d.ExperienceLevel = value
	case FieldGoals:
		d.Goals = value
	case FieldGradeBand:
		d.GradeBand = value
	case FieldStartWindow:
		d.StartWindow = value
	case FieldLearnerCount:
		d.LearnerCount = value
	case FieldOrganization:
		d.Organization = value
	case FieldMessage:
		d.Message = value
	default:
		return fmt.Errorf("contactform: unknown field %q", name)
	}
	return nil
}

// Validate reports whether name, email and message are filled in. The email format
// is left to the server.
func (d Draft) Validate() bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Email) != "" &&
		strings.TrimSpace(d.Message) != ""
}

// Request snapshots the draft for the wire. Optional fields that do not apply to the
// current role are left out.
func (d Draft) Request() domain.ContactRequest {
	req := domain.ContactRequest{
		Name:      d.Name,
		Email:     d.Email,
		Role:      string(d.Role),
		HelpTopic: d.HelpTopic,
		Message:   d.Message,
	}
	if d.Role.ShowsLearnerDetails() {
		req.LearnerAge = d.LearnerAge
		req.ExperienceLevel = d.ExperienceLevel
		req.Goals = d.Goals
	}
	if d.Role.ShowsOrganizationDetails() {
		req.GradeBand = d.GradeBand
		req.StartWindow = d.StartWindow
		req.LearnerCount = d.LearnerCount
		req.Organization = d.Organization
	}
	return req
}
