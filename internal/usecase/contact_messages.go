package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"kanam-academy-backend/internal/domain"
)

const defaultSiteName = "Kanam Academy"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// escapeHTML escapes the five HTML-significant characters.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// acknowledgmentTemplate renders the HTML part of the acknowledgment. Values go
// through escape/multiline so the output keeps the &#039; entity for quotes.
var acknowledgmentTemplate = template.Must(template.New("acknowledgment").Funcs(template.FuncMap{
	"escape": func(s string) template.HTML {
		return template.HTML(escapeHTML(s))
	},
	"multiline": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(escapeHTML(s), "\n", "<br/>"))
	},
}).Parse(`<p>Hi {{escape .Name}},</p>
<p>Thanks for reaching out to <strong>{{escape .Site}}</strong>. We received your message and will reply within 1-2 business days.</p>
<p><strong>Your topic:</strong> {{escape .Topic}}</p>
<p><strong>Your message:</strong><br/>{{multiline .Message}}</p>
<p>If you need anything urgent, reply to this email.</p>
<p>{{escape .Site}}</p>`))

type acknowledgmentData struct {
	Name    string
	Site    string
	Topic   string
	Message string
}

func optionalLine(label, value string) string {
	if value == "" {
		return label + ": (not provided)"
	}
	return label + ": " + value
}

func siteName(settings domain.MailSettings) string {
	if settings.SiteName != "" {
		return settings.SiteName
	}
	return defaultSiteName
}

// operatorMessage builds the notification sent to the team inbox.
func operatorMessage(sub *domain.ContactSubmission, settings domain.MailSettings) domain.EmailMessage {
	lines := []string{
		"New contact form submission",
		"",
		"Name: " + sub.Name,
		"Email: " + sub.Email,
		"Role: " + sub.Role.Label(),
		optionalLine("Help topic", sub.HelpTopic),
		optionalLine("Learner age", sub.LearnerAge),
		optionalLine("Experience level", sub.ExperienceLevel),
		optionalLine("Goals", sub.Goals),
		optionalLine("Grade band", sub.GradeBand),
		optionalLine("Preferred start window", sub.StartWindow),
		optionalLine("Estimated learner count", sub.LearnerCount),
		optionalLine("School / Organization", sub.Organization),
		"",
		"Message:",
		sub.Message,
	}

	return domain.EmailMessage{
		From:     settings.FromEmail,
		To:       settings.ContactInbox,
		ReplyTo:  sub.Email,
		Subject:  "New contact form: " + sub.Name,
		TextBody: strings.Join(lines, "\n"),
	}
}

// acknowledgmentMessage builds the confirmation sent back to the submitter.
func acknowledgmentMessage(sub *domain.ContactSubmission, settings domain.MailSettings) (domain.EmailMessage, error) {
	site := siteName(settings)
	topic := sub.HelpTopic
	if topic == "" {
		topic = domain.DefaultHelpTopic
	}

	text := strings.Join([]string{
		"Hi " + sub.Name + ",",
		"",
		"Thanks for reaching out to " + site + ". We received your message and will reply within 1-2 business days.",
		"",
		"Your topic: " + topic,
		"",
		"Your message:",
		sub.Message,
		"",
		"If you need anything urgent, reply to this email.",
		"",
		site,
	}, "\n")

	var html bytes.Buffer
	if err := acknowledgmentTemplate.Execute(&html, acknowledgmentData{
		Name:    sub.Name,
		Site:    site,
		Topic:   topic,
		Message: sub.Message,
	}); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("failed to render acknowledgment: %w", err)
	}

	return domain.EmailMessage{
		From:     settings.FromEmail,
		To:       sub.Email,
		ReplyTo:  settings.ContactInbox,
		Subject:  "We received your message - " + site,
		TextBody: text,
		HTMLBody: html.String(),
	}, nil
}
