package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsContactEmail(t *testing.T) {
	valid := []string{
		"ana@example.com",
		"first.last+tag@school.k12.us",
		"a@b.co",
		// only whitespace and @ are excluded, so non-ASCII addresses pass
		"ána@exámple.cöm",
	}
	invalid := []string{
		"not-an-email",
		"missing@domain",
		"@nodomain.com",
		"two@@example.com",
		"spa ce@example.com",
		"ana@example.com ",
		"",
	}

	for _, s := range valid {
		assert.True(t, IsContactEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsContactEmail(s), s)
	}
}

type contactForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,contact_email"`
}

func TestValidatorRules(t *testing.T) {
	v := New()

	t.Run("Should report required before format", func(t *testing.T) {
		err := v.Struct(contactForm{Email: "bad"})
		require.Error(t, err)
		assert.True(t, HasTag(err, "required"))
		assert.Equal(t, []string{"Name is required", "Email must be a valid email address"}, FormatValidationErrors(err))
	})

	t.Run("Should report format alone", func(t *testing.T) {
		err := v.Struct(contactForm{Name: "Ana", Email: "missing@domain"})
		require.Error(t, err)
		assert.False(t, HasTag(err, "required"))
		assert.True(t, HasTag(err, "contact_email"))
	})

	t.Run("Should pass a complete form", func(t *testing.T) {
		assert.NoError(t, v.Struct(contactForm{Name: "Ana", Email: "ana@example.com"}))
	})
}

func TestFormatCamelCase(t *testing.T) {
	assert.Equal(t, "Learner Count", formatCamelCase("LearnerCount"))
	assert.Equal(t, "Goals", getFieldLabel("Goals"))
}
