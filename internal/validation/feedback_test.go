package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjoonc/portfolio-backend/internal/models"
)

func TestValidateFeedback_Valid(t *testing.T) {
	result, err := ValidateFeedback(FeedbackRequest{
		Slug:    "/home",
		Name:    "Jiwoo",
		Message: "hello",
		Email:   "jiwoo@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "/home", result.Slug)
	assert.Equal(t, "Jiwoo", result.Name)
	assert.Equal(t, "hello", result.Message)
	assert.Equal(t, "jiwoo@example.com", result.Email)
	assert.False(t, result.Automated)
}

func TestValidateFeedback_NameDefaultsToAnonymous(t *testing.T) {
	result, err := ValidateFeedback(FeedbackRequest{
		Slug:    "/home",
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousName, result.Name)
}

func TestValidateFeedback_TrimsFields(t *testing.T) {
	result, err := ValidateFeedback(FeedbackRequest{
		Slug:    "  /about  ",
		Name:    "  Jiwoo  ",
		Message: "  hi there  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "/about", result.Slug)
	assert.Equal(t, "Jiwoo", result.Name)
	assert.Equal(t, "hi there", result.Message)
}

func TestValidateFeedback_WhitespaceMessageRejected(t *testing.T) {
	_, err := ValidateFeedback(FeedbackRequest{
		Slug:    "/home",
		Message: "   ",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is required")
}

func TestValidateFeedback_MissingSlug(t *testing.T) {
	_, err := ValidateFeedback(FeedbackRequest{Message: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug is required")
}

func TestValidateFeedback_LengthBounds(t *testing.T) {
	cases := []struct {
		name string
		req  FeedbackRequest
		want string
	}{
		{
			name: "slug too long",
			req:  FeedbackRequest{Slug: strings.Repeat("s", 201), Message: "hi"},
			want: "slug must be at most 200 characters",
		},
		{
			name: "name too long",
			req:  FeedbackRequest{Slug: "/home", Name: strings.Repeat("n", 41), Message: "hi"},
			want: "name must be at most 40 characters",
		},
		{
			name: "message too long",
			req:  FeedbackRequest{Slug: "/home", Message: strings.Repeat("m", 1001)},
			want: "message must be at most 1000 characters",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateFeedback(tc.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateFeedback_BoundaryLengthsAccepted(t *testing.T) {
	_, err := ValidateFeedback(FeedbackRequest{
		Slug:    strings.Repeat("s", 200),
		Name:    strings.Repeat("n", 40),
		Message: strings.Repeat("m", 1000),
	})
	assert.NoError(t, err)
}

func TestValidateFeedback_EmailFormat(t *testing.T) {
	_, err := ValidateFeedback(FeedbackRequest{
		Slug:    "/home",
		Message: "hello",
		Email:   "not-an-email",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")

	// Empty email is explicitly fine
	_, err = ValidateFeedback(FeedbackRequest{
		Slug:    "/home",
		Message: "hello",
		Email:   "",
	})
	assert.NoError(t, err)
}

func TestValidateFeedback_Honeypot(t *testing.T) {
	result, err := ValidateFeedback(FeedbackRequest{
		Slug:    "/home",
		Message: "hello",
		HP:      "gotcha",
	})
	require.NoError(t, err, "a filled honeypot is not a validation error")
	assert.True(t, result.Automated)

	// Whitespace-only honeypot does not trip the flag
	result, err = ValidateFeedback(FeedbackRequest{
		Slug:    "/home",
		Message: "hello",
		HP:      "   ",
	})
	require.NoError(t, err)
	assert.False(t, result.Automated)
}

func TestValidateFeedback_MultipleErrorsJoined(t *testing.T) {
	_, err := ValidateFeedback(FeedbackRequest{Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug is required")
	assert.Contains(t, err.Error(), "message is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
}
