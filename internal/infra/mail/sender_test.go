package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	body, err := renderWelcome(WelcomeEmailData{Name: "Asha", Email: "asha@example.com", LoginURL: "https://crm.example.com"})

	require.NoError(t, err)
	assert.Contains(t, body, "Welcome to Green CRM, Asha!")
	assert.Contains(t, body, `href="https://crm.example.com"`)
	assert.Contains(t, body, "asha@example.com")
}

func TestRenderWelcome_EscapesName(t *testing.T) {
	body, err := renderWelcome(WelcomeEmailData{Name: "<script>", Email: "x@example.com"})

	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "Open Green CRM")
}
