package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslatorRendersTemplates(t *testing.T) {
	tr := NewTranslator("en")

	msg := tr.T("", "mail.registration_confirmed.subject", map[string]any{"Hackathon": "CodeStorm"})
	require.Equal(t, "Registration confirmed: CodeStorm", msg)

	msg = tr.T("en", "error.duplicate_email", nil)
	require.Equal(t, "An account with this email already exists.", msg)
}

func TestTranslatorFallsBackToKey(t *testing.T) {
	tr := NewTranslator("en")
	require.Equal(t, "no.such.key", tr.T("", "no.such.key", nil))
	require.Empty(t, tr.T("", "", nil))
}

func TestTranslatorUnknownLocaleUsesDefault(t *testing.T) {
	tr := NewTranslator("en")
	msg := tr.T("fr", "error.not_admin", nil)
	require.Equal(t, "Only an administrator can perform this action.", msg)
}
