package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadToolDescriptions(t *testing.T) {
	l := NewLoader()

	for _, name := range []string{ToolHelpTemplate, ToolSurpresaGastos, ToolLembreteEmprestimo} {
		t.Run(name, func(t *testing.T) {
			text, err := l.Load(name)
			require.NoError(t, err)
			assert.NotEmpty(t, text)
			assert.NotContains(t, text[len(text)-1:], "\n")
		})
	}
}

func TestLoader_LoadMissing(t *testing.T) {
	_, err := NewLoader().Load("tools/nope.md")
	assert.Error(t, err)
	assert.Panics(t, func() { NewLoader().MustLoad("tools/nope.md") })
}

func TestLoader_RenderLoanReminder(t *testing.T) {
	data := struct {
		BaseAmount    string
		DueDate       string
		DaysToDue     int
		ExtraAmount   string
		InterestSaved string
	}{"1200.00", "10/07/2025", 12, "100.00", "86.65"}

	msg, err := Render(MessageLoanReminder, data)
	require.NoError(t, err)

	assert.Equal(t,
		"Oi! Sua próxima parcela de R$ 1200.00 vence em 10/07/2025 (daqui a 12 dia(s)).\n"+
			"Que tal antecipar mais R$ 100.00? Assim, você pode economizar aproximadamente R$ 86.65 em juros até o fim!",
		msg)
}

func TestLoader_RenderMissingKey(t *testing.T) {
	_, err := NewLoader().Render(MessageLoanReminder, map[string]any{"BaseAmount": "1.00"})
	assert.Error(t, err)
}

func TestLoader_List(t *testing.T) {
	names, err := NewLoader().List()
	require.NoError(t, err)
	assert.Contains(t, names, MessageLoanReminder)
	assert.Contains(t, names, ToolHelpTemplate)
}
