package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyBlankAnswer(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		answer, sources := Apply(in, []string{"https://a.com"})
		assert.Equal(t, NotAvailableMessage, answer)
		assert.Empty(t, sources)
	}
}

func TestApplyNotAvailableDropsSources(t *testing.T) {
	in := "  " + NotAvailableMessage + "\n"
	answer, sources := Apply(in, []string{"https://a.com", "https://b.com"})
	assert.Equal(t, in, answer, "answer is kept unchanged")
	assert.Empty(t, sources)
	assert.True(t, IsNotAvailable(in))
}

func TestApplyNormalizesSources(t *testing.T) {
	answer, sources := Apply("Jakarta", []string{"http://a.com/", "https://www.a.com"})
	assert.Equal(t, "Jakarta", answer)
	assert.Equal(t, []string{"https://a.com"}, sources)
}

func TestApplyNoSources(t *testing.T) {
	answer, sources := Apply("Jakarta", nil)
	assert.Equal(t, "Jakarta", answer)
	assert.Empty(t, sources)
	assert.NotNil(t, sources)
}
