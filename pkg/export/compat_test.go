package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCompatibility(t *testing.T) {
	clean := `<!doctype html><html xmlns:v="urn:schemas-microsoft-com:vml"><!--[if mso]><![endif]--></html>`
	assert.Empty(t, CheckCompatibility(clean))

	issues := CheckCompatibility(`<div style="display: flex"><img src="data:image/png;base64,AA"></div>`)
	assert.Contains(t, issues, "Missing DOCTYPE declaration")
	assert.Contains(t, issues, "WARNING: CSS flexbox not supported in many email clients")
	assert.Contains(t, issues, "WARNING: Inline data: images are blocked by several email clients")
}
