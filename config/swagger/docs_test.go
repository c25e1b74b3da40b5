package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocIsRegisteredAndValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	paths := parsed["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/matches")
	assert.Contains(t, paths, "/matches/{match_id}/accept")
	assert.Contains(t, paths, "/matches/{match_id}/reject")
}
