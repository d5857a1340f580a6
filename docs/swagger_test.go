package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	// Act
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())

	// Assert
	assert.NoError(t, err)

	var spec map[string]interface{}
	err = json.Unmarshal([]byte(doc), &spec)
	assert.NoError(t, err)

	info, ok := spec["info"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "TaskHub API", info["title"])

	paths, ok := spec["paths"].(map[string]interface{})
	assert.True(t, ok)
	assert.Contains(t, paths, "/register")
	assert.Contains(t, paths, "/login")
	assert.Contains(t, paths, "/projects/{id}/members")
	assert.Contains(t, paths, "/tasks/{id}/comments")
}
