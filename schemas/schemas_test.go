package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestSeedSchema_ValidJSON(t *testing.T) {
	require.NotEmpty(t, Seed)

	var v map[string]any
	require.NoError(t, json.Unmarshal(Seed, &v), "schema file should be valid JSON")
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
	assert.Contains(t, v, "definitions")
}

func TestSeedSchema_Compiles(t *testing.T) {
	_, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(Seed))
	assert.NoError(t, err)
}
