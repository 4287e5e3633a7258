package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type update struct {
	Name  Field[string]   `json:"name"`
	Price Field[float64]  `json:"price"`
	Tags  Field[[]string] `json:"tags"`
}

func TestZeroValueIsUnset(t *testing.T) {
	var f Field[string]
	_, ok := f.Get()
	assert.False(t, ok)
	assert.False(t, f.IsSet())
}

func TestSetZeroValueIsSupplied(t *testing.T) {
	v, ok := Set(0.0).Get()
	assert.True(t, ok)
	assert.Zero(t, v)

	s, ok := Set("").Get()
	assert.True(t, ok)
	assert.Empty(t, s)
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantName  bool
		wantPrice bool
		wantTags  bool
	}{
		{name: "absent keys", body: `{}`},
		{name: "explicit zero and empty", body: `{"name":"","price":0,"tags":[]}`, wantName: true, wantPrice: true, wantTags: true},
		{name: "null is unset", body: `{"name":null,"price":12.5}`, wantPrice: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var u update
			require.NoError(t, json.Unmarshal([]byte(testCase.body), &u))
			assert.Equal(t, testCase.wantName, u.Name.IsSet())
			assert.Equal(t, testCase.wantPrice, u.Price.IsSet())
			assert.Equal(t, testCase.wantTags, u.Tags.IsSet())
		})
	}
}

func TestUnmarshalJSONTypeMismatch(t *testing.T) {
	var u update
	err := json.Unmarshal([]byte(`{"price":"cheap"}`), &u)
	assert.Error(t, err)
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(update{Price: Set(0.0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":null,"price":0,"tags":null}`, string(data))
}
