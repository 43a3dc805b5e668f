package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalFieldsDistinguishAbsentAndNull(t *testing.T) {
	type payload struct {
		Nombre OptionalString `json:"nombre"`
		Numero OptionalInt    `json:"numero"`
		Activo OptionalBool   `json:"activo"`
	}

	t.Run("absent keys stay unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Nombre.Set)
		assert.False(t, p.Numero.Set)
		assert.False(t, p.Activo.Set)
	})

	t.Run("explicit null is set but not valid", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"nombre":null,"numero":null,"activo":null}`), &p))
		assert.True(t, p.Nombre.Set)
		assert.False(t, p.Nombre.Valid)
		assert.True(t, p.Numero.Set)
		assert.False(t, p.Numero.Valid)
		assert.True(t, p.Activo.Set)
		assert.False(t, p.Activo.Valid)
	})

	t.Run("values are set and valid", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"nombre":"hola","numero":42,"activo":true}`), &p))
		assert.True(t, p.Nombre.Set)
		assert.True(t, p.Nombre.Valid)
		assert.Equal(t, "hola", p.Nombre.Value)
		assert.True(t, p.Numero.Valid)
		assert.Equal(t, 42, p.Numero.Value)
		assert.True(t, p.Activo.Valid)
		assert.True(t, p.Activo.Value)
	})

	t.Run("mistyped values fail decoding", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"numero":"cuarenta"}`), &p))
		assert.Error(t, json.Unmarshal([]byte(`{"numero":12.5}`), &p))
		assert.Error(t, json.Unmarshal([]byte(`{"activo":"si"}`), &p))
	})
}
