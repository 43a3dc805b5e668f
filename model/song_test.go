package model

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationCategory(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"one second", 1, CategoryShort},
		{"ninety seconds", 90, CategoryShort},
		{"just below the short boundary", 119, CategoryShort},
		{"exactly 120000 ms is medium", 120, CategoryMedium},
		{"mid bucket", 150, CategoryMedium},
		{"just below the medium boundary", 299, CategoryMedium},
		{"exactly 300000 ms is long", 300, CategoryLong},
		{"well past the boundary", 3600, CategoryLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationCategory(tt.seconds))
		})
	}
}

func TestToResponseFullRecord(t *testing.T) {
	fecha := time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)
	song := &Song{
		ID:               7,
		Titulo:           "La Canción",
		Artista:          "El Artista",
		Duracion:         200,
		Album:            sql.NullString{String: "El Álbum", Valid: true},
		Anio:             sql.NullInt64{Int64: 2021, Valid: true},
		FechaLanzamiento: sql.NullTime{Time: fecha, Valid: true},
		HoraEstreno:      sql.NullString{String: "20:30:00", Valid: true},
		Descripcion:      sql.NullString{String: "Una descripción", Valid: true},
		EmailContacto:    sql.NullString{String: "contacto@ejemplo.com", Valid: true},
		Activo:           true,
	}

	resp := song.ToResponse()

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "La Canción", resp.Titulo)
	assert.Equal(t, "El Artista", resp.Artista)
	assert.Equal(t, 200, resp.Duracion)
	assert.Equal(t, CategoryMedium, resp.CategoriaDuracion)
	assert.True(t, resp.Activo)

	require.NotNil(t, resp.Album)
	assert.Equal(t, "El Álbum", *resp.Album)
	require.NotNil(t, resp.Anio)
	assert.Equal(t, 2021, *resp.Anio)
	require.NotNil(t, resp.FechaLanzamiento)
	assert.Equal(t, "2021-06-15", *resp.FechaLanzamiento)
	require.NotNil(t, resp.HoraEstreno)
	assert.Equal(t, "20:30:00", *resp.HoraEstreno)
	require.NotNil(t, resp.Descripcion)
	assert.Equal(t, "Una descripción", *resp.Descripcion)
	require.NotNil(t, resp.EmailContacto)
	assert.Equal(t, "contacto@ejemplo.com", *resp.EmailContacto)
}

func TestToResponseRendersAbsentFieldsAsNull(t *testing.T) {
	song := &Song{
		ID:       3,
		Titulo:   "Minimal",
		Artista:  "Someone",
		Duracion: 90,
		Activo:   false,
	}

	payload, err := json.Marshal(song.ToResponse())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Nil(t, decoded["album"])
	assert.Nil(t, decoded["anio"])
	assert.Nil(t, decoded["fecha_lanzamiento"])
	assert.Nil(t, decoded["hora_estreno"])
	assert.Nil(t, decoded["descripcion"])
	assert.Nil(t, decoded["email_contacto"])
	// activo must serialize as a strict boolean
	assert.Equal(t, false, decoded["activo"])
	assert.Equal(t, "short", decoded["categoria_duracion"])
}
