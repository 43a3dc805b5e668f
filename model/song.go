package model

import (
	"database/sql"
	"time"
)

// Song is one row of the canciones table. Activo is the soft-delete flag:
// inactive songs are hidden from reads and from every mutation except restore.
type Song struct {
	ID               int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Titulo           string         `gorm:"column:cancion;type:varchar(255);not null"`
	Artista          string         `gorm:"column:artista;type:varchar(255);not null"`
	Duracion         int            `gorm:"column:duracion;not null"` // seconds
	Album            sql.NullString `gorm:"column:album;type:varchar(255)"`
	Anio             sql.NullInt64  `gorm:"column:anio"`
	FechaLanzamiento sql.NullTime   `gorm:"column:fecha_lanzamiento;type:date"`
	HoraEstreno      sql.NullString `gorm:"column:hora_estreno;type:time"`
	Descripcion      sql.NullString `gorm:"column:descripcion;type:text"`
	EmailContacto    sql.NullString `gorm:"column:email_contacto;type:varchar(255)"`
	Activo           bool           `gorm:"column:activo;not null;default:true"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

// TableName keeps the original table name used by the first deployment.
func (Song) TableName() string {
	return "canciones"
}

// Duration category labels.
const (
	CategoryShort  = "short"
	CategoryMedium = "medium"
	CategoryLong   = "long"
)

// Category thresholds in milliseconds. 120000 ms belongs to "medium" and
// 300000 ms belongs to "long".
const (
	shortMaxMs  = 120000
	mediumMaxMs = 300000
)

// The same thresholds rescaled to the stored unit (seconds), used by the
// list filter so the predicate and the stored value share one unit.
const (
	ShortMaxSeconds  = shortMaxMs / 1000
	MediumMaxSeconds = mediumMaxMs / 1000
)

// DurationCategory buckets a duration in seconds as short, medium or long.
func DurationCategory(seconds int) string {
	ms := seconds * 1000
	switch {
	case ms < shortMaxMs:
		return CategoryShort
	case ms < mediumMaxMs:
		return CategoryMedium
	default:
		return CategoryLong
	}
}

// SongResponse is the wire mapping of one canción. Nullable columns render
// as null, dates and times as ISO-like strings.
type SongResponse struct {
	ID                int64   `json:"id"`
	Titulo            string  `json:"titulo"`
	Artista           string  `json:"artista"`
	Duracion          int     `json:"duracion"`
	Album             *string `json:"album"`
	Anio              *int    `json:"anio"`
	Activo            bool    `json:"activo"`
	CategoriaDuracion string  `json:"categoria_duracion"`
	FechaLanzamiento  *string `json:"fecha_lanzamiento"`
	HoraEstreno       *string `json:"hora_estreno"`
	Descripcion       *string `json:"descripcion"`
	EmailContacto     *string `json:"email_contacto"`
}

// ToResponse shapes the song for the API. Pure data shaping, no side effects.
func (s *Song) ToResponse() *SongResponse {
	resp := &SongResponse{
		ID:                s.ID,
		Titulo:            s.Titulo,
		Artista:           s.Artista,
		Duracion:          s.Duracion,
		Activo:            s.Activo,
		CategoriaDuracion: DurationCategory(s.Duracion),
	}
	if s.Album.Valid {
		resp.Album = &s.Album.String
	}
	if s.Anio.Valid {
		anio := int(s.Anio.Int64)
		resp.Anio = &anio
	}
	if s.FechaLanzamiento.Valid {
		fecha := s.FechaLanzamiento.Time.Format("2006-01-02")
		resp.FechaLanzamiento = &fecha
	}
	if s.HoraEstreno.Valid {
		resp.HoraEstreno = &s.HoraEstreno.String
	}
	if s.Descripcion.Valid {
		resp.Descripcion = &s.Descripcion.String
	}
	if s.EmailContacto.Valid {
		resp.EmailContacto = &s.EmailContacto.String
	}
	return resp
}
