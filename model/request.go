package model

// CreateSongRequest is the POST /canciones payload. Optional fields use the
// presence-aware types so an explicit null and an absent key both map to a
// NULL column.
type CreateSongRequest struct {
	Titulo           string         `json:"titulo"`
	Artista          string         `json:"artista"`
	Duracion         int            `json:"duracion"` // seconds
	Album            OptionalString `json:"album"`
	Anio             OptionalInt    `json:"anio"`
	FechaLanzamiento OptionalString `json:"fecha_lanzamiento"`
	HoraEstreno      OptionalString `json:"hora_estreno"`
	Descripcion      OptionalString `json:"descripcion"`
	EmailContacto    OptionalString `json:"email_contacto"`
}

// UpdateSongRequest is the PUT /canciones/{id} payload. Every field is
// optional; only keys present in the body change the record.
type UpdateSongRequest struct {
	Titulo           OptionalString `json:"titulo"`
	Artista          OptionalString `json:"artista"`
	Duracion         OptionalInt    `json:"duracion"`
	Album            OptionalString `json:"album"`
	Anio             OptionalInt    `json:"anio"`
	FechaLanzamiento OptionalString `json:"fecha_lanzamiento"`
	HoraEstreno      OptionalString `json:"hora_estreno"`
	Descripcion      OptionalString `json:"descripcion"`
	EmailContacto    OptionalString `json:"email_contacto"`
	Activo           OptionalBool   `json:"activo"`
}
