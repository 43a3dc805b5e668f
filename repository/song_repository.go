package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cancionero/logger"
	"cancionero/model"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors for the handler-facing taxonomy. Anything else coming out
// of the repository maps to an internal error.
var (
	ErrNotFound = errors.New("canción no encontrada")
	ErrConflict = errors.New("conflicto de integridad de datos")
)

// DurationFilter restricts the list operation to one duration bucket.
type DurationFilter string

const (
	FilterNone   DurationFilter = ""
	FilterShort  DurationFilter = model.CategoryShort
	FilterMedium DurationFilter = model.CategoryMedium
	FilterLong   DurationFilter = model.CategoryLong
)

// Tx is an in-flight transaction. *sql.Tx satisfies it; tests substitute a
// no-op implementation.
type Tx interface {
	Commit() error
	Rollback() error
}

// SongRepository defines the interface for song data operations. Mutations
// run inside a caller-owned transaction: acquire with BeginTx, commit on the
// success path, roll back on any error exit.
type SongRepository interface {
	BeginTx(ctx context.Context) (Tx, error)
	CreateSongWithTx(ctx context.Context, tx Tx, song *model.Song) (int64, error)
	GetSongByID(ctx context.Context, id int64, active bool) (*model.Song, error)
	GetSongByIDWithTx(ctx context.Context, tx Tx, id int64, active bool) (*model.Song, error)
	ListActiveSongs(ctx context.Context, filter DurationFilter) ([]*model.Song, error)
	UpdateSongWithTx(ctx context.Context, tx Tx, song *model.Song) error
	SetSongActiveWithTx(ctx context.Context, tx Tx, id int64, active bool) error
}

// mysqlSongRepository implements SongRepository for MySQL.
type mysqlSongRepository struct {
	db *sql.DB
}

// NewMySQLSongRepository creates a new instance of mysqlSongRepository.
func NewMySQLSongRepository(db *sql.DB) SongRepository {
	return &mysqlSongRepository{db: db}
}

const songColumns = `id, cancion, artista, duracion, album, anio, fecha_lanzamiento, hora_estreno, descripcion, email_contacto, activo, created_at, updated_at`

// mysqlErrDuplicateEntry is the server error number for a violated UNIQUE key.
const mysqlErrDuplicateEntry = 1062

// translateExecError maps integrity violations to ErrConflict and wraps
// everything else with the failing operation.
func translateExecError(op string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return fmt.Errorf("failed to execute %s: %w", op, err)
}

func sqlTxFrom(tx Tx) (*sql.Tx, error) {
	sqlTx, ok := tx.(*sql.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	return sqlTx, nil
}

// BeginTx starts a new transaction.
func (r *mysqlSongRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateSongWithTx inserts a new song inside the given transaction and
// returns the generated id.
func (r *mysqlSongRepository) CreateSongWithTx(ctx context.Context, tx Tx, song *model.Song) (int64, error) {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO canciones (cancion, artista, duracion, album, anio, fecha_lanzamiento, hora_estreno, descripcion, email_contacto, activo, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	res, err := sqlTx.ExecContext(ctx, query,
		song.Titulo, song.Artista, song.Duracion,
		song.Album, song.Anio, song.FechaLanzamiento, song.HoraEstreno,
		song.Descripcion, song.EmailContacto, song.Activo, now, now,
	)
	if err != nil {
		return 0, translateExecError("CreateSong", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateSong: %w", err)
	}
	logger.Info("Song created", logger.Int64("songId", id), logger.String("titulo", song.Titulo))
	return id, nil
}

func scanSong(row *sql.Row) (*model.Song, error) {
	song := &model.Song{}
	err := row.Scan(
		&song.ID, &song.Titulo, &song.Artista, &song.Duracion,
		&song.Album, &song.Anio, &song.FechaLanzamiento, &song.HoraEstreno,
		&song.Descripcion, &song.EmailContacto, &song.Activo,
		&song.CreatedAt, &song.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // song not found
		}
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return song, nil
}

// GetSongByID retrieves a song by id constrained to the given activity state.
// An inactive song queried with active=true is indistinguishable from an
// absent one.
func (r *mysqlSongRepository) GetSongByID(ctx context.Context, id int64, active bool) (*model.Song, error) {
	query := `SELECT ` + songColumns + ` FROM canciones WHERE id = ? AND activo = ?`
	return scanSong(r.db.QueryRowContext(ctx, query, id, active))
}

// GetSongByIDWithTx is GetSongByID inside the given transaction, for
// lookup-then-mutate sequences.
func (r *mysqlSongRepository) GetSongByIDWithTx(ctx context.Context, tx Tx, id int64, active bool) (*model.Song, error) {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + songColumns + ` FROM canciones WHERE id = ? AND activo = ?`
	return scanSong(sqlTx.QueryRowContext(ctx, query, id, active))
}

// ListActiveSongs retrieves active songs, optionally restricted to one
// duration bucket. The predicate compares stored seconds against the
// category thresholds rescaled to seconds.
func (r *mysqlSongRepository) ListActiveSongs(ctx context.Context, filter DurationFilter) ([]*model.Song, error) {
	query := `SELECT ` + songColumns + ` FROM canciones WHERE activo = TRUE`
	args := []interface{}{}

	switch filter {
	case FilterShort:
		query += ` AND duracion < ?`
		args = append(args, model.ShortMaxSeconds)
	case FilterMedium:
		query += ` AND duracion >= ? AND duracion < ?`
		args = append(args, model.ShortMaxSeconds, model.MediumMaxSeconds)
	case FilterLong:
		query += ` AND duracion >= ?`
		args = append(args, model.MediumMaxSeconds)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		song := &model.Song{}
		err := rows.Scan(
			&song.ID, &song.Titulo, &song.Artista, &song.Duracion,
			&song.Album, &song.Anio, &song.FechaLanzamiento, &song.HoraEstreno,
			&song.Descripcion, &song.EmailContacto, &song.Activo,
			&song.CreatedAt, &song.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song in ListActiveSongs: %w", err)
		}
		songs = append(songs, song)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in ListActiveSongs: %w", err)
	}

	return songs, nil
}

// UpdateSongWithTx overwrites every editable column of the song row inside
// the given transaction. Partial-update semantics are resolved by the caller
// before this point.
func (r *mysqlSongRepository) UpdateSongWithTx(ctx context.Context, tx Tx, song *model.Song) error {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return err
	}

	query := `UPDATE canciones
	           SET cancion = ?, artista = ?, duracion = ?, album = ?, anio = ?, fecha_lanzamiento = ?, hora_estreno = ?, descripcion = ?, email_contacto = ?, activo = ?, updated_at = ?
	           WHERE id = ?`

	res, err := sqlTx.ExecContext(ctx, query,
		song.Titulo, song.Artista, song.Duracion,
		song.Album, song.Anio, song.FechaLanzamiento, song.HoraEstreno,
		song.Descripcion, song.EmailContacto, song.Activo, time.Now(), song.ID,
	)
	if err != nil {
		return translateExecError("UpdateSong", err)
	}

	// RowsAffected is zero both for a missing row and for a no-op update, so
	// it only guards the former when the caller skipped the lookup.
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read affected rows for UpdateSong: %w", err)
	}
	return nil
}

// SetSongActiveWithTx flips the soft-delete flag inside the given
// transaction. Returns ErrNotFound if no row in the opposite state exists.
func (r *mysqlSongRepository) SetSongActiveWithTx(ctx context.Context, tx Tx, id int64, active bool) error {
	sqlTx, err := sqlTxFrom(tx)
	if err != nil {
		return err
	}

	query := `UPDATE canciones SET activo = ?, updated_at = ? WHERE id = ? AND activo = ?`
	res, err := sqlTx.ExecContext(ctx, query, active, time.Now(), id, !active)
	if err != nil {
		return translateExecError("SetSongActive", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for SetSongActive: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
