package db

import (
	"database/sql"
	"fmt"

	"cancionero/config"
	"cancionero/logger"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Successfully connected to the database",
		logger.String("host", cfg.DBHost),
		logger.String("database", cfg.DBName))
	return nil
}

// InitDB initializes the database schema, creating the canciones table if it
// does not exist. The migrate subcommand covers structural changes to an
// existing table.
func InitDB() error {
	if err := createCancionesTable(); err != nil {
		return err
	}
	logger.Info("Base de datos inicializada")
	return nil
}

func createCancionesTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS canciones (
		id INT AUTO_INCREMENT PRIMARY KEY,
		cancion VARCHAR(255) NOT NULL,
		artista VARCHAR(255) NOT NULL,
		duracion INT NOT NULL,
		album VARCHAR(255),
		anio INT,
		fecha_lanzamiento DATE,
		hora_estreno TIME,
		descripcion TEXT,
		email_contacto VARCHAR(255),
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);
	`
	_, err := DB.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create canciones table: %w", err)
	}
	return nil
}
