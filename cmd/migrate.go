package cmd

import (
	"fmt"
	"log"

	"cancionero/config"
	"cancionero/db"
	"cancionero/model"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migra el esquema de la base de datos",
	Long:  `Aplica la migración del esquema de la tabla canciones mediante GORM AutoMigrate.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Iniciando migración de la base de datos...")

		cfg := config.Load()
		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("No se pudo conectar a la base de datos: %v", err)
		}
		defer db.CloseGormDB()

		if err := db.AutoMigrateModels(&model.Song{}); err != nil {
			log.Fatalf("La migración falló: %v", err)
		}

		fmt.Println("Migración completada.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
