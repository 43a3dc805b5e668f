package cmd

import (
	"fmt"
	"log"

	"cancionero/cache"
	"cancionero/config"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Prueba la conexión a Redis",
	Long:  `Comprueba que Redis responde y realiza operaciones básicas de lectura y escritura.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Probando la conexión a Redis...")

		cfg := config.Load()
		fmt.Printf("Configuración de Redis: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		if err := cache.ConnectRedis(cfg); err != nil {
			log.Fatalf("No se pudo conectar a Redis: %v", err)
		}
		fmt.Println("Conexión a Redis establecida.")

		if err := cache.TestRedis(); err != nil {
			log.Fatalf("Las operaciones básicas de Redis fallaron: %v", err)
		}
		fmt.Println("Operaciones básicas de Redis correctas.")

		if err := cache.CloseRedis(); err != nil {
			log.Printf("Error al cerrar la conexión a Redis: %v", err)
		}
		fmt.Println("Prueba de Redis completada.")
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
