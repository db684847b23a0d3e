// Утилита миграций базы данных: применяет goose миграции из каталога
// migrations по конфигурации сервиса.
//
// Использование:
//
//	go run ./cmd/migrate [up|down|status|version]
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/migrations"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Printf("Failed to set goose dialect: %v\n", err)
		os.Exit(1)
	}

	goose.SetBaseFS(migrations.FS)

	ctx := context.Background()

	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			fmt.Printf("Current migration version: %d\n", version)
		}
	default:
		fmt.Printf("Unknown command %q, expected up, down, status or version\n", command)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Migration command %q failed: %v\n", command, err)
		os.Exit(1)
	}
}
