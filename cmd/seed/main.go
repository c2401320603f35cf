// seed crea los datos mínimos para un entorno nuevo: el usuario admin
// inicial y un par de catálogos de ejemplo. Idempotente: reejecutarlo no
// duplica nada.
//
// Uso: go run ./cmd/seed
// Variables: las mismas de la API (DATABASE_URL o DB_*), más
// SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD (obligatoria la segunda).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tejidosandina/rollos-api/internal/infrastructure/postgres"
	"github.com/tejidosandina/rollos-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@rollos.local"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_PASSWORD es requerido")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
		os.Exit(1)
	}

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, status)
		SELECT $1, $2, $3, 'Administrador', 'admin', 'active'
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE email = $2 AND deleted_at IS NULL)`,
		uuid.New().String(), adminEmail, string(hash),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed admin: %v\n", err)
		os.Exit(1)
	}
	if tag.RowsAffected() > 0 {
		fmt.Printf("admin creado: %s\n", adminEmail)
	} else {
		fmt.Printf("admin ya existe: %s\n", adminEmail)
	}

	// Los catálogos sembrados registran al admin como actor (el insert
	// anterior pudo ser no-op, así que el id se lee de vuelta).
	var adminID string
	err = pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`, adminEmail,
	).Scan(&adminID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer admin: %v\n", err)
		os.Exit(1)
	}

	catalogs := []struct {
		code, name, material string
	}{
		{"LIN-001", "Lino crudo", "lino"},
		{"ALG-001", "Algodón popelina", "algodón"},
		{"PES-001", "Poliéster sarga", "poliéster"},
	}
	for _, c := range catalogs {
		tag, err := pool.Exec(ctx, `
			INSERT INTO catalogs (id, code, name, material, status, created_by, updated_by)
			SELECT $1, $2, $3, $4, 'active', $5, $5
			WHERE NOT EXISTS (SELECT 1 FROM catalogs WHERE code = $2 AND deleted_at IS NULL)`,
			uuid.New().String(), c.code, c.name, c.material, adminID,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed catalog %s: %v\n", c.code, err)
			os.Exit(1)
		}
		if tag.RowsAffected() > 0 {
			fmt.Printf("catálogo creado: %s\n", c.code)
		}
	}
	fmt.Println("seed completo")
}
