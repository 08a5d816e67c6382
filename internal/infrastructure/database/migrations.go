package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations aplica as migrações pendentes do diretório migrations/.
// Chamado na subida do processo, antes do servidor aceitar requisições;
// qualquer falha aqui deve abortar a inicialização.
func RunMigrations(cfg *PostgresConfig) error {
	migrationsPath := getEnv("MIGRATIONS_PATH", "migrations")
	if _, err := os.Stat(migrationsPath); err != nil {
		return fmt.Errorf("diretório de migrações inacessível: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", migrationsPath)

	m, err := migrate.New(sourceURL, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	return nil
}
