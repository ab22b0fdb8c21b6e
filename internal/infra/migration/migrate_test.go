//go:build unit

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", toPgx5URL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@h/db", toPgx5URL("postgresql://u:p@h/db"))
	assert.Equal(t, "pgx5://already", toPgx5URL("pgx5://already"))
}
