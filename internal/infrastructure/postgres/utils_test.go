package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("insert user_role: %w", &pgconn.PgError{Code: code})
	}

	assert.True(t, isUniqueViolation(wrap("23505")))
	assert.False(t, isUniqueViolation(wrap("23503")))

	assert.True(t, isForeignKeyViolation(wrap("23503")))
	assert.True(t, isInvalidUUID(wrap("22P02")))

	plain := errors.New("connection reset")
	assert.False(t, isUniqueViolation(plain))
	assert.False(t, isInvalidUUID(plain))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "https://img/1.jpg", nullIfEmpty("https://img/1.jpg"))
}
