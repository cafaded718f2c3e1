package repository_test

import (
	"errors"
	"fmt"
	"resort/shared/constant"
	"resort/shared/repository"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	unique := fmt.Errorf("failed to insert data: %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation})
	fk := fmt.Errorf("failed to delete data: %w", &pq.Error{Code: constant.PqErrorCodeFkViolation})

	assert.True(t, repository.IsUniqueViolation(unique))
	assert.False(t, repository.IsUniqueViolation(fk))
	assert.True(t, repository.IsForeignKeyViolation(fk))
	assert.False(t, repository.IsForeignKeyViolation(errors.New("plain")))
	assert.False(t, repository.IsUniqueViolation(nil))
}
