package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

func TestWhereBuilder(t *testing.T) {
	from := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	f := repository.Filter{BatchID: "b1", From: &from, To: &to, Limit: 20, Offset: 40}

	var w where
	w.eq("flock_id", f.FlockID)
	w.eq("batch_id", f.BatchID)
	w.dateRange("date", f)
	page := w.page(f)

	assert.Equal(t, " WHERE batch_id = $1 AND date::date >= $2::date AND date::date <= $3::date", w.sql())
	assert.Equal(t, " LIMIT $4 OFFSET $5", page)
	assert.Equal(t, []any{"b1", "2024-03-01", "2024-03-31", 20, 40}, w.args)
}

func TestWhereEmpty(t *testing.T) {
	var w where
	assert.Equal(t, "", w.sql())
	assert.Equal(t, "", w.page(repository.Filter{}))
	assert.Empty(t, w.args)
}
