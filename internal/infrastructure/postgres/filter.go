package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// where acumula condiciones y argumentos posicionales ($1, $2, ...).
type where struct {
	conds []string
	args  []any
}

// add agrega una condición con un marcador "?" que se reemplaza por el siguiente $n.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

// eq agrega "col = valor" solo si el valor no está vacío.
func (w *where) eq(col, val string) {
	if val != "" {
		w.add(col+" = ?", val)
	}
}

// dateRange filtra por fecha (solo día) dentro de [From, To].
func (w *where) dateRange(col string, f repository.Filter) {
	if f.From != nil {
		w.add(col+"::date >= ?::date", dayOf(*f.From))
	}
	if f.To != nil {
		w.add(col+"::date <= ?::date", dayOf(*f.To))
	}
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET; Limit 0 significa sin límite.
func (w *where) page(f repository.Filter) string {
	var b strings.Builder
	if f.Limit > 0 {
		w.args = append(w.args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(w.args))
	}
	if f.Offset > 0 {
		w.args = append(w.args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(w.args))
	}
	return b.String()
}

func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
