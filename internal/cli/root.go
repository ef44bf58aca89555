package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

// MigrationRunner is the part of repository.Migrator the CLI drives.
type MigrationRunner interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
}

type Context struct {
	Out      io.Writer
	Stats    *services.StatsService
	Migrator MigrationRunner
}

// parseDay accepts YYYY-MM-DD or "today". Today yields the zero Date, which
// the stats service resolves in the configured timezone.
func parseDay(s string) (domain.Date, error) {
	if s == "" || strings.EqualFold(s, "today") {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today': %w", s, err)
	}
	return d, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
