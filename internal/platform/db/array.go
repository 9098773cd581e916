package db

import (
	"sync"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	typeMapMu sync.Mutex
	typeMap   = pgtype.NewMap()
)

// TextArray scans a postgres text[] column through database/sql.
type TextArray []string

func (a *TextArray) Scan(src any) error {
	if src == nil {
		*a = TextArray{}
		return nil
	}

	typeMapMu.Lock()
	defer typeMapMu.Unlock()

	dst := (*[]string)(a)
	if err := typeMap.SQLScanner(dst).Scan(src); err != nil {
		return err
	}
	if *a == nil {
		*a = TextArray{}
	}
	return nil
}
