package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ReplaceLinks swaps ownerID's rows in an association table for tagIDs.
// Rows are inserted in slice order, so serial ids follow it.
func ReplaceLinks(ctx context.Context, tx pgx.Tx, table, ownerCol, tagCol string, ownerID int64, tagIDs []int64) error {
	if _, err := tx.Exec(ctx, `delete from `+table+` where `+ownerCol+` = $1;`, ownerID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	q := `
insert into ` + table + ` (` + ownerCol + `, ` + tagCol + `)
select $1, t.id from unnest($2::bigint[]) with ordinality as t(id, ord)
order by t.ord
on conflict do nothing;
`
	if _, err := tx.Exec(ctx, q, ownerID, tagIDs); err != nil {
		return fmt.Errorf("link %s: %w", table, err)
	}
	return nil
}
