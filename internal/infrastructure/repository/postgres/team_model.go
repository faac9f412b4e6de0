package postgres

import (
	"time"

	"github.com/northcourt/club-api/internal/domain/team"
)

type teamTableModel struct {
	ID        string    `db:"id"`
	Gender    string    `db:"gender"`
	AgeGroup  string    `db:"age_group"`
	CreatedAt time.Time `db:"created_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:        row.ID,
		Gender:    row.Gender,
		AgeGroup:  row.AgeGroup,
		CreatedAt: row.CreatedAt,
	}
}
