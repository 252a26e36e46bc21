package repository

import (
	"context"

	"mentor-match/internal/database"
)

// MentorRow is one row of the mentor directory listing. Skills carries
// the comma-joined aggregate of the mentor's skill names; the textual
// aggregate is also what order_by=skill sorts on.
type MentorRow struct {
	ID       int64
	Email    string
	Name     string
	Bio      string
	HasImage bool
	Skills   string
}

type MentorListFilter struct {
	Skill   string
	OrderBy string
}

type MentorRepository interface {
	ListMentors(ctx context.Context, filter MentorListFilter) ([]MentorRow, error)
}

type PostgresMentorRepository struct {
	db database.DB
}

func NewPostgresMentorRepository(db database.DB) *PostgresMentorRepository {
	return &PostgresMentorRepository{db: db}
}

func (r *PostgresMentorRepository) ListMentors(ctx context.Context, filter MentorListFilter) ([]MentorRow, error) {
	query := `
		SELECT u.id, u.email, COALESCE(u.name, ''), COALESCE(u.bio, ''),
		       (u.profile_image IS NOT NULL) AS has_image,
		       COALESCE(string_agg(s.skill_name, ','), '') AS skills
		FROM users u
		LEFT JOIN skills s ON s.user_id = u.id
		WHERE u.role = 'mentor'`

	args := make([]any, 0, 1)
	if filter.Skill != "" {
		// LIKE is case sensitive in Postgres, which is the contract:
		// substring match against the stored skill name.
		query += `
		AND u.id IN (SELECT user_id FROM skills WHERE skill_name LIKE '%' || $1 || '%')`
		args = append(args, filter.Skill)
	}

	query += `
		GROUP BY u.id`

	switch filter.OrderBy {
	case "name":
		query += `
		ORDER BY u.name ASC`
	case "skill":
		query += `
		ORDER BY skills ASC`
	default:
		query += `
		ORDER BY u.id ASC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MentorRow, 0)
	for rows.Next() {
		var m MentorRow
		if err := rows.Scan(&m.ID, &m.Email, &m.Name, &m.Bio, &m.HasImage, &m.Skills); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
