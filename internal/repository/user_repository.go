package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"mentor-match/internal/database"
	"mentor-match/internal/domain/user"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateWithSkills(ctx context.Context, u user.User, skills []string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int64
	row := tx.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, role, bio)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		 RETURNING id`,
		u.Email, u.PasswordHash, u.Name, string(u.Role), u.Bio,
	)
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, user.ErrEmailTaken
		}
		return 0, err
	}

	for _, s := range skills {
		name := strings.TrimSpace(s)
		if name == "" {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (user_id, skill_name) VALUES ($1, $2)`,
			id, name,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, COALESCE(name, ''), role, COALESCE(bio, ''), profile_image, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, COALESCE(name, ''), role, COALESCE(bio, ''), profile_image, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateProfile runs the user update and the skill replacement in one
// transaction so a concurrent read never observes the deleted-but-not-
// reinserted skill set as a final state.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int64, upd user.ProfileUpdate, skills []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE users
		 SET name = $1, bio = NULLIF($2, ''), profile_image = $3, updated_at = now()
		 WHERE id = $4`,
		upd.Name, upd.Bio, upd.Image, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}

	if skills != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE user_id = $1`, id); err != nil {
			return err
		}
		for _, s := range skills {
			name := strings.TrimSpace(s)
			if name == "" {
				continue
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO skills (user_id, skill_name) VALUES ($1, $2)`,
				id, name,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserRepository) ListSkills(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill_name FROM skills WHERE user_id = $1 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) GetImage(ctx context.Context, id int64, role user.Role) ([]byte, error) {
	var img []byte
	row := r.db.QueryRow(ctx,
		`SELECT profile_image FROM users WHERE id = $1 AND role = $2`,
		id, string(role),
	)
	if err := row.Scan(&img); err != nil {
		if isNoRows(err) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return img, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.Bio, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
