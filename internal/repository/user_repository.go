package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tawsila/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, email, phone, password_hash, display_name, roles, active_role,
			availability, trust_score, status, avatar_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.DisplayName,
		rolesToStrings(user.Roles),
		user.ActiveRole,
		user.Availability,
		user.TrustScore,
		user.Status,
		user.AvatarURL,
	)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, email, phone, password_hash, display_name, roles, active_role,
		       availability, trust_score, status, avatar_url, created_at, updated_at
		FROM users WHERE email = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT id, email, phone, password_hash, display_name, roles, active_role,
		       availability, trust_score, status, avatar_url, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// Update persists the mutable profile fields. Identity and credentials are
// written once at creation.
func (r *UserRepository) Update(ctx context.Context, user models.User) error {
	const query = `
		UPDATE users
		SET roles = $2, active_role = $3, availability = $4, trust_score = $5,
		    status = $6, avatar_url = $7, display_name = $8, phone = $9,
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		user.ID,
		rolesToStrings(user.Roles),
		user.ActiveRole,
		user.Availability,
		user.TrustScore,
		user.Status,
		user.AvatarURL,
		user.DisplayName,
		user.Phone,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateTrustScore(ctx context.Context, id string, score int) error {
	const query = `
		UPDATE users SET trust_score = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, score)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (models.User, error) {
	var (
		user  models.User
		roles []string
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.DisplayName,
		&roles,
		&user.ActiveRole,
		&user.Availability,
		&user.TrustScore,
		&user.Status,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	user.Roles = rolesFromStrings(roles)
	return user, nil
}

func rolesToStrings(roles []models.Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}

func rolesFromStrings(raw []string) []models.Role {
	out := make([]models.Role, 0, len(raw))
	for _, s := range raw {
		out = append(out, models.Role(s))
	}
	return out
}
