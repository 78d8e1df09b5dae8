package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {

	query :=
		`INSERT INTO users (user_name, password, token)
         VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, user.UserName, user.PasswordHash, user.Token)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetUserByName(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT user_name, password, token FROM users
		 WHERE user_name = $1
		 `

	user := &models.User{}
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&user.UserName, &user.PasswordHash, &token)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Token = token.String

	return user, nil
}

func (r *PostgresRepository) UpdateToken(ctx context.Context, userName string, token string) error {
	query :=
		`UPDATE users SET token = $2
		 WHERE user_name = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userName, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
