package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

// UserAdapter implements user persistence in Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a user record.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	if user == nil {
		return apperrors.NewInternalError("user is nil", fmt.Errorf("user is nil"))
	}

	record := goqu.Record{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"created_at": user.CreatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return storeError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getByField(ctx, "id", id)
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getByField(ctx, "email", email)
}

func (a *UserAdapter) getByField(ctx context.Context, field, value string) (*entities.User, error) {
	query, args, err := a.db.Select(
		"id", "name", "email", "password", "created_at",
	).From("users").
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user := &entities.User{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with %s %s not found", field, value))
	}
	if err != nil {
		return nil, storeError("failed to get user", err)
	}

	return user, nil
}

// ExistsByEmail reports whether a user with the email is registered
func (a *UserAdapter) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("users").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build user exists query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, storeError("failed to check user existence", err)
	}

	return count > 0, nil
}
