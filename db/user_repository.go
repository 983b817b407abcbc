package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ticketchain/entities"

	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateOrGet(ctx context.Context, user entities.User) (entities.User, error)
	ByWallet(ctx context.Context, walletAddress string) (entities.User, error)
}

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) UserRepository {
	if db == nil {
		panic("db is nil")
	}
	return UserRepository{
		db: db,
	}
}

// CreateOrGet registers a user by wallet address. Registration is
// idempotent: a second call with the same wallet returns the existing
// row untouched.
func (ur UserRepository) CreateOrGet(ctx context.Context, user entities.User) (entities.User, error) {
	user.UserID = uuid.New()
	if user.Role == "" {
		user.Role = entities.UserRoleBuyer
	}

	_, err := ur.db.Conn.NamedExecContext(
		ctx,
		`
		INSERT INTO
			users (user_id, wallet_address, display_name, email, role)
		VALUES
			(:user_id, :wallet_address, :display_name, :email, :role)
		ON CONFLICT (wallet_address) DO NOTHING`,
		user,
	)
	if err != nil {
		return entities.User{}, fmt.Errorf("could not save user: %w", err)
	}

	return ur.ByWallet(ctx, user.WalletAddress)
}

func (ur UserRepository) ByWallet(ctx context.Context, walletAddress string) (entities.User, error) {
	var user entities.User
	err := ur.db.Conn.GetContext(ctx, &user, `
		SELECT
			*
		FROM
			users
		WHERE
			wallet_address = $1`, walletAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, ErrNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("could not get user: %w", err)
	}

	return user, nil
}
