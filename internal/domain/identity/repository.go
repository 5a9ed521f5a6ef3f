package identity

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetUser(ctx context.Context, userID int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, userID int64, fields map[string]any) error
	IsEmailTaken(ctx context.Context, email string, exceptUserID int64) (bool, error)
	IsPhoneTaken(ctx context.Context, phone string, exceptUserID int64) (bool, error)
	GetProfileIDs(ctx context.Context, userID int64) (ProfileIDs, error)

	CreateClient(ctx context.Context, client *Client) error
	GetClient(ctx context.Context, clientID int64) (*Client, error)
	ListClients(ctx context.Context, page Page) ([]Client, int64, error)
	UpdateClient(ctx context.Context, clientID int64, fields map[string]any) error

	CreateDeveloper(ctx context.Context, developer *Developer) error
	GetDeveloper(ctx context.Context, developerID int64) (*Developer, error)
	ListDevelopers(ctx context.Context, page Page) ([]Developer, int64, error)
	DeleteDeveloper(ctx context.Context, developerID int64) error

	CreateNotary(ctx context.Context, notary *Notary) error
	GetNotary(ctx context.Context, notaryID int64) (*Notary, error)
	ListNotaries(ctx context.Context, page Page) ([]Notary, int64, error)
	DeleteNotary(ctx context.Context, notaryID int64) error
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
