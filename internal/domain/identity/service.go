package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"swipe-go/internal/domain/validation"
)

const defaultPrincipalTTL = 30 * time.Second

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		cache:    noopCache{},
		cacheTTL: defaultPrincipalTTL,
	}
}

// WithCache enables principal caching. A nil cache disables it.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = defaultPrincipalTTL
	}
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// Resolve loads the user and every attached profile in one pass.
func (s *Service) Resolve(ctx context.Context, userID int64) (Principal, error) {
	if cached, ok := s.cache.GetByUserID(ctx, userID); ok {
		return *cached, nil
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return Principal{}, err
	}
	if !user.IsActive {
		return Principal{}, ErrUserInactive
	}

	profiles, err := s.repo.GetProfileIDs(ctx, userID)
	if err != nil {
		return Principal{}, err
	}

	principal := Principal{
		UserID:      user.ID,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		ClientID:    profiles.ClientID,
		DeveloperID: profiles.DeveloperID,
		NotaryID:    profiles.NotaryID,
	}
	s.cache.SetByUserID(ctx, userID, &principal, s.cacheTTL)
	return principal, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// RegisterClient creates a user together with its client profile.
func (s *Service) RegisterClient(ctx context.Context, input RegisterInput) (*Client, error) {
	var result *Client
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := s.createUser(ctx, tx, input, false)
		if err != nil {
			return err
		}
		client, err := tx.GetClient(ctx, user.clientID)
		if err != nil {
			return err
		}
		result = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) RegisterDeveloper(ctx context.Context, input RegisterInput) (*Developer, error) {
	var result *Developer
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := s.createUser(ctx, tx, input, false)
		if err != nil {
			return err
		}
		developer := Developer{UserID: user.ID}
		if err := tx.CreateDeveloper(ctx, &developer); err != nil {
			return err
		}
		created, err := tx.GetDeveloper(ctx, developer.ID)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSuperuser registers an active staff superuser with a client profile.
func (s *Service) CreateSuperuser(ctx context.Context, input RegisterInput) (*User, error) {
	var result *User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := s.createUser(ctx, tx, input, true)
		if err != nil {
			return err
		}
		result = &user.User
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) CreateNotary(ctx context.Context, actor Principal, input RegisterInput) (*Notary, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var result *Notary
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := s.createUser(ctx, tx, input, false)
		if err != nil {
			return err
		}
		notary := Notary{UserID: user.ID}
		if err := tx.CreateNotary(ctx, &notary); err != nil {
			return err
		}
		created, err := tx.GetNotary(ctx, notary.ID)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) ListClients(ctx context.Context, actor Principal, page Page) ([]Client, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	return s.repo.ListClients(ctx, page)
}

func (s *Service) GetClient(ctx context.Context, clientID int64) (*Client, error) {
	return s.repo.GetClient(ctx, clientID)
}

func (s *Service) Me(ctx context.Context, actor Principal) (*Client, error) {
	if actor.ClientID == nil {
		return nil, ErrNoClientProfile
	}
	return s.repo.GetClient(ctx, *actor.ClientID)
}

// UpdateClient applies a partial update. Only the owner of the profile may
// edit it, admins included.
func (s *Service) UpdateClient(ctx context.Context, actor Principal, clientID int64, input ClientUpdate) (*Client, error) {
	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsClient(client.ID) {
		return nil, ErrForeignProfile
	}

	var result *Client
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := s.applyUserInput(ctx, tx, client.UserID, input.UserInput); err != nil {
			return err
		}
		if input.NotificationStatus != nil {
			var v validation.Error
			v.Choice("notification_status", *input.NotificationStatus, validation.Range(1, 4)...)
			if err := v.Err(); err != nil {
				return err
			}
			if err := tx.UpdateClient(ctx, client.ID, map[string]any{"notification_status": *input.NotificationStatus}); err != nil {
				return err
			}
		}
		updated, err := tx.GetClient(ctx, client.ID)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(ctx, client.UserID)
	return result, nil
}

func (s *Service) UpdateProfile(ctx context.Context, actor Principal, input ClientUpdate) (*Client, error) {
	if actor.ClientID == nil {
		return nil, ErrNoClientProfile
	}
	return s.UpdateClient(ctx, actor, *actor.ClientID, input)
}

// ToggleBlacklist flips the active flag of the client's user.
func (s *Service) ToggleBlacklist(ctx context.Context, actor Principal, clientID int64) (*Client, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var result *Client
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		client, err := tx.GetClient(ctx, clientID)
		if err != nil {
			return err
		}
		if err := tx.UpdateUser(ctx, client.UserID, map[string]any{"is_active": !client.User.IsActive}); err != nil {
			return err
		}
		updated, err := tx.GetClient(ctx, clientID)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(ctx, result.UserID)
	return result, nil
}

func (s *Service) ListDevelopers(ctx context.Context, page Page) ([]Developer, int64, error) {
	return s.repo.ListDevelopers(ctx, page)
}

func (s *Service) GetDeveloper(ctx context.Context, developerID int64) (*Developer, error) {
	return s.repo.GetDeveloper(ctx, developerID)
}

func (s *Service) UpdateDeveloper(ctx context.Context, actor Principal, developerID int64, input UserInput) (*Developer, error) {
	developer, err := s.repo.GetDeveloper(ctx, developerID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsDeveloperProfile(developer.ID) {
		return nil, ErrForbidden
	}

	var result *Developer
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := s.applyUserInput(ctx, tx, developer.UserID, input); err != nil {
			return err
		}
		updated, err := tx.GetDeveloper(ctx, developer.ID)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(ctx, developer.UserID)
	return result, nil
}

// DeleteDeveloper removes the developer profile. The user account stays.
func (s *Service) DeleteDeveloper(ctx context.Context, actor Principal, developerID int64) error {
	developer, err := s.repo.GetDeveloper(ctx, developerID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !actor.IsDeveloperProfile(developer.ID) {
		return ErrForbidden
	}
	if err := s.repo.DeleteDeveloper(ctx, developer.ID); err != nil {
		return err
	}
	s.cache.DeleteByUserID(ctx, developer.UserID)
	return nil
}

func (s *Service) ListNotaries(ctx context.Context, page Page) ([]Notary, int64, error) {
	return s.repo.ListNotaries(ctx, page)
}

func (s *Service) GetNotary(ctx context.Context, actor Principal, notaryID int64) (*Notary, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.GetNotary(ctx, notaryID)
}

func (s *Service) UpdateNotary(ctx context.Context, actor Principal, notaryID int64, input UserInput) (*Notary, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	notary, err := s.repo.GetNotary(ctx, notaryID)
	if err != nil {
		return nil, err
	}

	var result *Notary
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := s.applyUserInput(ctx, tx, notary.UserID, input); err != nil {
			return err
		}
		updated, err := tx.GetNotary(ctx, notary.ID)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(ctx, notary.UserID)
	return result, nil
}

func (s *Service) DeleteNotary(ctx context.Context, actor Principal, notaryID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	notary, err := s.repo.GetNotary(ctx, notaryID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteNotary(ctx, notary.ID); err != nil {
		return err
	}
	s.cache.DeleteByUserID(ctx, notary.UserID)
	return nil
}

type createdUser struct {
	User
	clientID int64
}

func (s *Service) createUser(ctx context.Context, tx Repository, input RegisterInput, superuser bool) (*createdUser, error) {
	input.Email = normalizeEmail(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	var v validation.Error
	v.Required("email", input.Email)
	v.Email("email", input.Email)
	v.Required("phone_number", input.PhoneNumber)
	v.Phone("phone_number", input.PhoneNumber)
	v.MaxLength("first_name", input.FirstName, 150)
	v.MaxLength("last_name", input.LastName, 150)
	v.Required("password", input.Password)
	if input.Password != input.Password2 {
		v.Add(validation.NonField, "Passwords do not match")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, tx, input.Email, input.PhoneNumber, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}
	if err := tx.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	client := Client{UserID: user.ID, NotificationStatus: DefaultNotificationMode}
	if err := tx.CreateClient(ctx, &client); err != nil {
		return nil, err
	}

	return &createdUser{User: user, clientID: client.ID}, nil
}

func (s *Service) applyUserInput(ctx context.Context, tx Repository, userID int64, input UserInput) error {
	fields := make(map[string]any)
	var v validation.Error

	var email, phone string
	if input.Email != nil {
		email = normalizeEmail(*input.Email)
		v.Email("email", email)
		fields["email"] = email
	}
	if input.PhoneNumber != nil {
		phone = strings.TrimSpace(*input.PhoneNumber)
		v.Phone("phone_number", phone)
		fields["phone_number"] = phone
	}
	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		v.MaxLength("first_name", name, 150)
		fields["first_name"] = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		v.MaxLength("last_name", name, 150)
		fields["last_name"] = name
	}
	if input.Password != nil {
		v.Required("password", *input.Password)
		if input.Password2 == nil || *input.Password != *input.Password2 {
			v.Add(validation.NonField, "Passwords do not match")
		}
	}
	if err := v.Err(); err != nil {
		return err
	}

	if err := s.checkUnique(ctx, tx, email, phone, userID); err != nil {
		return err
	}

	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return err
		}
		fields["password_hash"] = hash
	}

	if len(fields) == 0 {
		return nil
	}
	return tx.UpdateUser(ctx, userID, fields)
}

func (s *Service) checkUnique(ctx context.Context, tx Repository, email, phone string, exceptUserID int64) error {
	var v validation.Error
	if email != "" {
		taken, err := tx.IsEmailTaken(ctx, email, exceptUserID)
		if err != nil {
			return err
		}
		if taken {
			v.Add("email", "User with this email already exists.")
		}
	}
	if phone != "" {
		taken, err := tx.IsPhoneTaken(ctx, phone, exceptUserID)
		if err != nil {
			return err
		}
		if taken {
			v.Add("phone_number", "User with this phone number already exists.")
		}
	}
	return v.Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
