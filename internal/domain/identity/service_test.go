package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"swipe-go/internal/domain/validation"
)

type fakeIdentityRepo struct {
	nextID     int64
	users      map[int64]*User
	clients    map[int64]*Client
	developers map[int64]*Developer
	notaries   map[int64]*Notary
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{
		users:      make(map[int64]*User),
		clients:    make(map[int64]*Client),
		developers: make(map[int64]*Developer),
		notaries:   make(map[int64]*Notary),
	}
}

func (r *fakeIdentityRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *fakeIdentityRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeIdentityRepo) GetUser(ctx context.Context, userID int64) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeIdentityRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeIdentityRepo) CreateUser(ctx context.Context, user *User) error {
	user.ID = r.id()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeIdentityRepo) UpdateUser(ctx context.Context, userID int64, fields map[string]any) error {
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	for key, value := range fields {
		switch key {
		case "is_active":
			user.IsActive = value.(bool)
		case "email":
			user.Email = value.(string)
		case "first_name":
			user.FirstName = value.(string)
		case "password_hash":
			user.PasswordHash = value.(string)
		}
	}
	return nil
}

func (r *fakeIdentityRepo) IsEmailTaken(ctx context.Context, email string, exceptUserID int64) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != exceptUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeIdentityRepo) IsPhoneTaken(ctx context.Context, phone string, exceptUserID int64) (bool, error) {
	for _, user := range r.users {
		if user.PhoneNumber == phone && user.ID != exceptUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeIdentityRepo) GetProfileIDs(ctx context.Context, userID int64) (ProfileIDs, error) {
	var ids ProfileIDs
	for _, client := range r.clients {
		if client.UserID == userID {
			id := client.ID
			ids.ClientID = &id
		}
	}
	for _, developer := range r.developers {
		if developer.UserID == userID {
			id := developer.ID
			ids.DeveloperID = &id
		}
	}
	for _, notary := range r.notaries {
		if notary.UserID == userID {
			id := notary.ID
			ids.NotaryID = &id
		}
	}
	return ids, nil
}

func (r *fakeIdentityRepo) CreateClient(ctx context.Context, client *Client) error {
	client.ID = r.id()
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeIdentityRepo) GetClient(ctx context.Context, clientID int64) (*Client, error) {
	client, ok := r.clients[clientID]
	if !ok {
		return nil, ErrClientNotFound
	}
	copied := *client
	copied.User = *r.users[client.UserID]
	return &copied, nil
}

func (r *fakeIdentityRepo) ListClients(ctx context.Context, page Page) ([]Client, int64, error) {
	result := make([]Client, 0, len(r.clients))
	for _, client := range r.clients {
		result = append(result, *client)
	}
	return result, int64(len(result)), nil
}

func (r *fakeIdentityRepo) UpdateClient(ctx context.Context, clientID int64, fields map[string]any) error {
	client, ok := r.clients[clientID]
	if !ok {
		return ErrClientNotFound
	}
	if status, ok := fields["notification_status"]; ok {
		client.NotificationStatus = status.(string)
	}
	return nil
}

func (r *fakeIdentityRepo) CreateDeveloper(ctx context.Context, developer *Developer) error {
	developer.ID = r.id()
	copied := *developer
	r.developers[developer.ID] = &copied
	return nil
}

func (r *fakeIdentityRepo) GetDeveloper(ctx context.Context, developerID int64) (*Developer, error) {
	developer, ok := r.developers[developerID]
	if !ok {
		return nil, ErrDeveloperNotFound
	}
	copied := *developer
	return &copied, nil
}

func (r *fakeIdentityRepo) ListDevelopers(ctx context.Context, page Page) ([]Developer, int64, error) {
	return nil, 0, nil
}

func (r *fakeIdentityRepo) DeleteDeveloper(ctx context.Context, developerID int64) error {
	delete(r.developers, developerID)
	return nil
}

func (r *fakeIdentityRepo) CreateNotary(ctx context.Context, notary *Notary) error {
	notary.ID = r.id()
	copied := *notary
	r.notaries[notary.ID] = &copied
	return nil
}

func (r *fakeIdentityRepo) GetNotary(ctx context.Context, notaryID int64) (*Notary, error) {
	notary, ok := r.notaries[notaryID]
	if !ok {
		return nil, ErrNotaryNotFound
	}
	copied := *notary
	return &copied, nil
}

func (r *fakeIdentityRepo) ListNotaries(ctx context.Context, page Page) ([]Notary, int64, error) {
	return nil, 0, nil
}

func (r *fakeIdentityRepo) DeleteNotary(ctx context.Context, notaryID int64) error {
	delete(r.notaries, notaryID)
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type countingCache struct {
	items   map[int64]Principal
	deletes int
}

func (c *countingCache) GetByUserID(ctx context.Context, userID int64) (*Principal, bool) {
	p, ok := c.items[userID]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (c *countingCache) SetByUserID(ctx context.Context, userID int64, principal *Principal, ttl time.Duration) {
	c.items[userID] = *principal
}

func (c *countingCache) DeleteByUserID(ctx context.Context, userID int64) {
	c.deletes++
	delete(c.items, userID)
}

func registerInput(email, phone string) RegisterInput {
	return RegisterInput{
		Email:       email,
		PhoneNumber: phone,
		FirstName:   "Ivan",
		LastName:    "Petrenko",
		Password:    "secret-pass",
		Password2:   "secret-pass",
	}
}

func TestRegisterClientCreatesClientProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeIdentityRepo()
	service := NewService(repo, plainHasher{})

	client, err := service.RegisterClient(ctx, registerInput("Ivan@Example.com", "0931350239"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if client.NotificationStatus != DefaultNotificationMode {
		t.Fatalf("expected default notification status, got %q", client.NotificationStatus)
	}
	if client.User.Email != "ivan@example.com" {
		t.Fatalf("expected normalized email, got %q", client.User.Email)
	}

	principal, err := service.Resolve(ctx, client.UserID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if principal.Kind() != RoleClient {
		t.Fatalf("expected client role, got %s", principal.Kind())
	}
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	service := NewService(newFakeIdentityRepo(), plainHasher{})
	input := registerInput("a@example.com", "0931350239")
	input.Password2 = "other"

	_, err := service.RegisterClient(context.Background(), input)
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields[validation.NonField]; !ok {
		t.Fatalf("expected non field error, got %v", verr.Fields)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeIdentityRepo(), plainHasher{})
	if _, err := service.RegisterClient(ctx, registerInput("a@example.com", "0931350239")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.RegisterClient(ctx, registerInput("a@example.com", "0931350240"))
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Fields["email"] == "" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestResolveRejectsInactiveUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeIdentityRepo()
	service := NewService(repo, plainHasher{})
	client, err := service.RegisterClient(ctx, registerInput("a@example.com", "0931350239"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.users[client.UserID].IsActive = false

	if _, err := service.Resolve(ctx, client.UserID); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestUpdateClientRejectsForeignProfile(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeIdentityRepo(), plainHasher{})
	a, _ := service.RegisterClient(ctx, registerInput("a@example.com", "0931350239"))
	b, _ := service.RegisterClient(ctx, registerInput("b@example.com", "0931350240"))

	actor, err := service.Resolve(ctx, a.UserID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	name := "Other"
	_, err = service.UpdateClient(ctx, actor, b.ID, ClientUpdate{UserInput: UserInput{FirstName: &name}})
	if !errors.Is(err, ErrForeignProfile) {
		t.Fatalf("expected ErrForeignProfile, got %v", err)
	}
}

func TestToggleBlacklistFlipsActiveAndInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeIdentityRepo()
	cache := &countingCache{items: make(map[int64]Principal)}
	service := NewService(repo, plainHasher{}).WithCache(cache, time.Minute)

	client, _ := service.RegisterClient(ctx, registerInput("a@example.com", "0931350239"))
	if _, err := service.Resolve(ctx, client.UserID); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := cache.items[client.UserID]; !ok {
		t.Fatalf("expected principal to be cached")
	}

	admin := Principal{UserID: 999, IsStaff: true}
	updated, err := service.ToggleBlacklist(ctx, admin, client.ID)
	if err != nil {
		t.Fatalf("blacklist: %v", err)
	}
	if updated.User.IsActive {
		t.Fatalf("expected user to be inactive")
	}
	if _, ok := cache.items[client.UserID]; ok {
		t.Fatalf("expected cache entry to be dropped")
	}
	if _, err := service.Resolve(ctx, client.UserID); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive after blacklist, got %v", err)
	}

	if _, err := service.ToggleBlacklist(ctx, Principal{UserID: 5}, client.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non admin, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeIdentityRepo(), plainHasher{})
	if _, err := service.RegisterClient(ctx, registerInput("a@example.com", "0931350239")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Authenticate(ctx, "a@example.com", "secret-pass"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := service.Authenticate(ctx, "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate(ctx, "nobody@example.com", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestDeveloperUpdateRequiresSelfOrAdmin(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeIdentityRepo(), plainHasher{})
	developer, err := service.RegisterDeveloper(ctx, registerInput("dev@example.com", "0931350239"))
	if err != nil {
		t.Fatalf("register developer: %v", err)
	}

	stranger := Principal{UserID: 42}
	name := "New"
	if _, err := service.UpdateDeveloper(ctx, stranger, developer.ID, UserInput{FirstName: &name}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	self, err := service.Resolve(ctx, developer.UserID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if self.Kind() != RoleDeveloper {
		t.Fatalf("expected developer role, got %s", self.Kind())
	}
	if _, err := service.UpdateDeveloper(ctx, self, developer.ID, UserInput{FirstName: &name}); err != nil {
		t.Fatalf("self update: %v", err)
	}
}
