package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/todo-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:     b.username,
		PasswordHash: string(hashedPassword),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// LoginResponse matches the API login response
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"username": user.Username,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.URL("/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to login user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return user, loginResp.AccessToken
}

// TaskBuilder creates test tasks with a builder pattern
type TaskBuilder struct {
	title       string
	description string
	completed   bool
	owner       *domain.User
}

// NewTaskBuilder creates a new TaskBuilder with default values
func NewTaskBuilder() *TaskBuilder {
	return &TaskBuilder{
		title: fmt.Sprintf("task_%s", uuid.New().String()[:8]),
	}
}

// WithTitle sets the title
func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.title = title
	return b
}

// WithDescription sets the description
func (b *TaskBuilder) WithDescription(description string) *TaskBuilder {
	b.description = description
	return b
}

// WithCompleted sets the completed flag
func (b *TaskBuilder) WithCompleted(completed bool) *TaskBuilder {
	b.completed = completed
	return b
}

// WithOwner sets the owning user
func (b *TaskBuilder) WithOwner(owner *domain.User) *TaskBuilder {
	b.owner = owner
	return b
}

// Build creates the task in the database
func (b *TaskBuilder) Build(t *testing.T, db *gorm.DB) *domain.Task {
	t.Helper()

	if b.owner == nil {
		owner, _ := NewUserBuilder().Build(t, db)
		b.owner = owner
	}

	task := &domain.Task{
		Title:       b.title,
		Description: b.description,
		Completed:   b.completed,
		OwnerID:     b.owner.ID,
	}

	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}
