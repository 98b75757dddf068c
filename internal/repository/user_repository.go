package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"real-estate-backend/internal/models"

	_ "github.com/lib/pq"           // identity store driver (production)
	_ "github.com/mattn/go-sqlite3" // identity store driver (dev/tests)
)

// ErrUserNotFound is returned by mutations that touched zero rows.
var ErrUserNotFound = errors.New("user not found")

// authUserRecord is the identity store's native row shape. Its column names
// and layout are owned by the identity subsystem, not by this service.
type authUserRecord struct {
	UserID         string
	UserName       string
	EmailAddress   string
	PhoneNumber    string
	FullName       string
	PasswordDigest string
	Created        time.Time
	Modified       time.Time
}

func (rec *authUserRecord) toUser() *models.User {
	return &models.User{
		ID:           rec.UserID,
		Username:     rec.UserName,
		Email:        rec.EmailAddress,
		Phone:        rec.PhoneNumber,
		DisplayName:  rec.FullName,
		PasswordHash: rec.PasswordDigest,
		CreatedAt:    rec.Created,
		UpdatedAt:    rec.Modified,
	}
}

func fromUser(u *models.User) *authUserRecord {
	return &authUserRecord{
		UserID:         u.ID,
		UserName:       u.Username,
		EmailAddress:   u.Email,
		PhoneNumber:    u.Phone,
		FullName:       u.DisplayName,
		PasswordDigest: u.PasswordHash,
		Created:        u.CreatedAt,
		Modified:       u.UpdatedAt,
	}
}

// UserRepository adapts the external identity store to the same contract the
// generic repository presents for ordinary aggregates. The store has its own
// schema, so every call translates between authUserRecord and models.User.
// Uniqueness checks (email/username/phone taken) are existence predicates
// against the store because it owns those fields.
type UserRepository struct {
	conn   *sql.DB
	driver string
}

// NewUserRepository opens the identity store. Supported drivers are
// "postgres" and "sqlite3".
func NewUserRepository(driver, dsn string) (*UserRepository, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening identity store: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging identity store: %w", err)
	}
	return &UserRepository{conn: conn, driver: driver}, nil
}

func (r *UserRepository) Close() error {
	return r.conn.Close()
}

// InitSchema creates the identity table if it doesn't exist. In production
// the identity subsystem owns its schema; this exists for dev and tests.
func (r *UserRepository) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS auth_users (
		user_id VARCHAR(36) PRIMARY KEY,
		user_name VARCHAR(100) NOT NULL UNIQUE,
		email_address VARCHAR(200) NOT NULL UNIQUE,
		phone_number VARCHAR(32) NOT NULL,
		full_name VARCHAR(200) NOT NULL,
		password_digest VARCHAR(200) NOT NULL,
		created TIMESTAMP NOT NULL,
		modified TIMESTAMP NOT NULL
	)`
	_, err := r.conn.Exec(query)
	return err
}

// rebind converts ? placeholders to $n for the postgres driver.
func (r *UserRepository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

const authUserColumns = "user_id, user_name, email_address, phone_number, full_name, password_digest, created, modified"

func scanAuthUser(row interface{ Scan(...interface{}) error }) (*authUserRecord, error) {
	var rec authUserRecord
	err := row.Scan(&rec.UserID, &rec.UserName, &rec.EmailAddress, &rec.PhoneNumber,
		&rec.FullName, &rec.PasswordDigest, &rec.Created, &rec.Modified)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*models.User, error) {
	query := r.rebind(fmt.Sprintf("SELECT %s FROM auth_users WHERE %s = ?", authUserColumns, column))
	rec, err := scanAuthUser(r.conn.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return rec.toUser(), nil
}

// GetByID returns the user or nil on miss.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, "user_id", id)
}

// GetByUsername returns the user or nil on miss.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "user_name", username)
}

// GetByEmail returns the user or nil on miss.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email_address", email)
}

// Add inserts a user through the identity store's native creation shape.
func (r *UserRepository) Add(ctx context.Context, u *models.User) error {
	rec := fromUser(u)
	if rec.Created.IsZero() {
		rec.Created = time.Now().UTC()
		rec.Modified = rec.Created
	}
	query := r.rebind(fmt.Sprintf("INSERT INTO auth_users (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", authUserColumns))
	_, err := r.conn.ExecContext(ctx, query,
		rec.UserID, rec.UserName, rec.EmailAddress, rec.PhoneNumber,
		rec.FullName, rec.PasswordDigest, rec.Created, rec.Modified)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	u.CreatedAt = rec.Created
	u.UpdatedAt = rec.Modified
	return nil
}

// Update persists the domain shape back into the native schema.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	query := r.rebind(`UPDATE auth_users
		SET user_name = ?, email_address = ?, phone_number = ?, full_name = ?, password_digest = ?, modified = ?
		WHERE user_id = ?`)
	res, err := r.conn.ExecContext(ctx, query,
		u.Username, u.Email, u.Phone, u.DisplayName, u.PasswordHash, now, u.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	u.UpdatedAt = now
	return nil
}

// List returns one page of users, newest first. Page is 1-based.
func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	query := r.rebind(fmt.Sprintf(
		"SELECT %s FROM auth_users ORDER BY created DESC LIMIT ? OFFSET ?", authUserColumns))
	rows, err := r.conn.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		rec, err := scanAuthUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, *rec.toUser())
	}
	return users, rows.Err()
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM auth_users").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) existsWhere(ctx context.Context, column, value string) (bool, error) {
	query := r.rebind(fmt.Sprintf("SELECT COUNT(*) FROM auth_users WHERE %s = ?", column))
	var n int64
	if err := r.conn.QueryRowContext(ctx, query, value).Scan(&n); err != nil {
		return false, fmt.Errorf("checking %s: %w", column, err)
	}
	return n > 0, nil
}

// UsernameTaken reports whether the username is already registered.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.existsWhere(ctx, "user_name", username)
}

// EmailTaken reports whether the email is already registered.
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.existsWhere(ctx, "email_address", email)
}

// PhoneTaken reports whether the phone number is already registered.
func (r *UserRepository) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	return r.existsWhere(ctx, "phone_number", phone)
}
