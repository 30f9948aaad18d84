package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/sparkmigrate/advisor-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(email, password, firstName, lastName string, roles []models.UserRole) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	GetUserByID(userID string) (models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (u *userRepository) CreateUser(email, password, firstName, lastName string, roles []models.UserRole) (models.User, error) {
	if len(roles) == 0 {
		roles = []models.UserRole{models.RoleViewer}
	}
	if !models.IsValidRoleList(roles) {
		return models.User{}, errors.New("invalid roles")
	}
	normalized := models.EnsureDefaultRole(models.NormalizeRoles(roles))

	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, errors.New("email is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
		IsActive:     true,
		Roles:        normalized,
	}

	query := `
		INSERT INTO advisor.users (email, first_name, last_name, password_hash, is_active, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err = u.db.QueryRow(query, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsActive, pq.Array(toStringSlice(user.Roles))).Scan(&user.ID)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (u *userRepository) AuthenticateUser(email, password string) (models.User, error) {
	var user models.User
	var roles pq.StringArray

	query := `
		SELECT id, email, first_name, last_name, password_hash, is_active, roles
		FROM advisor.users
		WHERE email = $1 AND deleted_at IS NULL`
	err := u.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsActive,
		&roles,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, errors.New("invalid credentials")
		}
		return models.User{}, err
	}

	if !user.IsActive {
		return models.User{}, errors.New("user is inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, errors.New("invalid credentials")
	}

	user.Roles = toRoleSlice(roles)
	return user, nil
}

func (u *userRepository) GetUserByID(userID string) (models.User, error) {
	var user models.User
	var roles pq.StringArray

	query := `
		SELECT id, email, first_name, last_name, password_hash, is_active, roles
		FROM advisor.users
		WHERE id = $1 AND deleted_at IS NULL`
	err := u.db.QueryRow(query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsActive,
		&roles,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Roles = toRoleSlice(roles)
	return user, nil
}

func toStringSlice(roles []models.UserRole) []string {
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}

func toRoleSlice(values pq.StringArray) []models.UserRole {
	roles := make([]models.UserRole, 0, len(values))
	for _, v := range values {
		roles = append(roles, models.UserRole(v))
	}
	return models.EnsureDefaultRole(models.NormalizeRoles(roles))
}
