package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/event-directory/internal/model"
    "github.com/iliyamo/event-directory/internal/utils"
)

// UserRepo persists the `users` table. Event code only ever reads from it
// (creator summaries, joined-user summaries); writes happen through the
// auth endpoints.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID. The email is normalized to
// lower case before insert; the unique index on it maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName string, imagePath *string, role string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO users (email, password_hash, full_name, image_path, role) VALUES (?,?,?,?,?)`,
        email, hash, fullName, nullable(imagePath), role)
    if err != nil {
        if hasErrorCode(err, mysqlErrDuplicateKey) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.get(ctx, `WHERE email = ?`, email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return r.get(ctx, `WHERE id = ?`, id)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (model.User, error) {
    var u model.User
    var image sql.NullString
    err := r.DB.QueryRowContext(ctx,
        `SELECT id, email, password_hash, full_name, image_path, role, is_active, created_at, updated_at
         FROM users `+where+` LIMIT 1`, arg).
        Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &image, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return model.User{}, err
    }
    u.ImagePath = optional(image)
    return u, nil
}
