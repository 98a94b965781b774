package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/office-seat-reservation/internal/model"
	"github.com/iliyamo/office-seat-reservation/internal/utils"
)

// EmployeeRepo provides CRUD operations over the employees table.
type EmployeeRepo struct{ DB *sql.DB }

// NewEmployeeRepo returns a new EmployeeRepo bound to the given database.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

// Create inserts an employee and returns its ID.  The password is
// bcrypt-hashed here; the batch assignment is immutable afterwards —
// there is deliberately no update method for it.
func (r *EmployeeRepo) Create(ctx context.Context, name, email, password string, batch int, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO employees (name, email, password_hash, batch, role) VALUES (?,?,?,?,?)",
		name, email, hash, batch, role)
	if err != nil {
		// MySQL duplicate-key error for the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
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

// GetByEmail fetches an employee by normalized email.
func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (model.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,batch,role,created_at,updated_at FROM employees WHERE email=? LIMIT 1",
		email).Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Batch, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// GetByID fetches an employee by id.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,batch,role,created_at,updated_at FROM employees WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Batch, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// List returns every employee ordered by batch then name, for the
// admin panel.
func (r *EmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,password_hash,batch,role,created_at,updated_at FROM employees ORDER BY batch, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Employee, 0)
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Batch, &e.Role, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes a non-admin employee.  Admin accounts cannot be
// deleted through this path.  Returns false when nothing matched.
func (r *EmployeeRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM employees WHERE id=? AND role<>?", id, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
