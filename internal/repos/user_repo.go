package repos

import (
	"database/sql"

	"robomart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `
  u.id, u.email, u.name, u.password_hash,
  COALESCE(r.role,'customer') AS role`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT `+userCols+`
	  FROM users u LEFT JOIN user_roles r ON r.user_id = u.id
	  WHERE LOWER(u.email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT `+userCols+`
	  FROM users u LEFT JOIN user_roles r ON r.user_id = u.id
	  WHERE u.id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(id, email, name, hash string) error {
	_, err := r.DB.Exec(`INSERT INTO users(id,email,name,password_hash) VALUES(?,?,?,?)`,
		id, email, name, hash)
	return err
}

// Role returns the user's role, defaulting to customer when no row exists.
func (r *UserRepo) Role(userID string) (string, error) {
	var role string
	err := r.DB.Get(&role, `SELECT role FROM user_roles WHERE user_id=?`, userID)
	if err == sql.ErrNoRows {
		return domain.RoleCustomer, nil
	}
	return role, err
}

func (r *UserRepo) SetRole(roleID, userID, role string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO user_roles(id,user_id,role) VALUES(?,?,?)
	  ON CONFLICT(user_id) DO UPDATE SET role = excluded.role`, roleID, userID, role)
	return err
}

func (r *UserRepo) DeleteRole(userID string) error {
	_, err := r.DB.Exec(`DELETE FROM user_roles WHERE user_id=?`, userID)
	return err
}

// ListStaff returns every user that holds an explicit role row.
func (r *UserRepo) ListStaff() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `
	  SELECT u.id, u.email, u.name, u.password_hash, r.role
	  FROM user_roles r JOIN users u ON u.id = r.user_id
	  ORDER BY u.email`)
	return out, err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT `+userCols+`
	  FROM sessions s
	  JOIN users u ON u.id = s.user_id
	  LEFT JOIN user_roles r ON r.user_id = u.id
	  WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
