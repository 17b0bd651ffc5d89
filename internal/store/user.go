package store

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"tourbase/internal/database"
	"tourbase/internal/model"
	"tourbase/internal/query"

	"github.com/jackc/pgx/v5"
)

const userSelectColumns = `id, name, email, role, password_hash, password_changed_at, created_at`

func scanUser(row interface{ Scan(dest ...any) error }, op string) (*model.User, error) {
	u := &model.User{Active: true}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.PasswordHash,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
		u.Role,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// GetUserByID 只回傳未被軟刪除的使用者
func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userSelectColumns+`
		 FROM users WHERE id = $1 AND active`,
		userID,
	)
	return scanUser(row, "GetUserByID")
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userSelectColumns+`
		 FROM users WHERE email = $1 AND active`,
		email,
	)
	return scanUser(row, "GetUserByEmail")
}

// ListUsers 以查詢建構器列出使用者，預設排除軟刪除者
func ListUsers(ctx context.Context, db database.DB, params url.Values) ([]map[string]any, error) {
	sql, args := query.New("users", model.UserColumns, model.UserHiddenColumns, params).
		Where("active = TRUE").
		Filter().
		Sort().
		Select().
		Paginate().
		Build()

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	users, err := scanMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// UpdateUser 更新姓名、Email 與角色（管理員操作）
func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET name = COALESCE(NULLIF($1, ''), name),
		     email = COALESCE(NULLIF($2, ''), email),
		     role = COALESCE(NULLIF($3, ''), role),
		     updated_at = now()
		 WHERE id = $4 AND active`,
		u.Name,
		u.Email,
		u.Role,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUser: %w", pgx.ErrNoRows)
	}
	return nil
}

// UpdateUserProfile 僅更新姓名與 Email（使用者本人操作）
func UpdateUserProfile(ctx context.Context, db database.DB, userID int, name, email string) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET name = COALESCE(NULLIF($1, ''), name),
		     email = COALESCE(NULLIF($2, ''), email),
		     updated_at = now()
		 WHERE id = $3 AND active`,
		name,
		email,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserProfile: %w", err)
	}
	return nil
}

// UpdateUserPassword 更新密碼哈希並回填變更時間
// 變更時間刻意往前推一秒，避免同一秒內簽發的令牌被誤判為過期
func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1,
		     password_changed_at = now() - interval '1 second',
		     updated_at = now()
		 WHERE id = $2 AND active`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return nil
}

// DeactivateUser 軟刪除：僅翻轉 active 旗標，紀錄永不實體刪除
func DeactivateUser(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET active = FALSE, updated_at = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeactivateUser: %w", err)
	}
	return nil
}

func SetPasswordResetToken(ctx context.Context, db database.DB, userID int, tokenHash string, expiry time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET password_reset_token = $1, password_reset_expiry = $2, updated_at = now()
		 WHERE id = $3 AND active`,
		tokenHash,
		expiry,
		userID,
	)
	if err != nil {
		return fmt.Errorf("SetPasswordResetToken: %w", err)
	}
	return nil
}

func ClearPasswordResetToken(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET password_reset_token = NULL, password_reset_expiry = NULL, updated_at = now()
		 WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("ClearPasswordResetToken: %w", err)
	}
	return nil
}

// ConsumePasswordResetToken 以單一條件式 UPDATE 完成比對、設新密碼與清除令牌
// 整個消費動作是原子性的，兩個並發請求不可能同時成功
func ConsumePasswordResetToken(ctx context.Context, db database.DB, tokenHash, newPasswordHash string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET password_hash = $2,
		     password_changed_at = now() - interval '1 second',
		     password_reset_token = NULL,
		     password_reset_expiry = NULL,
		     updated_at = now()
		 WHERE password_reset_token = $1
		   AND password_reset_expiry > now()
		   AND active
		 RETURNING `+userSelectColumns,
		tokenHash,
		newPasswordHash,
	)
	return scanUser(row, "ConsumePasswordResetToken")
}
