// File: internal/model/user.go
package model

import "time"

// 角色為封閉集合，預設 user
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// ValidRole 回報角色是否屬於封閉集合
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                  int        `db:"id" json:"id"`
	Name                string     `db:"name" json:"name"`
	Email               string     `db:"email" json:"email"`
	Role                string     `db:"role" json:"role"`
	PasswordHash        string     `db:"password_hash" json:"-"`
	PasswordChangedAt   *time.Time `db:"password_changed_at" json:"-"`
	PasswordResetToken  *string    `db:"password_reset_token" json:"-"`
	PasswordResetExpiry *time.Time `db:"password_reset_expiry" json:"-"`
	Active              bool       `db:"active" json:"-"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
}

// PasswordChangedAfter 回報密碼是否在 t 之後變更過
// 令牌簽發後若密碼有變更，舊令牌即失效
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > t.Unix()
}

// UserColumns 為查詢建構器可選取的欄位，敏感欄位一律不在其中
var UserColumns = []string{"id", "name", "email", "role", "created_at", "updated_at"}

// UserHiddenColumns 預設投影排除的內部欄位
var UserHiddenColumns = []string{"updated_at"}
