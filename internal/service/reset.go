// File: internal/service/reset.go
package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

var randRead = rand.Read

// ResetTokenTTL 為重置令牌的有效時間
const ResetTokenTTL = 10 * time.Minute

// NewResetToken 產生高熵隨機重置令牌
// 回傳明文（僅供一次性寄送）、持久化用的哈希與到期時間
func NewResetToken() (plain, hash string, expiry time.Time, err error) {
	buf := make([]byte, 32)
	if _, err = randRead(buf); err != nil {
		return "", "", time.Time{}, err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), timeNow().Add(ResetTokenTTL), nil
}

// HashResetToken 對明文令牌做單向哈希，資料庫只存哈希
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
