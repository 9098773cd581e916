package user

import (
	"time"

	"github.com/ferdiebergado/hireloop/internal/model"
)

type User struct {
	model.Model

	TenantID     string
	Email        string
	PasswordHash string
	Role         string
	VerifiedAt   *time.Time
}
