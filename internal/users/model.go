package users

import "time"

type User struct {
	ID           string    `json:"id"`
	LoginID      string    `json:"loginId"`
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
