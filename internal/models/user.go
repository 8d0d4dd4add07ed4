package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string    `json:"username" gorm:"type:text;uniqueIndex;not null"` // immutable once created
	Password    string    `json:"-" gorm:"type:text;not null"`                    // bcrypt hash
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"`                           // set for users created through Firebase login
	CreatedAt   time.Time `json:"created"`

	Ideas     []Idea `json:"-" gorm:"foreignKey:AuthorID"`
	Bookmarks []Idea `json:"-" gorm:"many2many:bookmarks"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// HasBookmark reports whether ideaID is in the loaded bookmark set.
func (u *User) HasBookmark(ideaID string) bool {
	for _, b := range u.Bookmarks {
		if b.ID == ideaID {
			return true
		}
	}
	return false
}

// AuthRequest is the body of /register and /login.
type AuthRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are the identity token claims. The subject carries the user ID.
type JwtCustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// FederatedIdentity is the verified identity behind a Firebase ID token.
type FederatedIdentity struct {
	UID   string
	Name  string
	Email string
}
