package models

import "time"

type User struct {
	ID       string `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Name     string `bson:"name" json:"name"`
	Avatar   string `bson:"avatar,omitempty" json:"avatar"`
	Password string `bson:"password" json:"-"`
	// Location points at the cafe the user is currently studying at.
	// nil means not present anywhere.
	Location  *string   `bson:"location,omitempty" json:"location"`
	Friends   []string  `bson:"friends,omitempty" json:"friends"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}

// Studying reports whether the user is checked in at some cafe.
func (u *User) Studying() bool {
	return u.Location != nil && *u.Location != ""
}
