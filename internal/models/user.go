package models

// User is an app account stored under /users/{uid} in the Realtime Database
type User struct {
	ID       string `json:"-"`
	FullName string `json:"fullName"`
	Birthday string `json:"birthday"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserSummary is a user row on the manage users page, with values derived from feedback
type UserSummary struct {
	User
	AverageRating float64
	CookingLevel  string
}

// EditUserRequest defines the form body for editing a user
type EditUserRequest struct {
	UID      string `form:"uid" validate:"required"`
	FullName string `form:"fullName" validate:"required,min=1,max=100"`
	Birthday string `form:"birthday" validate:"required"`
	Age      string `form:"age" validate:"required,number"`
	Gender   string `form:"gender" validate:"required"`
	Username string `form:"username" validate:"required,max=50"`
	Email    string `form:"email" validate:"required,email"`
}

// LoginRequest defines the form body for the admin login
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
