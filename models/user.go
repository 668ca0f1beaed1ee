package models

// User là một tài khoản người dùng, không bao giờ bị sửa hay xóa
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserCreate là body của request tạo người dùng
type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
}

func (in UserCreate) User() User {
	return User{Username: in.Username, Email: in.Email}
}
