package models

type User struct {
	ID       int64  `json:"id"`
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"` // admin, petugas
	IsBanned string `json:"is_banned"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Nama  string `json:"nama"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Nama:  u.Nama,
		Email: u.Email,
		Role:  u.Role,
	}
}
