package request

import "tg-storefront/internal/usecase/commands"

type RegisterUserRequest struct {
	TelegramID TelegramID `json:"telegramId" binding:"required,telegramid"`
	Username   string     `json:"username" binding:"max=64"`
	FirstName  string     `json:"firstName" binding:"max=128"`
	LastName   string     `json:"lastName" binding:"max=128"`
	PhotoURL   string     `json:"photoUrl" binding:"max=2048"`
	Ref        string     `json:"ref" binding:"max=64"`
}

func (r *RegisterUserRequest) ToCommand() commands.RegisterUserRequest {
	return commands.RegisterUserRequest{
		TelegramID: r.TelegramID.String(),
		Username:   r.Username,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		PhotoURL:   r.PhotoURL,
		Ref:        r.Ref,
	}
}

type ListUsersQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
