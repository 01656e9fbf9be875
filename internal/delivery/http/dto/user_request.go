package dto

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"max=32"`
	Role            string `json:"role" validate:"required,role"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type IntervalInput struct {
	Day      string `json:"day" validate:"required,weekday"`
	IsActive bool   `json:"isActive"`
	StartAt  int    `json:"startAt" validate:"gte=0,lte=1440"`
	EndAt    int    `json:"endAt" validate:"gte=0,lte=1440,gtfield=StartAt"`
}

type ScheduleRequest struct {
	Schedule []IntervalInput `json:"schedule" validate:"dive"`
}
