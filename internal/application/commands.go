package application

type SignUpCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LoginCommand struct {
	Email    string
	Password string
}

type UpdateProfileCommand struct {
	UserID    string
	FirstName string
	LastName  string
}

type ChangePasswordCommand struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type SetActiveCommand struct {
	UserID string
	Active bool
}

type ListUsersQuery struct {
	ActiveOnly bool
}

type SearchUsersQuery struct {
	Query string
	Size  int
}
