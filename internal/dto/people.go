package dto

// CreateStudentRequest registers a student.
type CreateStudentRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// UpdateStudentRequest renames a student. An empty name keeps the current one.
type UpdateStudentRequest struct {
	Name string `json:"name" validate:"omitempty,max=120"`
}

// CreateTeacherRequest registers a teacher.
type CreateTeacherRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Speciality string `json:"speciality" validate:"required,max=120"`
}

// UpdateTeacherRequest overwrites the non-empty fields.
type UpdateTeacherRequest struct {
	Name       string `json:"name" validate:"omitempty,max=120"`
	Speciality string `json:"speciality" validate:"omitempty,max=120"`
}

// CreateAdminRequest creates an administrator account.
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAdminRequest overwrites the non-empty fields.
type UpdateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateStaffRequest creates a staff account.
type CreateStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateStaffRequest overwrites the non-empty fields.
type UpdateStaffRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AccountView is an admin or staff account without its password.
type AccountView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SignInRequest carries credentials for either account type.
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
