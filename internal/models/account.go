package models

// AdminAccount can manage every part of the registry, including other accounts.
type AdminAccount struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticate compares credentials verbatim.
func (a *AdminAccount) Authenticate(username, password string) bool {
	return a.Username == username && a.Password == password
}

// StaffAccount is a front-desk operator.
type StaffAccount struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Authenticate compares credentials verbatim.
func (s *StaffAccount) Authenticate(name, password string) bool {
	return s.Name == name && s.Password == password
}
