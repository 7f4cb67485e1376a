package registry

import (
	"github.com/AliciaPky/Astar/internal/models"
)

// AddAdmin creates an administrator under the next admin ID.
func (r *Registry) AddAdmin(username, password string) *models.AdminAccount {
	admin := &models.AdminAccount{ID: r.nextAdminID, Username: username, Password: password}
	r.nextAdminID++
	r.admins = append(r.admins, admin)
	r.logAction("ADD_ADMIN", "Admin created: %s", username)
	r.persist()
	out := *admin
	return &out
}

// EditAdmin overwrites the non-empty fields.
func (r *Registry) EditAdmin(id int, username, password string) error {
	admin := r.admin(id)
	if admin == nil {
		return notFound("admin %d not found", id)
	}
	old := admin.Username
	if username != "" {
		admin.Username = username
	}
	if password != "" {
		admin.Password = password
	}
	r.logAction("EDIT_ADMIN", "Renamed admin %s -> %s", old, admin.Username)
	r.persist()
	return nil
}

// RemoveAdmin deletes an administrator. The last remaining administrator cannot be removed.
func (r *Registry) RemoveAdmin(id int) error {
	idx := -1
	for i, a := range r.admins {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return notFound("admin %d not found", id)
	}
	if len(r.admins) == 1 {
		return conflict("cannot remove the last administrator")
	}
	admin := r.admins[idx]
	r.admins = append(r.admins[:idx], r.admins[idx+1:]...)
	r.logAction("REMOVE_ADMIN", "Removed admin: %s", admin.Username)
	r.persist()
	return nil
}

// FindAdmin returns a copy of the administrator.
func (r *Registry) FindAdmin(id int) (*models.AdminAccount, error) {
	admin := r.admin(id)
	if admin == nil {
		return nil, notFound("admin %d not found", id)
	}
	out := *admin
	return &out, nil
}

// Admins lists every administrator.
func (r *Registry) Admins() []models.AdminAccount {
	out := make([]models.AdminAccount, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out
}

// SignInAdmin reports whether the credentials match an administrator exactly.
func (r *Registry) SignInAdmin(username, password string) bool {
	for _, a := range r.admins {
		if a.Authenticate(username, password) {
			r.logAction("LOGIN", "Admin %s signed in", username)
			return true
		}
	}
	r.logAction("LOGIN_FAIL", "Invalid admin login for %s", username)
	return false
}

// AddStaff creates a staff account under the next staff ID.
func (r *Registry) AddStaff(name, password string) *models.StaffAccount {
	staff := &models.StaffAccount{ID: r.nextStaffID, Name: name, Password: password}
	r.nextStaffID++
	r.staff = append(r.staff, staff)
	r.logAction("ADD_STAFF", "Staff added: %s", name)
	r.persist()
	out := *staff
	return &out
}

// EditStaff overwrites the non-empty fields.
func (r *Registry) EditStaff(id int, name, password string) error {
	staff := r.staffMember(id)
	if staff == nil {
		return notFound("staff %d not found", id)
	}
	old := staff.Name
	if name != "" {
		staff.Name = name
	}
	if password != "" {
		staff.Password = password
	}
	r.logAction("EDIT_STAFF", "Renamed staff %s -> %s", old, staff.Name)
	r.persist()
	return nil
}

// RemoveStaff deletes a staff account.
func (r *Registry) RemoveStaff(id int) error {
	for i, s := range r.staff {
		if s.ID != id {
			continue
		}
		r.staff = append(r.staff[:i], r.staff[i+1:]...)
		r.logAction("REMOVE_STAFF", "Removed staff: %s", s.Name)
		r.persist()
		return nil
	}
	return notFound("staff %d not found", id)
}

// FindStaff returns a copy of the staff account.
func (r *Registry) FindStaff(id int) (*models.StaffAccount, error) {
	staff := r.staffMember(id)
	if staff == nil {
		return nil, notFound("staff %d not found", id)
	}
	out := *staff
	return &out, nil
}

// Staff lists every staff account.
func (r *Registry) Staff() []models.StaffAccount {
	out := make([]models.StaffAccount, 0, len(r.staff))
	for _, s := range r.staff {
		out = append(out, *s)
	}
	return out
}

// SignInStaff reports whether the credentials match a staff account exactly.
func (r *Registry) SignInStaff(name, password string) bool {
	for _, s := range r.staff {
		if s.Authenticate(name, password) {
			r.logAction("LOGIN", "Staff %s signed in", name)
			return true
		}
	}
	r.logAction("LOGIN_FAIL", "Invalid staff login for %s", name)
	return false
}

func (r *Registry) admin(id int) *models.AdminAccount {
	for _, a := range r.admins {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (r *Registry) staffMember(id int) *models.StaffAccount {
	for _, s := range r.staff {
		if s.ID == id {
			return s
		}
	}
	return nil
}
