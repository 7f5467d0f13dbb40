package models

// UserResponse wraps GET /v2/apps/user
type UserResponse struct {
	Data *User `json:"data"`
}

type User struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Type          string         `json:"type,omitempty"`
	Organisations []Organisation `json:"organisations"`
}

type Organisation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	Role      int    `json:"role,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

func (r *UserResponse) Validate() error {
	if r.Data == nil {
		return missing("data")
	}
	u := r.Data
	if u.ID == "" {
		return missing("data", "id")
	}
	if u.Email == "" {
		return missing("data", "email")
	}
	for i, org := range u.Organisations {
		if org.ID == "" {
			return missing("data", indexed("organisations", i), "id")
		}
	}
	return nil
}
