package domain

type StaffRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	IsActive bool   `json:"isActive"`
}
