package models

type Role string

const (
	RoleClient string = "client"
	RoleAdmin  string = "admin"
)

// PanelUser is a registered bot user (ops staff reading the panel), not a
// courier from the extract.
type PanelUser struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	ChatID    int64  `gorm:"uniqueIndex;not null" json:"chat_id"`
	Username  string `json:"username"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `gorm:"default:'client'" json:"role"`
}

func (u *PanelUser) IsAdmin() bool {
	return u.Role == "admin"
}

func (u *PanelUser) SetRole(role Role) {
	u.Role = string(role)
}

func (PanelUser) TableName() string {
	return "panel_users"
}
