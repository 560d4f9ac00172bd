// internal/models/user.go
package models

// User is the identity record keyed by email. Role defaults to customer on
// first contact; status tracks the elevation workflow (Requested -> Verified).
type User struct {
	BaseModel
	Email       string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name        string     `json:"name" gorm:"size:100"`
	Image       string     `json:"image" gorm:"size:512"`
	Role        Role       `json:"role" gorm:"type:varchar(20);not null;default:'customer'"`
	Status      UserStatus `json:"status" gorm:"type:varchar(20);default:''"`
	ProfileData JSONB      `json:"profile_data,omitempty" gorm:"type:jsonb"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}
