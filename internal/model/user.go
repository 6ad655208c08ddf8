package model

import (
	"golang.org/x/crypto/bcrypt"
)

// User is a console account known to the authentication endpoint
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	FullName string `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	Role     Role   `gorm:"type:varchar(50);not null;index" json:"role" validate:"required,mis_role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// SeedUsers are created on first start, one per role
var SeedUsers = []struct {
	Email    string
	FullName string
	Role     Role
}{
	{Email: "superadmin@example.com", FullName: "Super Administrator", Role: RoleSuperAdmin},
	{Email: "sysadmin@example.com", FullName: "System Administrator", Role: RoleSystemAdmin},
	{Email: "manager@example.com", FullName: "Store Manager", Role: RoleManager},
	{Email: "cashier@example.com", FullName: "Front Cashier", Role: RoleCashier},
	{Email: "clerk@example.com", FullName: "Inventory Clerk", Role: RoleInventoryClerk},
}
