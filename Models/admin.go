package Models

import (
	"errors"
	"html"
	"strings"

	"github.com/Meghanadh2306/physio-website/Utils/Token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin is the single management identity for the clinic.
type Admin struct {
	gorm.Model
	Username string `gorm:"size:255;not null;unique" json:"username"`
	Password string `gorm:"size:255;not null" json:"password"`
}

func GetAdminByID(id uint) (Admin, error) {
	var admin Admin
	if err := DB.First(&admin, id).Error; err != nil {
		return admin, errors.New("admin not found")
	}
	return admin, nil
}

func VerifyPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// LoginCheck validates the credentials and issues a bearer token.
func LoginCheck(username, password string) (string, error) {
	var admin Admin
	if err := DB.Model(&Admin{}).Where("username = ?", username).Take(&admin).Error; err != nil {
		return "", err
	}
	if err := VerifyPassword(password, admin.Password); err != nil {
		return "", err
	}
	return Token.GenerateToken(admin.ID)
}

// ChangePassword re-hashes and stores newPassword after checking the current
// one.
func (admin *Admin) ChangePassword(oldPassword, newPassword string) error {
	if err := VerifyPassword(oldPassword, admin.Password); err != nil {
		return errors.New("old password incorrect")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return DB.Model(admin).Update("password", string(hashed)).Error
}

func (admin *Admin) SaveAdmin() (*Admin, error) {
	if err := admin.BeforeSave(); err != nil {
		return &Admin{}, err
	}
	if err := DB.Create(admin).Error; err != nil {
		return &Admin{}, err
	}
	return admin, nil
}

func (admin *Admin) BeforeSave() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.Password = string(hashed)
	admin.Username = html.EscapeString(strings.TrimSpace(admin.Username))
	return nil
}

// EnsureDefaultAdmin seeds the admin credential on first start so the
// dashboard is reachable before anyone has logged in.
func EnsureDefaultAdmin(username, password string) error {
	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := Admin{Username: username, Password: password}
	_, err := admin.SaveAdmin()
	return err
}
