package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Роли студентов в системе
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Student представляет учетную запись студента (или администратора)
type Student struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"column:fullname;size:100;not null" json:"fullname"`
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email    string `gorm:"size:100;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Bio      string `gorm:"type:text;not null;default:''" json:"bio"`
	Role     string `gorm:"size:20;not null;default:'student'" json:"-"` // "student" или "admin"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Student) TableName() string {
	return "students"
}

// IsAdmin возвращает true, если у студента административная роль
func (s *Student) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (s *Student) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(s.Password) > 0 && !strings.HasPrefix(s.Password, "$2a$") &&
		!strings.HasPrefix(s.Password, "$2b$") && !strings.HasPrefix(s.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[Student.BeforeSave] Ошибка при хешировании пароля для username=%s: %v", s.Username, err)
			return err
		}
		s.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу.
// bcrypt.CompareHashAndPassword выполняет сравнение за константное время.
func (s *Student) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password))
	return err == nil
}
