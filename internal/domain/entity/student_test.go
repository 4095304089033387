package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mockTx создаётся для сигнатуры BeforeSave; хук не использует tx напрямую
var mockTx *gorm.DB = nil

func TestStudent_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange: студент с открытым паролем
	plainPassword := "mySecretPassword123"
	student := &Student{
		Username: "ivan",
		Email:    "ivan@example.com",
		Password: plainPassword,
	}

	// Act
	err := student.BeforeSave(mockTx)

	// Assert: пароль должен быть хеширован
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.NotEqual(t, plainPassword, student.Password, "Пароль должен быть изменён после хеширования")

	err = bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(plainPassword))
	assert.NoError(t, err, "Хеш должен соответствовать исходному паролю")
}

func TestStudent_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange: пароль уже является bcrypt-хешем
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.DefaultCost)
	require.NoError(t, err)

	student := &Student{
		Username: "ivan",
		Password: string(hashedPassword),
	}
	originalHash := student.Password

	// Act
	err = student.BeforeSave(mockTx)

	// Assert: повторного хеширования быть не должно
	require.NoError(t, err)
	assert.Equal(t, originalHash, student.Password, "Уже хешированный пароль не должен меняться")
}

func TestStudent_CheckPassword(t *testing.T) {
	student := &Student{Password: "secret123"}
	require.NoError(t, student.BeforeSave(mockTx))

	assert.True(t, student.CheckPassword("secret123"))
	assert.False(t, student.CheckPassword("wrong"))
	assert.False(t, student.CheckPassword(""))
}

func TestStudent_IsAdmin(t *testing.T) {
	assert.True(t, (&Student{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Student{Role: RoleStudent}).IsAdmin())
	assert.False(t, (&Student{}).IsAdmin())
}
