package repository

import (
	"errors"

	"courier-metrics-bot/internal/models"

	"gorm.io/gorm"
)

type PanelUserRepository struct {
	db *gorm.DB
}

func NewPanelUserRepository(db *gorm.DB) (PanelUserRepository, error) {
	if err := db.AutoMigrate(&models.PanelUser{}); err != nil {
		return PanelUserRepository{}, err
	}

	return PanelUserRepository{db: db}, nil
}

func (r *PanelUserRepository) Create(user *models.PanelUser) error {
	var existingUser models.PanelUser
	result := r.db.Where("chat_id = ?", user.ChatID).First(&existingUser)
	if result.Error == nil {
		return errors.New("usuário já cadastrado")
	}

	result = r.db.Create(user)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *PanelUserRepository) GetByChatID(chatID int64) (*models.PanelUser, error) {
	var user models.PanelUser
	result := r.db.Where("chat_id = ?", chatID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *PanelUserRepository) Exists(chatID int64) (bool, error) {
	var count int64
	result := r.db.Model(&models.PanelUser{}).Where("chat_id = ?", chatID).Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *PanelUserRepository) GetAll() ([]*models.PanelUser, error) {
	var users []*models.PanelUser
	result := r.db.Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (r *PanelUserRepository) UpdateRole(chatID int64, role models.Role) error {
	result := r.db.Model(&models.PanelUser{}).
		Where("chat_id = ?", chatID).
		Update("role", role)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("usuário não encontrado")
	}

	return nil
}

func (r *PanelUserRepository) Delete(chatID int64) error {
	result := r.db.Where("chat_id = ?", chatID).Delete(&models.PanelUser{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("usuário não encontrado")
	}

	return nil
}

func (r *PanelUserRepository) GetAdmins() ([]*models.PanelUser, error) {
	var admins []*models.PanelUser
	result := r.db.Where("role = ?", models.RoleAdmin).Find(&admins)

	if result.Error != nil {
		return nil, result.Error
	}

	return admins, nil
}
