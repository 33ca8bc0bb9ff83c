package service

import (
	"fmt"
	"strings"

	"courier-metrics-bot/internal/models"
	"courier-metrics-bot/internal/repository"
)

// PanelUserService manages the bot's registered readers and their roles.
type PanelUserService struct {
	repo repository.PanelUserRepository
}

func NewPanelUserService(repo repository.PanelUserRepository) *PanelUserService {
	return &PanelUserService{repo: repo}
}

// Register creates a panel user with the default client role.
func (s *PanelUserService) Register(chatID int64, username, firstName, lastName string) (*models.PanelUser, error) {
	if firstName == "" {
		return nil, fmt.Errorf("o nome não pode ser vazio")
	}

	user := &models.PanelUser{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleClient,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("erro ao cadastrar usuário: %v", err)
	}

	return user, nil
}

func (s *PanelUserService) Get(chatID int64) (*models.PanelUser, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %v", err)
	}

	if user == nil {
		return nil, fmt.Errorf("usuário não encontrado")
	}

	return user, nil
}

// UpdateRole changes a user's role; only admins may call it.
func (s *PanelUserService) UpdateRole(adminChatID, targetChatID int64, role models.Role) error {
	admin, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return fmt.Errorf("erro ao verificar administrador: %v", err)
	}

	if admin == nil || !admin.IsAdmin() {
		return fmt.Errorf("acesso negado: apenas administradores podem alterar funções")
	}

	targetUser, err := s.repo.GetByChatID(targetChatID)
	if err != nil {
		return fmt.Errorf("erro ao buscar usuário: %v", err)
	}

	if targetUser == nil {
		return fmt.Errorf("usuário não encontrado")
	}

	return s.repo.UpdateRole(targetChatID, role)
}

func (s *PanelUserService) Delete(chatID int64) error {
	exists, err := s.repo.Exists(chatID)
	if err != nil {
		return fmt.Errorf("erro ao verificar usuário: %v", err)
	}

	if !exists {
		return fmt.Errorf("usuário não encontrado")
	}

	return s.repo.Delete(chatID)
}

func (s *PanelUserService) GetAll() ([]*models.PanelUser, error) {
	return s.repo.GetAll()
}

func (s *PanelUserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}

	return user != nil && user.IsAdmin(), nil
}

// InitializeAdmin makes sure the configured base admin exists and has the
// admin role, so a fresh install always has one privileged user.
func (s *PanelUserService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil
	}

	user, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}

	if user == nil {
		user = &models.PanelUser{
			ChatID:    adminChatID,
			FirstName: "Admin",
			Role:      models.RoleAdmin,
		}
		return s.repo.Create(user)
	}

	if !user.IsAdmin() {
		return s.repo.UpdateRole(adminChatID, models.Role(models.RoleAdmin))
	}

	return nil
}

// FormatUserInfo renders one user's profile block.
func (s *PanelUserService) FormatUserInfo(user *models.PanelUser) string {
	var lines []string

	lines = append(lines, "👤 Perfil do usuário:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 Chat: %d", user.ChatID))

	if user.Username != "" {
		lines = append(lines, fmt.Sprintf("📛 Usuário: @%s", user.Username))
	}

	lines = append(lines, fmt.Sprintf("👨‍💼 Nome: %s", user.FirstName))

	if user.LastName != "" {
		lines = append(lines, fmt.Sprintf("👨‍💼 Sobrenome: %s", user.LastName))
	}

	roleEmoji := "👤"
	if user.IsAdmin() {
		roleEmoji = "👑"
	}
	lines = append(lines, fmt.Sprintf("%s Função: %s", roleEmoji, user.Role))

	return strings.Join(lines, "\n")
}

// FormatAllUsers renders the registered user list for admins.
func (s *PanelUserService) FormatAllUsers() (string, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return "", fmt.Errorf("erro ao listar usuários: %v", err)
	}

	if len(users) == 0 {
		return "📭 Nenhum usuário cadastrado.", nil
	}

	var b strings.Builder
	b.WriteString("📋 Usuários cadastrados:\n\n")
	for i, user := range users {
		roleEmoji := "👤"
		if user.IsAdmin() {
			roleEmoji = "👑"
		}
		fmt.Fprintf(&b, "%d. %s %s %s (%d)\n", i+1, roleEmoji, user.FirstName, user.LastName, user.ChatID)
	}

	return b.String(), nil
}
