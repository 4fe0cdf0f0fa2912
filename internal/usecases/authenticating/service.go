package authenticating

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	errorcodes "github.com/vfg2006/crm-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.UpdateUserRequest) error
	ListUser(ctx context.Context) ([]*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID int) (string, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// normalizeEmail deixa o email comparável: minúsculo e sem espaços
func normalizeEmail(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

// checkDealerLink exige revenda vinculada para o perfil de revendedor e a remove dos demais
func checkDealerLink(user *domain.User) error {
	if user.RoleID != domain.RoleDealer {
		user.DealerID = nil
		return nil
	}
	if user.DealerID == nil || strings.TrimSpace(*user.DealerID) == "" {
		return NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "Usuário revendedor precisa de dealer_id")
	}
	return nil
}

func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" || user.Name == "" || user.Lastname == "" || user.PasswordHash == "" {
		return nil, NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "Email, nome, sobrenome e senha são obrigatórios")
	}

	if err := s.ValidatePasswordStrength(user.PasswordHash); err != nil {
		return nil, NewAuthError(ErrWeakPassword, errorcodes.ErrWeakPassword, err.Error())
	}

	if user.RoleID == 0 {
		user.RoleID = domain.RoleSales
	}
	if !domain.ValidRole(user.RoleID) {
		return nil, NewAuthError(ErrInvalidFormat, errorcodes.ErrInvalidFormat, "Perfil inválido")
	}
	if err := checkDealerLink(user); err != nil {
		return nil, err
	}

	user.Email = normalizeEmail(user.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, errorcodes.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.Active = true

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": created.ID,
		"role":    domain.RoleName(created.RoleID),
	}).Info("Usuário criado")

	created.PasswordHash = ""
	return created, nil
}

// UpdateUser aplica apenas os campos presentes; senha muda só pelos fluxos próprios
func (s *Service) UpdateUser(ctx context.Context, req *domain.UpdateUserRequest) error {
	if req.ID == 0 {
		return NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "ID é obrigatório")
	}

	user, err := s.userRepo.GetUserByID(ctx, req.ID)
	if err != nil {
		return NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao buscar usuário")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, req.ID, fmt.Sprintf("Usuário %d não encontrado", req.ID))
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.DealerID != nil {
		user.DealerID = req.DealerID
	}
	if req.RoleID != nil {
		if !domain.ValidRole(*req.RoleID) {
			return NewAuthError(ErrInvalidFormat, errorcodes.ErrInvalidFormat, "Perfil inválido")
		}
		user.RoleID = *req.RoleID
	}
	if err := checkDealerLink(user); err != nil {
		return err
	}
	if req.Deleted != nil {
		now := s.now()
		user.Deleted = *req.Deleted
		user.DeletedAt = &now
	}

	// hash vazio mantém a senha gravada
	user.PasswordHash = ""
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao atualizar usuário")
	}

	return nil
}

func (s *Service) ListUser(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.ListUser(ctx)
	if err != nil {
		return nil, NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao listar usuários")
	}
	return users, nil
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	switch {
	case user == nil:
		return "", NewAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, "Usuário não encontrado")
	case !user.Active:
		return "", NewUserAuthError(ErrUserDisabled, errorcodes.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, errorcodes.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", NewAuthError(err, errorcodes.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Erro ao buscar perfil")
		return nil, NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao buscar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

// GenerateStrongPassword redefine a senha do usuário alvo; apenas administradores podem pedir
func (s *Service) GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID int) (string, error) {
	requester, err := s.userRepo.GetUserByID(ctx, requestUserID)
	if err != nil {
		return "", NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao buscar usuário solicitante")
	}
	if requester == nil {
		return "", NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, requestUserID, "Usuário solicitante não encontrado")
	}
	if requester.RoleID != domain.RoleAdmin {
		return "", NewUserAuthError(ErrNoAdminPrivileges, errorcodes.ErrInsufficientPrivilege, requestUserID, "Apenas administradores podem gerar novas senhas")
	}

	target, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return "", NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao buscar usuário alvo")
	}
	if target == nil {
		return "", NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, targetUserID, "Usuário alvo não encontrado")
	}

	generated, err := generatePassword(generatedPasswordLength)
	if err != nil {
		return "", err
	}
	if err := s.storePassword(ctx, target, generated); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{"user_id": targetUserID, "by": requestUserID}).Info("Senha redefinida pelo administrador")
	return generated, nil
}

// ChangePassword troca a senha do próprio usuário depois de conferir a atual
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao buscar usuário")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrInvalidCredentials, errorcodes.ErrInvalidCredentials, userID, "Senha atual incorreta")
	}
	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, errorcodes.ErrWeakPassword, userID, "Nova senha deve ser diferente da atual")
	}
	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return NewUserAuthError(ErrWeakPassword, errorcodes.ErrWeakPassword, userID, err.Error())
	}

	return s.storePassword(ctx, user, newPassword)
}

func (s *Service) storePassword(ctx context.Context, user *domain.User, plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao atualizar senha")
	}
	return nil
}
