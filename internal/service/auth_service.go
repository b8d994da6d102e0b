package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"pratblog/internal/config"
	"pratblog/internal/models"
	"pratblog/internal/repository"
)

// ErrTokenExpired - токен корректно подписан, но срок жизни истек.
// Клиент по этому признаку понимает, что нужен повторный логин.
var ErrTokenExpired = errors.New("срок действия токена истек")

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, sessionToken string) error
	GenerateToken(user *models.User) (string, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error)
	ResolveIdentity(ctx context.Context, sessionToken, bearerToken string) (*models.User, error)
	GoogleAuthURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string) (*models.User, string, error)
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	oauthConfig *oauth2.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.CallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	if !strings.HasSuffix(strings.ToLower(email), s.cfg.AllowedEmailDomain) {
		return nil, "", fmt.Errorf("регистрация доступна только для адресов %s", s.cfg.AllowedEmailDomain)
	}

	existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, "", fmt.Errorf("пользователь с email %s уже существует", email)
	}

	user, err := s.userRepo.CreateUser(ctx, email, password)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	sessionToken, err := s.sessionRepo.Create(ctx, user.ID, s.cfg.SessionLifetime)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при создании сессии: %w", err)
	}

	return user, sessionToken, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	sessionToken, err := s.sessionRepo.Create(ctx, user.ID, s.cfg.SessionLifetime)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при создании сессии: %w", err)
	}

	return user, sessionToken, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	return s.sessionRepo.Delete(ctx, sessionToken)
}

func (s *authService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) validateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims")
	}

	return claims, nil
}

func (s *authService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.validateToken(tokenString)
	if err != nil {
		return nil, err
	}

	rawID, ok := claims["userId"].(float64)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims")
	}

	return s.userRepo.GetUserByID(ctx, int64(rawID))
}

// ResolveIdentity - цепочка опознания: сначала cookie-сессия, затем
// Bearer-токен. Истекший, но корректно подписанный токен возвращает
// ErrTokenExpired, любой другой провал означает анонимный запрос.
func (s *authService) ResolveIdentity(ctx context.Context, sessionToken, bearerToken string) (*models.User, error) {
	if sessionToken != "" {
		user, err := s.sessionRepo.GetUserByToken(ctx, sessionToken)
		if err == nil {
			return user, nil
		}
	}

	if bearerToken != "" {
		return s.GetUserFromToken(ctx, bearerToken)
	}

	return nil, fmt.Errorf("не авторизован")
}

func (s *authService) GoogleAuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

func (s *authService) HandleGoogleCallback(ctx context.Context, code string) (*models.User, string, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка обмена кода авторизации: %w", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, token)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.UpsertGoogleUser(ctx, info.Email, info.Name, info.Picture)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при сохранении Google-пользователя: %w", err)
	}

	sessionToken, err := s.sessionRepo.Create(ctx, user.ID, s.cfg.SessionLifetime)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при создании сессии: %w", err)
	}

	return user, sessionToken, nil
}

func (s *authService) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса профиля Google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google вернул статус %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("ошибка чтения профиля Google: %w", err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("Google не вернул email")
	}

	return &info, nil
}
