package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"pratblog/internal/config"
	"pratblog/internal/models"
	"pratblog/internal/repository"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req repository.UpdateProfileRequest) (*models.UserProfile, error)
	UpdateAvatar(ctx context.Context, userID int64, data []byte, mimetype string) error
	UpdateCover(ctx context.Context, userID int64, data []byte, mimetype string) error
	GetAvatar(ctx context.Context, userID int64) ([]byte, string, error)
	GetCover(ctx context.Context, userID int64) ([]byte, string, error)
	GetExternalPicture(ctx context.Context, url string) ([]byte, string, error)
	GetBookmarkedBlogs(ctx context.Context, userID int64) ([]models.BlogWithStats, error)
	GetLikedBlogs(ctx context.Context, userID int64) ([]models.BlogWithStats, error)
	ToggleFollow(ctx context.Context, followerID, followingID int64) (bool, error)
	FollowStatus(ctx context.Context, followingID int64, followerID *int64) (int64, bool, error)
}

type userService struct {
	userRepo       repository.UserRepository
	blogRepo       repository.BlogRepository
	engagementRepo repository.EngagementRepository
	cfg            *config.Config
	httpClient     *http.Client
}

func NewUserService(userRepo repository.UserRepository, blogRepo repository.BlogRepository, engagementRepo repository.EngagementRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo:       userRepo,
		blogRepo:       blogRepo,
		engagementRepo: engagementRepo,
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.userRepo.GetProfile(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req repository.UpdateProfileRequest) (*models.UserProfile, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}

	return s.userRepo.GetProfile(ctx, userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID int64, data []byte, mimetype string) error {
	return s.userRepo.UpdateAvatar(ctx, userID, data, mimetype)
}

func (s *userService) UpdateCover(ctx context.Context, userID int64, data []byte, mimetype string) error {
	return s.userRepo.UpdateCover(ctx, userID, data, mimetype)
}

// GetAvatar - аватар пользователя по цепочке: загруженные байты,
// затем внешняя картинка профиля через прокси, затем SVG с инициалами.
func (s *userService) GetAvatar(ctx context.Context, userID int64) ([]byte, string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if len(user.AvatarData) > 0 {
		mimetype := "image/jpeg"
		if user.AvatarMimetype != nil {
			mimetype = *user.AvatarMimetype
		}
		return user.AvatarData, mimetype, nil
	}

	if user.Picture != nil && strings.HasPrefix(*user.Picture, "http") {
		data, mimetype, err := s.proxyPicture(ctx, *user.Picture)
		if err == nil {
			return data, mimetype, nil
		}
		// Внешняя картинка недоступна, падаем на инициалы
	}

	name := user.Email
	if user.DisplayName != nil && *user.DisplayName != "" {
		name = *user.DisplayName
	}

	return InitialsSVG(name), "image/svg+xml", nil
}

func (s *userService) GetCover(ctx context.Context, userID int64) ([]byte, string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if len(user.CoverImage) == 0 {
		return nil, "", fmt.Errorf("обложка не найдена")
	}

	mimetype := "image/jpeg"
	if user.CoverImageMimetype != nil {
		mimetype = *user.CoverImageMimetype
	}

	return user.CoverImage, mimetype, nil
}

// GetExternalPicture - прокси для внешних аватаров, чтобы фронтенд не
// ходил на сторонние хосты напрямую
func (s *userService) GetExternalPicture(ctx context.Context, url string) ([]byte, string, error) {
	if !strings.HasPrefix(url, "http") {
		return nil, "", fmt.Errorf("недопустимый адрес картинки")
	}

	return s.proxyPicture(ctx, url)
}

func (s *userService) proxyPicture(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка запроса картинки: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка загрузки картинки: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("источник картинки вернул статус %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxUploadSize))
	if err != nil {
		return nil, "", fmt.Errorf("ошибка чтения картинки: %w", err)
	}

	mimetype := resp.Header.Get("Content-Type")
	if mimetype == "" {
		mimetype = "image/jpeg"
	}

	return data, mimetype, nil
}

var avatarPalette = []string{"#4F46E5", "#059669", "#DC2626", "#D97706", "#7C3AED", "#0891B2"}

// InitialsSVG - плейсхолдер-аватар: до двух инициалов на цветном фоне.
// Цвет детерминирован именем, чтобы аватар не мигал между запросами.
func InitialsSVG(name string) []byte {
	initials := extractInitials(name)

	h := fnv.New32a()
	h.Write([]byte(name))
	color := avatarPalette[h.Sum32()%uint32(len(avatarPalette))]

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">`+
		`<rect width="128" height="128" fill="%s"/>`+
		`<text x="50%%" y="50%%" dy=".1em" fill="#FFFFFF" font-family="Arial, sans-serif" font-size="52" text-anchor="middle" dominant-baseline="middle">%s</text>`+
		`</svg>`, color, initials)

	return []byte(svg)
}

func extractInitials(name string) string {
	var initials []rune

	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				initials = append(initials, unicode.ToUpper(r))
			}
			break
		}
		if len(initials) == 2 {
			break
		}
	}

	if len(initials) == 0 {
		return "?"
	}

	return string(initials)
}

func (s *userService) GetBookmarkedBlogs(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	return s.blogRepo.GetBookmarkedByUserID(ctx, userID)
}

func (s *userService) GetLikedBlogs(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	return s.blogRepo.GetLikedByUserID(ctx, userID)
}

func (s *userService) ToggleFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	if followerID == followingID {
		return false, fmt.Errorf("нельзя подписаться на самого себя")
	}

	return s.engagementRepo.ToggleFollow(ctx, followerID, followingID)
}

func (s *userService) FollowStatus(ctx context.Context, followingID int64, followerID *int64) (int64, bool, error) {
	return s.engagementRepo.FollowStatus(ctx, followingID, followerID)
}
