package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"pratblog/internal/config"
	"pratblog/internal/models"
	"pratblog/internal/repository"
)

// ErrForbidden - попытка изменить чужой ресурс
var ErrForbidden = fmt.Errorf("нет прав на это действие")

type CreateBlogRequest struct {
	Title       string `validate:"required"`
	Category    string `validate:"required"`
	Description string `validate:"required"`
	Content     string `validate:"required"`
	Image       []byte
	Mimetype    string
}

type BlogService interface {
	Create(ctx context.Context, userID int64, req CreateBlogRequest) (*models.Blog, error)
	GetAll(ctx context.Context) ([]models.BlogWithStats, error)
	GetByID(ctx context.Context, blogID int64) (*models.BlogWithStats, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogWithStats, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error)
	GetTrending(ctx context.Context) ([]models.BlogWithStats, error)
	Update(ctx context.Context, blogID, userID int64, req CreateBlogRequest) error
	Delete(ctx context.Context, blogID, userID int64) error
	GetImage(ctx context.Context, blogID int64) ([]byte, string, error)
	RecordView(blogID int64, userID *int64, ipAddress string)
	GenerateSitemap(ctx context.Context) (string, error)
	ToggleLike(ctx context.Context, blogID, userID int64) (bool, error)
	LikeStatus(ctx context.Context, blogID int64, userID *int64) (int64, bool, error)
	ToggleBookmark(ctx context.Context, blogID, userID int64) (bool, error)
	BookmarkStatus(ctx context.Context, blogID int64, userID *int64) (bool, error)
}

type blogService struct {
	blogRepo       repository.BlogRepository
	viewRepo       repository.ViewRepository
	engagementRepo repository.EngagementRepository
	cfg            *config.Config
}

func NewBlogService(blogRepo repository.BlogRepository, viewRepo repository.ViewRepository, engagementRepo repository.EngagementRepository, cfg *config.Config) BlogService {
	return &blogService{
		blogRepo:       blogRepo,
		viewRepo:       viewRepo,
		engagementRepo: engagementRepo,
		cfg:            cfg,
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug - URL-идентификатор из заголовка: нижний регистр,
// все не-буквенно-цифровое схлопывается в дефис.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *blogService) Create(ctx context.Context, userID int64, req CreateBlogRequest) (*models.Blog, error) {
	slug := GenerateSlug(req.Title)

	// При коллизии slug дополняется меткой времени
	if _, err := s.blogRepo.GetIDBySlug(ctx, slug); err == nil {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
	}

	blog := &models.Blog{
		UserID:      userID,
		Title:       req.Title,
		Slug:        slug,
		Category:    req.Category,
		Description: req.Description,
		Content:     req.Content,
		Image:       req.Image,
		Mimetype:    req.Mimetype,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) GetAll(ctx context.Context) ([]models.BlogWithStats, error) {
	return s.blogRepo.GetAll(ctx)
}

func (s *blogService) GetByID(ctx context.Context, blogID int64) (*models.BlogWithStats, error) {
	return s.blogRepo.GetByID(ctx, blogID)
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*models.BlogWithStats, error) {
	return s.blogRepo.GetBySlug(ctx, slug)
}

func (s *blogService) GetByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	return s.blogRepo.GetByUserID(ctx, userID)
}

func (s *blogService) GetTrending(ctx context.Context) ([]models.BlogWithStats, error) {
	return s.blogRepo.GetTrending(ctx, 10)
}

func (s *blogService) Update(ctx context.Context, blogID, userID int64, req CreateBlogRequest) error {
	ownerID, err := s.blogRepo.GetOwnerID(ctx, blogID)
	if err != nil {
		return err
	}

	if ownerID != userID {
		return ErrForbidden
	}

	blog := &models.Blog{
		ID:          blogID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Content:     req.Content,
		Image:       req.Image,
		Mimetype:    req.Mimetype,
	}

	return s.blogRepo.Update(ctx, blog)
}

func (s *blogService) Delete(ctx context.Context, blogID, userID int64) error {
	ownerID, err := s.blogRepo.GetOwnerID(ctx, blogID)
	if err != nil {
		return err
	}

	if ownerID != userID {
		return ErrForbidden
	}

	return s.blogRepo.Delete(ctx, blogID)
}

func (s *blogService) GetImage(ctx context.Context, blogID int64) ([]byte, string, error) {
	return s.blogRepo.GetImage(ctx, blogID)
}

// RecordView - фоновая запись просмотра. Ответ клиенту не ждет записи,
// ошибка только логируется.
func (s *blogService) RecordView(blogID int64, userID *int64, ipAddress string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.viewRepo.RecordView(ctx, blogID, userID, ipAddress); err != nil {
			log.Printf("ошибка при записи просмотра поста %d: %v", blogID, err)
		}
	}()
}

func (s *blogService) ToggleLike(ctx context.Context, blogID, userID int64) (bool, error) {
	return s.engagementRepo.ToggleBlogLike(ctx, blogID, userID)
}

func (s *blogService) LikeStatus(ctx context.Context, blogID int64, userID *int64) (int64, bool, error) {
	return s.engagementRepo.BlogLikeStatus(ctx, blogID, userID)
}

func (s *blogService) ToggleBookmark(ctx context.Context, blogID, userID int64) (bool, error) {
	return s.engagementRepo.ToggleBookmark(ctx, blogID, userID)
}

func (s *blogService) BookmarkStatus(ctx context.Context, blogID int64, userID *int64) (bool, error) {
	return s.engagementRepo.BookmarkStatus(ctx, blogID, userID)
}

func (s *blogService) GenerateSitemap(ctx context.Context) (string, error) {
	entries, err := s.blogRepo.ListSitemapEntries(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	b.WriteString("  <url>\n")
	b.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", s.cfg.FrontendURL))
	b.WriteString("    <changefreq>daily</changefreq>\n")
	b.WriteString("    <priority>1.0</priority>\n")
	b.WriteString("  </url>\n")

	for _, page := range []string{"/explore", "/about"} {
		b.WriteString("  <url>\n")
		b.WriteString(fmt.Sprintf("    <loc>%s%s</loc>\n", s.cfg.FrontendURL, page))
		b.WriteString("    <changefreq>weekly</changefreq>\n")
		b.WriteString("    <priority>0.5</priority>\n")
		b.WriteString("  </url>\n")
	}

	for _, entry := range entries {
		b.WriteString("  <url>\n")
		b.WriteString(fmt.Sprintf("    <loc>%s/blog/%s</loc>\n", s.cfg.FrontendURL, entry.Slug))
		b.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.CreatedAt.Format("2006-01-02")))
		b.WriteString("    <changefreq>weekly</changefreq>\n")
		b.WriteString("    <priority>0.8</priority>\n")
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>\n")

	return b.String(), nil
}
