package models

import (
	"time"
)

type User struct {
	ID                 int64     `json:"id" db:"id"`
	Email              string    `json:"email" db:"email"`
	Password           *string   `json:"-" db:"password"`
	DisplayName        *string   `json:"display_name" db:"display_name"`
	Picture            *string   `json:"picture" db:"picture"`
	Bio                *string   `json:"bio" db:"bio"`
	Skills             *string   `json:"skills" db:"skills"`
	Location           *string   `json:"location" db:"location"`
	Website            *string   `json:"website" db:"website"`
	Twitter            *string   `json:"twitter" db:"twitter"`
	Linkedin           *string   `json:"linkedin" db:"linkedin"`
	AvatarData         []byte    `json:"-" db:"avatar_data"`
	AvatarMimetype     *string   `json:"avatar_mimetype" db:"avatar_mimetype"`
	CoverImage         []byte    `json:"-" db:"cover_image"`
	CoverImageMimetype *string   `json:"cover_image_mimetype" db:"cover_image_mimetype"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile - публичный профиль с агрегированной статистикой
type UserProfile struct {
	User
	BlogsCount     int64 `json:"blogs_count" db:"blogs_count"`
	FollowersCount int64 `json:"followers_count" db:"followers_count"`
	FollowingCount int64 `json:"following_count" db:"following_count"`
}

type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

type Blog struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Content     string    `json:"content" db:"content"`
	Image       []byte    `json:"-" db:"image"`
	Mimetype    string    `json:"mimetype" db:"mimetype"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// BlogWithStats - строка листинга/деталки с авторскими полями и счетчиками.
// likes_count и views_count всегда приходят через COALESCE, никогда NULL.
type BlogWithStats struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug,omitempty" db:"slug"`
	Description string    `json:"description" db:"description"`
	Content     string    `json:"content,omitempty" db:"content"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	DisplayName *string   `json:"display_name" db:"display_name"`
	Picture     *string   `json:"picture" db:"picture"`
	Email       string    `json:"email,omitempty" db:"email"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	LikesCount  int64     `json:"likes_count" db:"likes_count"`
	ViewsCount  int64     `json:"views_count" db:"views_count"`
}

type Comment struct {
	ID          int64     `json:"id" db:"id"`
	BlogID      int64     `json:"blog_id,omitempty" db:"blog_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	ParentID    *int64    `json:"parent_id" db:"parent_id"`
	Content     string    `json:"content" db:"content"`
	LikesCount  int64     `json:"likes_count" db:"likes_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	DisplayName *string   `json:"display_name" db:"display_name"`
	Picture     *string   `json:"picture" db:"picture"`
	Email       string    `json:"email" db:"email"`
	PictureURL  *string   `json:"picture_url" db:"picture_url"`
}

// CommentNode - узел дерева комментариев для рендеринга
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

type SitemapEntry struct {
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}
