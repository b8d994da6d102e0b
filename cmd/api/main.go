package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"pratblog/cmd/app"
	"pratblog/internal/config"
	handlers "pratblog/internal/handler"
	"pratblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			handlers.WriteError(w, "БД недоступна", http.StatusServiceUnavailable)
			return
		}
		handlers.WriteSuccess(w, map[string]interface{}{"success": true}, http.StatusOK)
	}).Methods(http.MethodGet)

	router.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", handler.Logout).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/auth/google", handler.GoogleAuth).Methods(http.MethodGet)
	router.HandleFunc("/auth/google/callback", handler.GoogleCallback).Methods(http.MethodGet)
	router.HandleFunc("/auth/google/failure", handler.GoogleFailure).Methods(http.MethodGet)
	router.HandleFunc("/me", handler.Me).Methods(http.MethodGet)
	router.HandleFunc("/user-picture", handler.UserPicture).Methods(http.MethodGet)

	router.HandleFunc("/blog", handler.CreateBlog).Methods(http.MethodPost)
	router.HandleFunc("/blogs", handler.GetBlogs).Methods(http.MethodGet)
	router.HandleFunc("/blogs/{id:[0-9]+}", handler.GetBlogByID).Methods(http.MethodGet)
	router.HandleFunc("/blog/{id:[0-9]+}/image", handler.GetBlogImage).Methods(http.MethodGet)
	router.HandleFunc("/blog/{slug}", handler.GetBlogBySlug).Methods(http.MethodGet)
	router.HandleFunc("/user/{id:[0-9]+}/blogs", handler.GetUserBlogs).Methods(http.MethodGet)
	router.HandleFunc("/sitemap.xml", handler.Sitemap).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// trending раньше {id}, иначе его перехватит числовой маршрут
	api.HandleFunc("/blogs/trending", handler.GetTrendingBlogs).Methods(http.MethodGet)
	api.HandleFunc("/blog/{id:[0-9]+}/image", handler.GetBlogImage).Methods(http.MethodGet)
	api.HandleFunc("/user-picture", handler.UserPicture).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{id:[0-9]+}", handler.UpdateBlog).Methods(http.MethodPut)
	api.HandleFunc("/blogs/{id:[0-9]+}", handler.DeleteBlog).Methods(http.MethodDelete)
	api.HandleFunc("/blogs/{id:[0-9]+}/like", handler.ToggleBlogLike).Methods(http.MethodPost)
	api.HandleFunc("/blogs/{id:[0-9]+}/likes", handler.BlogLikeStatus).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{id:[0-9]+}/bookmark", handler.ToggleBookmark).Methods(http.MethodPost)
	api.HandleFunc("/blogs/{id:[0-9]+}/bookmark", handler.BookmarkStatus).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{blogId:[0-9]+}/comments", handler.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{blogId:[0-9]+}/comments", handler.CreateComment).Methods(http.MethodPost)
	api.HandleFunc("/comments/{id:[0-9]+}", handler.UpdateComment).Methods(http.MethodPut)
	api.HandleFunc("/comments/{id:[0-9]+}/like", handler.ToggleCommentLike).Methods(http.MethodPost)

	api.HandleFunc("/users/{id:[0-9]+}", handler.GetUserProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", handler.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/users/{id:[0-9]+}/avatar", handler.UploadAvatar).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/avatar", handler.GetAvatar).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/cover", handler.UploadCover).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/cover", handler.GetCover).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/bookmarks", handler.GetBookmarkedBlogs).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/liked-blogs", handler.GetLikedBlogs).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/follow", handler.ToggleFollow).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/follow", handler.FollowStatus).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.IdentityMiddleware(services.Auth),
		middleware.CORSMiddleware(cfg.FrontendURL),
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
