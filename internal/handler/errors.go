package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse - стандартный конверт ответа с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Message: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
