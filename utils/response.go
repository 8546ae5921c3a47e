package utils

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalItems   int64 `json:"totalItems,omitempty"`
	TotalPages   int   `json:"totalPages,omitempty"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func NewPagination(page, limit int, totalItems int64) *Pagination {
	return &Pagination{
		CurrentPage:  page,
		TotalItems:   totalItems,
		TotalPages:   int(math.Ceil(float64(totalItems) / float64(limit))),
		ItemsPerPage: limit,
	}
}

func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func SuccessPaginated(c *gin.Context, message string, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, Pagination: p})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// Internal logs the full error server-side and answers with a generic
// message. The driver text reaches the client only outside release mode.
// Connection-class failures are reported as 503.
func Internal(c *gin.Context, message string, err error) {
	log.Printf("❌ %s: %v", message, err)

	resp := Response{Success: false, Message: "Error interno del servidor"}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		resp.Error = err.Error()
	}
	c.JSON(storageStatus(err), resp)
}

func storageStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "bad connection") ||
		strings.Contains(msg, "broken pipe") {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
