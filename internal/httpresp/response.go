// Package httpresp padroniza o corpo das respostas de listagem.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse embrulha coleções com o total, assim o front não
// precisa contar o slice.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func List[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  items,
		Total: len(items),
	})
}
