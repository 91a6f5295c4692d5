package api

import (
	"errors"
	"net/http"

	"github.com/NordCoder/Uptimer/internal/domain/history"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const fileFieldMsg = "`field` param in form shouldn't be a File"

type Handler struct {
	reader *Reader
	log    *zap.Logger
}

func NewHandler(reader *Reader, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{reader: reader, log: log}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.history)
	r.POST("/form/:field", h.formEcho)
}

func (h *Handler) history(c *gin.Context) {
	b, err := h.reader.History(c.Request.Context())
	if err != nil {
		status, kind := classify(err)
		obs.WithTrace(c.Request.Context(), h.log).Error("read history", zap.String("kind", kind), zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
		return
	}
	c.Data(http.StatusOK, "application/json", b)
}

// formEcho answers {"<field>":"<value>"} for a text form field.
func (h *Handler) formEcho(c *gin.Context) {
	field := c.Param("field")
	if v, ok := c.GetPostForm(field); ok {
		c.JSON(http.StatusOK, gin.H{field: v})
		return
	}
	if _, err := c.FormFile(field); err == nil {
		c.String(http.StatusUnprocessableEntity, fileFieldMsg)
		return
	}
	c.String(http.StatusBadRequest, "Bad Request")
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, history.ErrMissingKey):
		return http.StatusInternalServerError, "missing_key"
	case errors.Is(err, history.ErrDecode):
		return http.StatusInternalServerError, "decode_error"
	case errors.Is(err, history.ErrUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
