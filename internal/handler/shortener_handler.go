package handler

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gamassss/brevly/internal/domain"
	"github.com/gamassss/brevly/pkg/response"
	appvalidator "github.com/gamassss/brevly/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(bindingFieldName)
	}
}

// bindingFieldName reports fields by the key the client sent.
func bindingFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

type ShortenerService interface {
	CreateShortenedLink(ctx context.Context, req *domain.CreateShortenedLinkRequest) (*domain.CreatedShortenedLink, error)
	GetShortenedLinkByID(ctx context.Context, id string) (*domain.ShortenedLink, error)
	ResolveShortenedLink(ctx context.Context, shortenedURL string) (*domain.ShortenedLink, error)
	ListShortenedLinks(ctx context.Context, req *domain.ListShortenedLinksRequest) (*domain.ShortenedLinkPage, error)
	DeleteShortenedLink(ctx context.Context, id string) error
	ExportShortenedLinksCSV(ctx context.Context) (string, error)
}

type ShortenerHandler struct {
	service ShortenerService
}

func NewShortenerHandler(service ShortenerService) *ShortenerHandler {
	return &ShortenerHandler{service: service}
}

func (h *ShortenerHandler) CreateShortenedLink(c *gin.Context) {
	var req domain.CreateShortenedLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, bindingIssues(err))
		return
	}

	link, err := h.service.CreateShortenedLink(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, link)
}

func (h *ShortenerHandler) ListShortenedLinks(c *gin.Context) {
	var req domain.ListShortenedLinksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationErrors(c, bindingIssues(err))
		return
	}

	page, err := h.service.ListShortenedLinks(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, page)
}

func (h *ShortenerHandler) ExportShortenedLinksCSV(c *gin.Context) {
	csv, err := h.service.ExportShortenedLinksCSV(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shortened-links.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (h *ShortenerHandler) GetShortenedLinkByID(c *gin.Context) {
	link, err := h.service.GetShortenedLinkByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, link)
}

func (h *ShortenerHandler) ResolveShortenedLink(c *gin.Context) {
	link, err := h.service.ResolveShortenedLink(c.Request.Context(), c.Param("shortenedUrl"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, link)
}

func (h *ShortenerHandler) DeleteShortenedLink(c *gin.Context) {
	if err := h.service.DeleteShortenedLink(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.NoContent(c)
}

func writeError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		response.BadRequest(c, err.Error())
	case domain.KindNotFound, domain.KindUnreachable:
		response.NotFound(c, err.Error())
	case domain.KindConflict:
		response.Conflict(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalServerError(c)
	}
}

func bindingIssues(err error) []response.ValidationError {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		issues := make([]response.ValidationError, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			issues = append(issues, response.ValidationError{
				Field:   fe.Field(),
				Message: appvalidator.FieldMessage(fe),
			})
		}
		return issues
	}

	return []response.ValidationError{{Message: err.Error()}}
}
