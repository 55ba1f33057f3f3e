package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/st4l1nR/nike-api/internal/apperr"
	"github.com/st4l1nR/nike-api/internal/auth"
)

type Handler struct {
	repo *Repo
	svc  *Service
}

func NewHandler(repo *Repo, svc *Service) *Handler {
	return &Handler{repo: repo, svc: svc}
}

func respondErr(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Payload(err)})
}

// Public: list products (optional category=slug)
func (h *Handler) ListPublic(c *gin.Context) {
	var cat *string
	if v := c.Query("category"); v != "" {
		cat = &v
	}

	items, err := h.repo.ListPublic(c.Request.Context(), cat)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Public: product details with options, values and variants
func (h *Handler) GetPublic(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type CreateOptionReq struct {
	Name   string   `json:"name" binding:"required"`
	Values []string `json:"values" binding:"required"` // e.g. ["Red","Blue"]
}

type CreateProductReq struct {
	CategoryID  int64             `json:"category_id" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Price       float64           `json:"price" binding:"required"`
	ImageURL    string            `json:"image_url"`
	Options     []CreateOptionReq `json:"options"`
}

// Admin: create product + options
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.InvalidInput("invalid request"))
		return
	}
	if req.Price < 0 {
		respondErr(c, apperr.InvalidInput("price must not be negative"))
		return
	}

	userIDAny, _ := c.Get(auth.CtxUserIDKey)
	userID := userIDAny.(int64)

	var opts []CreateOptionInput
	for _, o := range req.Options {
		opts = append(opts, CreateOptionInput{Name: o.Name, Values: o.Values})
	}

	p, err := h.repo.CreateProduct(c.Request.Context(), CreateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		ImageURL:    req.ImageURL,
		CreatedBy:   userID,
		Options:     opts,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Admin: generate one variant per option-value combination
func (h *Handler) GenerateVariants(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, apperr.InvalidInput("invalid product id"))
		return
	}

	variants, err := h.svc.GenerateVariants(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, variants)
}
