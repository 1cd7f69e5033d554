package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
)

// CategoryHandler serves product categories. Writes are multipart so an
// image can be uploaded with the fields.
type CategoryHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(db *memdb.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

// RegisterRoutes registers the category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.GET("/:id", h.Get)
		categories.PATCH("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}

// List returns a page of categories
func (h *CategoryHandler) List(c *gin.Context) {
	parentID := queryInt64(c, "parentId")
	active := queryBool(c, "isActive")
	search := c.Query("search")

	rows := h.db.Categories.Find(func(cat catalog.Category) bool {
		return (parentID == nil || (cat.ParentID != nil && *cat.ParentID == *parentID)) &&
			(active == nil || cat.IsActive == *active) &&
			matches(search, cat.Name, cat.NameAr, cat.Description)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Get returns one category
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	cat, ok := h.db.Categories.Get(id)
	if !ok {
		h.NotFound(c, "Category not found")
		return
	}
	h.Success(c, cat)
}

// Create adds a category
func (h *CategoryHandler) Create(c *gin.Context) {
	in, ok := h.bindForm(c, 0)
	if !ok {
		return
	}
	cat := catalog.Category{
		ID:        h.db.CategoryIDs.Next(),
		CreatedAt: time.Now().UTC(),
	}
	applyCategory(&cat, in)
	h.db.Categories.Put(cat)
	h.Created(c, cat)
}

// Update replaces a category. The image is kept unless a new one is sent.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.db.Categories.Get(id); !ok {
		h.NotFound(c, "Category not found")
		return
	}
	in, ok := h.bindForm(c, id)
	if !ok {
		return
	}
	cat, err := h.db.Categories.Update(id, func(cat *catalog.Category) error {
		applyCategory(cat, in)
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Category not found")
		return
	}
	h.Success(c, cat)
}

// Delete removes a category without subcategories
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.db.Categories.Get(id); !ok {
		h.NotFound(c, "Category not found")
		return
	}
	if h.db.CategoryInUse(id) {
		h.Conflict(c, "Category has subcategories and cannot be deleted")
		return
	}
	h.db.Categories.Delete(id)
	h.Message(c, "Category deleted")
}

// bindForm parses and validates a category form. self is the ID of the
// category being edited, 0 when creating.
func (h *CategoryHandler) bindForm(c *gin.Context, self int64) (catalog.CategoryInput, bool) {
	f, err := newForm(c)
	if err != nil {
		h.BadRequest(c, "Expected a multipart form: "+err.Error())
		return catalog.CategoryInput{}, false
	}
	in := catalog.CategoryInput{
		Name:         f.str("name"),
		NameAr:       f.str("nameAr"),
		Description:  f.str("description"),
		ParentID:     f.optInteger("parentId"),
		IsActive:     f.boolean("isActive"),
		DisplayOrder: int(f.integer("displayOrder")),
		Image:        f.file("image"),
	}
	if in.ParentID != nil && !h.validParent(self, *in.ParentID) {
		f.errs.Add("parentId", "Parent category not found or not allowed")
	}
	if err := f.validate(in); err != nil {
		h.HandleError(c, err)
		return catalog.CategoryInput{}, false
	}
	return in, true
}

// validParent rejects unknown parents and parents below self
func (h *CategoryHandler) validParent(self, parentID int64) bool {
	seen := make(map[int64]bool)
	for id := parentID; ; {
		if id == self || seen[id] {
			return false
		}
		seen[id] = true
		cat, ok := h.db.Categories.Get(id)
		if !ok {
			return false
		}
		if cat.ParentID == nil {
			return true
		}
		id = *cat.ParentID
	}
}

func applyCategory(cat *catalog.Category, in catalog.CategoryInput) {
	cat.Name = in.Name
	cat.NameAr = in.NameAr
	cat.Description = in.Description
	cat.ParentID = in.ParentID
	cat.IsActive = in.IsActive
	cat.DisplayOrder = in.DisplayOrder
	if !in.Image.IsEmpty() {
		cat.ImageURL = storeUpload("categories", in.Image)
	}
}

// ReviewHandler moderates product, vendor and shipping reviews
type ReviewHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(db *memdb.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// RegisterRoutes registers the review routes
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews/:kind")
	{
		reviews.GET("", h.List)
		reviews.GET("/:id", h.Get)
		reviews.PUT("/:id/status", h.Moderate)
		reviews.DELETE("/:id", h.Delete)
	}
}

func (h *ReviewHandler) table(c *gin.Context) (*memdb.Table[int64, catalog.Review], bool) {
	t, ok := h.db.Reviews[catalog.ReviewKind(c.Param("kind"))]
	if !ok {
		h.HandleError(c, shared.NewDomainError("INVALID_REVIEW_KIND", "Unknown review kind "+c.Param("kind")))
	}
	return t, ok
}

// List returns a page of reviews of one kind
func (h *ReviewHandler) List(c *gin.Context) {
	t, ok := h.table(c)
	if !ok {
		return
	}
	status := catalog.ReviewStatus(c.Query("status"))
	minRating := queryInt64(c, "minRating")
	search := c.Query("search")

	rows := t.Find(func(r catalog.Review) bool {
		return (status == "" || r.Status == status) &&
			(minRating == nil || int64(r.Rating) >= *minRating) &&
			matches(search, r.TargetName, r.UserName, r.Comment)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Get returns one review
func (h *ReviewHandler) Get(c *gin.Context) {
	t, ok := h.table(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	r, ok := t.Get(id)
	if !ok {
		h.NotFound(c, "Review not found")
		return
	}
	h.Success(c, r)
}

// Moderate approves or rejects a review
func (h *ReviewHandler) Moderate(c *gin.Context) {
	t, ok := h.table(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.ModerateReviewRequest
	if !h.bindValid(c, &req) {
		return
	}
	r, err := t.Update(id, func(r *catalog.Review) error {
		r.Status = req.Status
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Review not found")
		return
	}
	h.Success(c, r)
}

// Delete removes a review
func (h *ReviewHandler) Delete(c *gin.Context) {
	t, ok := h.table(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if !t.Delete(id) {
		h.NotFound(c, "Review not found")
		return
	}
	h.Message(c, "Review deleted")
}
