package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/api"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
	"github.com/sooquk/dashboard/internal/interfaces/http/dto"
)

func ptr[T any](v T) *T { return &v }

func TestCategories_CreateWithImage(t *testing.T) {
	db := fixtureDB()
	engine := asAdmin(NewCategoryHandler(db))

	form := api.CategoryForm(catalog.CategoryInput{
		Name: "Laptops", NameAr: "حواسيب", ParentID: ptr(int64(1)), IsActive: true, DisplayOrder: 2,
		Image: &shared.File{Name: "laptops.png", Data: pngBytes},
	})
	rec, env := do(t, engine, http.MethodPost, "/api/categories", form)

	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	cat := data[catalog.Category](t, env)
	assert.Equal(t, int64(3), cat.ID)
	require.NotNil(t, cat.ParentID)
	assert.Equal(t, int64(1), *cat.ParentID)
	assert.True(t, strings.HasPrefix(cat.ImageURL, uploadBaseURL+"categories/"))
	assert.True(t, strings.HasSuffix(cat.ImageURL, ".png"))
	assert.Equal(t, 3, db.Categories.Len())
}

func TestCategories_CreateRejectsNonImages(t *testing.T) {
	engine := asAdmin(NewCategoryHandler(fixtureDB()))

	form := api.CategoryForm(catalog.CategoryInput{
		Name: "Books", NameAr: "كتب",
		Image: &shared.File{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")},
	})
	rec, env := do(t, engine, http.MethodPost, "/api/categories", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "image")
}

func TestCategories_CreateNeedsMultipart(t *testing.T) {
	engine := asAdmin(NewCategoryHandler(fixtureDB()))

	rec, env := do(t, engine, http.MethodPost, "/api/categories", apiclient.JSON(map[string]string{"name": "Books"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, env.Error.Code)
}

func TestCategories_UpdateRejectsCycles(t *testing.T) {
	engine := asAdmin(NewCategoryHandler(fixtureDB()))

	for _, tc := range []struct {
		name   string
		id     string
		parent int64
	}{
		{"self", "2", 2},
		{"descendant", "1", 2},
		{"unknown", "2", 77},
	} {
		t.Run(tc.name, func(t *testing.T) {
			form := api.CategoryForm(catalog.CategoryInput{Name: "X", NameAr: "س", ParentID: ptr(tc.parent)})
			rec, env := do(t, engine, http.MethodPatch, "/api/categories/"+tc.id, form)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, env.Errors, "parentId")
		})
	}
}

func TestCategories_UpdateKeepsImage(t *testing.T) {
	db := fixtureDB()
	_, err := db.Categories.Update(2, func(c *catalog.Category) error {
		c.ImageURL = "https://cdn.sooquk.test/uploads/categories/phones.png"
		return nil
	})
	require.NoError(t, err)
	engine := asAdmin(NewCategoryHandler(db))

	form := api.CategoryForm(catalog.CategoryInput{Name: "Mobiles", NameAr: "هواتف", ParentID: ptr(int64(1))})
	rec, env := do(t, engine, http.MethodPatch, "/api/categories/2", form)

	require.Equal(t, http.StatusOK, rec.Code)
	cat := data[catalog.Category](t, env)
	assert.Equal(t, "Mobiles", cat.Name)
	assert.False(t, cat.IsActive)
	assert.Equal(t, "https://cdn.sooquk.test/uploads/categories/phones.png", cat.ImageURL)
}

func TestCategories_Delete(t *testing.T) {
	db := fixtureDB()
	engine := asAdmin(NewCategoryHandler(db))

	rec, _ := do(t, engine, http.MethodDelete, "/api/categories/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, engine, http.MethodDelete, "/api/categories/2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, engine, http.MethodDelete, "/api/categories/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, db.Categories.Len())
}

func TestCategories_ListByParent(t *testing.T) {
	engine := asAdmin(NewCategoryHandler(fixtureDB()))

	_, env := do(t, engine, http.MethodGet, "/api/categories?parentId=1", nil)

	page := data[listData[catalog.Category]](t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Phones", page.Items[0].Name)
}

func TestReviews_Moderation(t *testing.T) {
	db := fixtureDB()
	db.Reviews[catalog.ReviewKindVendor].Put(catalog.Review{
		ID: db.ReviewIDs.Next(), Kind: catalog.ReviewKindVendor, TargetID: vendorID, TargetName: "Rami's",
		UserName: "Lina", Rating: 2, Comment: "Late delivery", Status: catalog.ReviewStatusPending,
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	engine := asAdmin(NewReviewHandler(db))

	_, env := do(t, engine, http.MethodGet, "/api/reviews/vendors?status=Pending&search=late", nil)
	page := data[listData[catalog.Review]](t, env)
	require.Len(t, page.Items, 1)

	_, env = do(t, engine, http.MethodGet, "/api/reviews/products", nil)
	assert.Empty(t, data[listData[catalog.Review]](t, env).Items)

	rec, env := do(t, engine, http.MethodPut, "/api/reviews/vendors/1/status",
		apiclient.JSON(catalog.ModerateReviewRequest{Status: catalog.ReviewStatusApproved}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.ReviewStatusApproved, data[catalog.Review](t, env).Status)

	rec, env = do(t, engine, http.MethodPut, "/api/reviews/vendors/1/status",
		apiclient.JSON(catalog.ModerateReviewRequest{Status: catalog.ReviewStatusPending}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "status")

	rec, _ = do(t, engine, http.MethodDelete, "/api/reviews/vendors/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, engine, http.MethodGet, "/api/reviews/vendors/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviews_UnknownKind(t *testing.T) {
	engine := asAdmin(NewReviewHandler(fixtureDB()))

	rec, env := do(t, engine, http.MethodGet, "/api/reviews/stores", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, env.Error.Code)
}
