package handler

import (
	"encoding/json"
	"fmt"
	"marketplace-service/internal/model"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedComment(t *testing.T, db *gorm.DB, productID, userID uint, text string) model.Comment {
	t.Helper()
	comment := model.Comment{ProductID: productID, UserID: userID, Text: text}
	require.NoError(t, db.Create(&comment).Error)
	return comment
}

func TestCommentCreateAndList(t *testing.T) {
	db := newTestDB(t)
	h := NewCommentHandler(db)

	user := seedUser(t, db, "writer", model.RoleBuyer)
	product := seedProduct(t, db, "Mug", "")
	other := seedProduct(t, db, "Lamp", "")

	pid := strconv.Itoa(int(product.ID))
	body := fmt.Sprintf(`{"text":"Great mug","user_id":%d}`, user.ID)
	c, rec := newContext(t, http.MethodPost, "/products/"+pid+"/comments", body)
	c.SetParamNames("id")
	c.SetParamValues(pid)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, product.ID, created.ProductID)
	assert.Zero(t, created.Likes, "likes start at zero")

	seedComment(t, db, other.ID, user.ID, "Nice lamp")

	// Per-product listing only sees the product's own comments.
	c, rec = newContext(t, http.MethodGet, "/products/"+pid+"/comments", "")
	c.SetParamNames("id")
	c.SetParamValues(pid)
	require.NoError(t, h.ListByProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []model.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "Great mug", comments[0].Text)

	// The unfiltered listing sees everything.
	c, rec = newContext(t, http.MethodGet, "/comments", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	assert.Len(t, comments, 2)
}

func TestCommentCreateValidation(t *testing.T) {
	db := newTestDB(t)
	h := NewCommentHandler(db)
	product := seedProduct(t, db, "Mug", "")
	pid := strconv.Itoa(int(product.ID))

	testCases := []struct {
		name string
		body string
	}{
		{"missing text", `{"user_id":1}`},
		{"missing user", `{"text":"hello"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/products/"+pid+"/comments", tc.body)
			c.SetParamNames("id")
			c.SetParamValues(pid)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCommentSetLikes(t *testing.T) {
	db := newTestDB(t)
	h := NewCommentHandler(db)

	user := seedUser(t, db, "liker", model.RoleBuyer)
	product := seedProduct(t, db, "Mug", "")
	comment := seedComment(t, db, product.ID, user.ID, "Great mug")

	pid := strconv.Itoa(int(product.ID))
	cid := strconv.Itoa(int(comment.ID))

	c, rec := newContext(t, http.MethodPut, "/products/"+pid+"/comments/"+cid, `{"likes":7}`)
	c.SetParamNames("id", "commentId")
	c.SetParamValues(pid, cid)
	require.NoError(t, h.UpdateLikes(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 7, updated.Likes)

	// Same product, non-matching comment id: zero rows updated.
	c, rec = newContext(t, http.MethodPut, "/products/"+pid+"/comments/999", `{"likes":3}`)
	c.SetParamNames("id", "commentId")
	c.SetParamValues(pid, "999")
	require.NoError(t, h.UpdateLikes(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The stored value is untouched by the failed update.
	require.NoError(t, db.First(&updated, comment.ID).Error)
	assert.Equal(t, 7, updated.Likes)
}

func TestCommentSetLikesValidation(t *testing.T) {
	db := newTestDB(t)
	h := NewCommentHandler(db)

	user := seedUser(t, db, "liker", model.RoleBuyer)
	product := seedProduct(t, db, "Mug", "")
	comment := seedComment(t, db, product.ID, user.ID, "Great mug")

	pid := strconv.Itoa(int(product.ID))
	cid := strconv.Itoa(int(comment.ID))

	testCases := []struct {
		name string
		body string
	}{
		{"missing likes", `{}`},
		{"negative likes", `{"likes":-1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPut, "/products/"+pid+"/comments/"+cid, tc.body)
			c.SetParamNames("id", "commentId")
			c.SetParamValues(pid, cid)
			require.NoError(t, h.UpdateLikes(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCommentDeleteScoped(t *testing.T) {
	db := newTestDB(t)
	h := NewCommentHandler(db)

	user := seedUser(t, db, "writer", model.RoleBuyer)
	product := seedProduct(t, db, "Mug", "")
	other := seedProduct(t, db, "Lamp", "")
	comment := seedComment(t, db, product.ID, user.ID, "Great mug")

	cid := strconv.Itoa(int(comment.ID))

	// Wrong product scope: succeeds but removes nothing.
	wrongPid := strconv.Itoa(int(other.ID))
	c, rec := newContext(t, http.MethodDelete, "/products/"+wrongPid+"/comments/"+cid, "")
	c.SetParamNames("id", "commentId")
	c.SetParamValues(wrongPid, cid)
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Correct scope removes the row.
	pid := strconv.Itoa(int(product.ID))
	c, rec = newContext(t, http.MethodDelete, "/products/"+pid+"/comments/"+cid, "")
	c.SetParamNames("id", "commentId")
	c.SetParamValues(pid, cid)
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, db.Model(&model.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}
