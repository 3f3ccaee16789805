package handler

import (
	"encoding/json"
	"marketplace-service/internal/model"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserListTypeFilter(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db)

	seedUser(t, db, "buyer1", model.RoleBuyer)
	seedUser(t, db, "seller1", model.RoleSeller)
	seedUser(t, db, "seller2", model.RoleSeller)

	testCases := []struct {
		name     string
		target   string
		expected int
	}{
		{"sellers only", "/users?type=seller", 2},
		{"buyers only", "/users?type=buyer", 1},
		{"no filter", "/users", 3},
		{"unknown filter value", "/users?type=admin", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodGet, tc.target, "")
			require.NoError(t, h.List(c))
			require.Equal(t, http.StatusOK, rec.Code)

			var users []model.User
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
			assert.Len(t, users, tc.expected)
		})
	}
}

func TestUserGet(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db)
	user := seedUser(t, db, "frank", model.RoleBuyer)

	id := strconv.Itoa(int(user.ID))
	c, rec := newContext(t, http.MethodGet, "/users/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, "frank", fetched.Username)

	c, rec = newContext(t, http.MethodGet, "/users/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserGetByUsername(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db)
	seedUser(t, db, "grace", model.RoleSeller)

	c, rec := newContext(t, http.MethodGet, "/userid?username=grace", "")
	require.NoError(t, h.GetByUsername(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "grace", fetched.Username)

	c, rec = newContext(t, http.MethodGet, "/userid?username=nobody", "")
	require.NoError(t, h.GetByUsername(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(t, http.MethodGet, "/userid", "")
	require.NoError(t, h.GetByUsername(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserUpdate(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db)
	user := seedUser(t, db, "heidi", model.RoleBuyer)

	id := strconv.Itoa(int(user.ID))
	body := `{"username":"heidi2","password":"newpw","active":false,"mobile":"555-0199","name":"Heidi"}`
	c, rec := newContext(t, http.MethodPut, "/users/"+id, body)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "heidi2", updated.Username)
	assert.Equal(t, "newpw", updated.Password)
	assert.False(t, updated.Active)
	assert.Equal(t, "555-0199", updated.Mobile)
	assert.Equal(t, "Heidi", updated.Name)
	assert.Equal(t, "heidi@example.com", updated.Email, "email is not a mutable field")
}

func TestUserUpdateMissingIsNotFound(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db)

	body := `{"username":"ghost","password":"pw"}`
	c, rec := newContext(t, http.MethodPut, "/users/424242", body)
	c.SetParamNames("id")
	c.SetParamValues("424242")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserUpdateDuplicateUsernameIsConflict(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db)
	seedUser(t, db, "ivan", model.RoleBuyer)
	victim := seedUser(t, db, "judy", model.RoleBuyer)

	id := strconv.Itoa(int(victim.ID))
	body := `{"username":"ivan","password":"pw"}`
	c, rec := newContext(t, http.MethodPut, "/users/"+id, body)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db)
	user := seedUser(t, db, "mallory", model.RoleBuyer)

	id := strconv.Itoa(int(user.ID))
	for i := 0; i < 2; i++ {
		c, rec := newContext(t, http.MethodDelete, "/users/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
