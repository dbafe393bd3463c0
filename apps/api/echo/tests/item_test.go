package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gbswdev/snackbar/core/item"
)

func Test_itemApi_query(t *testing.T) {
	env := setup()

	cola := createItem(t, env, "콜라", item.TypeDrink)
	ramen := createItem(t, env, "신라면", item.TypeRamen)

	req, rec := newRequest(http.MethodGet, "/items")
	env.app.ServeHTTP(rec, req)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, cola, ramen)}
	checkCodeAndData(t, tt, rec)

	// repeated GET with no intervening writes returns the identical array
	req2, rec2 := newRequest(http.MethodGet, "/items")
	env.app.ServeHTTP(rec2, req2)
	assert.Equal(t, rec.Body.String(), rec2.Body.String())
}

func Test_itemApi_create(t *testing.T) {
	env := setup()

	student := createStudent(t, env, "s1002", "홍길동")
	staff := createTeacher(t, env, "t1001", "김선생")
	staffToken := getToken(t, staff)

	body := marchallObj(t, map[string]interface{}{"name": "콜라", "type": "drink", "stock": true})

	tests := []httpTest{
		{
			name: "Auth required", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Staff required", body: body, token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Required fields", body: marchallObj(t, map[string]interface{}{}), token: staffToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name": "this field is required",
				"type": "this field is required",
			}),
		},
		{
			name: "Unknown type rejected", token: staffToken,
			body:     marchallObj(t, map[string]interface{}{"name": "피자", "type": "pizza"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"type": "type must be one of [drink snack ramen]"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/items", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Item created", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/items", staffToken, body)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var it item.Item
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &it))
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, "콜라", it.Name)
		assert.Equal(t, item.TypeDrink, it.Type)
		assert.True(t, it.Stock)

		// round-trip: the created record comes back verbatim
		req, rec = newRequest(http.MethodGet, "/items")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, it)}, rec)
	})
}

func Test_itemApi_update(t *testing.T) {
	env := setup()

	staff := createTeacher(t, env, "t1001", "김선생")
	staffToken := getToken(t, staff)
	cola := createItem(t, env, "콜라", item.TypeDrink)

	t.Run("Unknown item", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/items/nope", staffToken, marchallObj(t, map[string]string{"name": "환타"}))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "item not found"}),
		}, rec)
	})

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		sold := false
		req, rec := newAuthRequest(
			http.MethodPut, "/items/"+cola.ID, staffToken,
			marchallObj(t, map[string]interface{}{"stock": &sold}),
		)
		env.app.ServeHTTP(rec, req)

		want := cola
		want.Stock = false
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, want)}, rec)
	})

	t.Run("Rename", func(t *testing.T) {
		req, rec := newAuthRequest(
			http.MethodPut, "/items/"+cola.ID, staffToken,
			marchallObj(t, map[string]string{"name": "제로콜라"}),
		)
		env.app.ServeHTTP(rec, req)

		want := cola
		want.Name = "제로콜라"
		want.Stock = false // from the previous update
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, want)}, rec)
	})
}

func Test_itemApi_destroy(t *testing.T) {
	env := setup()

	staff := createTeacher(t, env, "t1001", "김선생")
	staffToken := getToken(t, staff)
	cola := createItem(t, env, "콜라", item.TypeDrink)

	tests := []httpTest{
		{
			name: "Unknown item", path: "/items/nope",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "item not found"}),
		},
		{
			name: "Item deleted", path: "/items/" + cola.ID,
			wantCode: http.StatusOK, wantData: marchallObj(t, map[string]string{"message": "item deleted"}),
		},
		{
			name: "Delete is not idempotent", path: "/items/" + cola.ID,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "item not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, tt.path, staffToken)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
