package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gbswdev/snackbar/core/order"
)

func Test_orderApi_create(t *testing.T) {
	env := setup()

	student := createStudent(t, env, "s1002", "홍길동")
	studentToken := getToken(t, student)

	body := marchallObj(t, map[string]interface{}{
		"studentName": "홍길동",
		"userJob":     "student",
		"menu":        "콜라",
		"quantity":    2,
	})

	tests := []httpTest{
		{
			name: "Auth required", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Required fields", body: marchallObj(t, map[string]interface{}{}), token: studentToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"studentName": "this field is required",
				"userJob":     "this field is required",
				"menu":        "this field is required",
				"quantity":    "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/orders", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Order created pending with one newOrder event", func(t *testing.T) {
		sub := env.broker.Subscribe()
		defer sub.Close()

		req, rec := newAuthRequest(http.MethodPost, "/orders", studentToken, body)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var ord order.Order
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ord))
		assert.NotEmpty(t, ord.ID)
		assert.Equal(t, order.StatusPending, ord.Status)
		assert.Equal(t, "홍길동", ord.StudentName)
		assert.Equal(t, "콜라", ord.Menu)
		assert.Equal(t, 2, ord.Quantity)

		evts := drainEvents(sub)
		if assert.Len(t, evts, 1) {
			assert.Equal(t, "newOrder", evts[0].EventName())
			evtOrd := evts[0].EventData().(order.Order)
			assert.Equal(t, ord.ID, evtOrd.ID)
			assert.Equal(t, "홍길동", evtOrd.StudentName)
			assert.Equal(t, "콜라", evtOrd.Menu)
			assert.Equal(t, 2, evtOrd.Quantity)
		}
	})
}

func Test_orderApi_query(t *testing.T) {
	env := setup()

	ord1 := createOrder(t, env, "홍길동", "콜라", 2)
	ord2 := createOrder(t, env, "이몽룡", "사이다", 1)
	ord3 := createOrder(t, env, "홍길동", "신라면", 1)

	tests := []httpTest{
		{name: "All orders newest first", path: "/orders", wantData: marchallList(t, ord3, ord2, ord1)},
		{name: "Filter by student", path: "/orders?studentName=" + urlQuery("홍길동"), wantData: marchallList(t, ord3, ord1)},
		{name: "Filter unknown student", path: "/orders?studentName=nope", wantData: marchallList(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wantCode = http.StatusOK
			req, rec := newRequest(http.MethodGet, tt.path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_orderApi_updateStatus(t *testing.T) {
	env := setup()

	student := createStudent(t, env, "s1002", "홍길동")
	staff := createTeacher(t, env, "t1001", "김선생")
	staffToken := getToken(t, staff)

	ord := createOrder(t, env, "홍길동", "콜라", 2)
	accepted := marchallObj(t, map[string]string{"status": "accepted"})

	tests := []httpTest{
		{
			name: "Auth required", path: "/orders/" + ord.ID, body: accepted,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Staff required", path: "/orders/" + ord.ID, body: accepted, token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Pending is not a decision", path: "/orders/" + ord.ID, token: staffToken,
			body:     marchallObj(t, map[string]string{"status": "pending"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": "status must be one of [accepted rejected]"}),
		},
		{
			name: "Unknown order", path: "/orders/nope", body: accepted, token: staffToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "order not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPatch, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Accept emits orderUpdated", func(t *testing.T) {
		sub := env.broker.Subscribe()
		defer sub.Close()

		req, rec := newAuthRequest(http.MethodPatch, "/orders/"+ord.ID, staffToken, accepted)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got order.Order
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, order.StatusAccepted, got.Status)

		evts := drainEvents(sub)
		if assert.Len(t, evts, 1) {
			assert.Equal(t, "orderUpdated", evts[0].EventName())
			assert.Equal(t, order.StatusAccepted, evts[0].EventData().(order.Order).Status)
		}

		// refetch returns the terminal status
		req, rec = newRequest(http.MethodGet, "/orders")
		env.app.ServeHTTP(rec, req)
		var orders []order.Order
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		if assert.Len(t, orders, 1) {
			assert.Equal(t, order.StatusAccepted, orders[0].Status)
		}
	})

	t.Run("Transitions are one-shot", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPatch, "/orders/"+ord.ID, staffToken,
			marchallObj(t, map[string]string{"status": "rejected"}))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "order status already finalized"}),
		}, rec)
	})
}

func Test_orderApi_cancel(t *testing.T) {
	env := setup()

	owner := createStudent(t, env, "s1002", "홍길동")
	other := createStudent(t, env, "s2001", "이몽룡")
	staff := createTeacher(t, env, "t1001", "김선생")

	ord1 := createOrder(t, env, "홍길동", "콜라", 2)
	ord2 := createOrder(t, env, "홍길동", "사이다", 1)

	t.Run("Owner only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/orders/"+ord1.ID, getToken(t, other))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		}, rec)
	})

	t.Run("Soft-cancel emits orderUpdated", func(t *testing.T) {
		sub := env.broker.Subscribe()
		defer sub.Close()

		req, rec := newAuthRequest(http.MethodDelete, "/orders/"+ord1.ID, getToken(t, owner))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]string{"message": "order cancelled"}),
		}, rec)

		evts := drainEvents(sub)
		if assert.Len(t, evts, 1) {
			assert.Equal(t, "orderUpdated", evts[0].EventName())
			assert.Equal(t, order.StatusCancelled, evts[0].EventData().(order.Order).Status)
		}

		// the record is kept, status cancelled
		req, rec = newRequest(http.MethodGet, "/orders?studentName="+urlQuery("홍길동"))
		env.app.ServeHTTP(rec, req)
		var orders []order.Order
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		if assert.Len(t, orders, 2) {
			assert.Equal(t, order.StatusCancelled, orders[1].Status)
		}
	})

	t.Run("Cancelled order cannot be cancelled again", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/orders/"+ord1.ID, getToken(t, owner))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "order status already finalized"}),
		}, rec)
	})

	t.Run("Staff may cancel anyone's order", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/orders/"+ord2.ID, getToken(t, staff))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]string{"message": "order cancelled"}),
		}, rec)
	})
}

func Test_orderApi_popular(t *testing.T) {
	env := setup()

	createOrder(t, env, "홍길동", "콜라", 2)
	createOrder(t, env, "이몽룡", "콜라", 3)
	createOrder(t, env, "홍길동", "콜라", 1)
	createOrder(t, env, "이몽룡", "사이다", 5)
	createOrder(t, env, "홍길동", "신라면", 4)
	createOrder(t, env, "이몽룡", "새우깡", 1)

	// sum per menu, descending, top 3 only
	req, rec := newRequest(http.MethodGet, "/orders/popular")
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallList(t,
			order.MenuCount{Menu: "콜라", TotalQuantity: 6},
			order.MenuCount{Menu: "사이다", TotalQuantity: 5},
			order.MenuCount{Menu: "신라면", TotalQuantity: 4},
		),
	}, rec)
}
