package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	. "github.com/gbswdev/snackbar/apps/api/echo"
	"github.com/gbswdev/snackbar/core"
	"github.com/gbswdev/snackbar/core/bus"
	"github.com/gbswdev/snackbar/core/cheer"
	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/order"
	"github.com/gbswdev/snackbar/core/user"
	emailsvc "github.com/gbswdev/snackbar/services/email"
	dummydb "github.com/gbswdev/snackbar/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testEnv struct {
	app    Server
	broker *bus.Broker

	itemSvc  *item.Service
	orderSvc *order.Service
	usrSvc   *user.Service
	cheerSvc *cheer.Service
}

// testLogger drops everything; request failures are asserted on, not logged.
type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

// setup builds a fresh in-memory app. Debug is forced off so error bodies
// keep their structured shape.
func setup() *testEnv {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	db := dummydb.Open()
	broker := bus.NewBroker()
	mailSvc := emailsvc.NewConsoleServiceMock()

	itemSvc := item.NewService(dummydb.NewItemRepository(db))
	orderSvc := order.NewService(dummydb.NewOrderRepository(db), broker)
	usrSvc := user.NewService(dummydb.NewUserRepository(db), mailSvc)
	cheerSvc := cheer.NewService(dummydb.NewCheerRepository(db), broker)

	app := NewServer(
		&Options{
			DisableReqLogs: true,
			Logger:         testLogger{},
			Broker:         broker,
			ItemSvc:        itemSvc,
			OrderSvc:       orderSvc,
			UserSvc:        usrSvc,
			CheerSvc:       cheerSvc,
		},
	)
	return &testEnv{
		app:      app,
		broker:   broker,
		itemSvc:  itemSvc,
		orderSvc: orderSvc,
		usrSvc:   usrSvc,
		cheerSvc: cheerSvc,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func createStudent(t *testing.T, env *testEnv, id, name string) user.User {
	usr, err := env.usrSvc.Create(context.Background(), user.RoleStudent, user.NewUser{ID: id, Name: name})
	if err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	return usr
}

func createTeacher(t *testing.T, env *testEnv, id, name string) user.User {
	usr, err := env.usrSvc.Create(context.Background(), user.RoleTeacher, user.NewUser{ID: id, Name: name})
	if err != nil {
		t.Fatalf("createTeacher(): %v", err)
	}
	return usr
}

func createItem(t *testing.T, env *testEnv, name, typ string) item.Item {
	it, err := env.itemSvc.Create(context.Background(), item.NewItem{Name: name, Type: typ})
	if err != nil {
		t.Fatalf("createItem(): %v", err)
	}
	return it
}

func createOrder(t *testing.T, env *testEnv, studentName, menu string, qty int) order.Order {
	ord, err := env.orderSvc.Create(context.Background(), order.NewOrder{
		StudentName: studentName,
		UserJob:     "student",
		Menu:        menu,
		Quantity:    qty,
	})
	if err != nil {
		t.Fatalf("createOrder(): %v", err)
	}
	return ord
}

// drainEvents empties a subscription without blocking.
func drainEvents(sub *bus.Subscription) []bus.Event {
	var evts []bus.Event
	for {
		select {
		case evt := <-sub.C:
			evts = append(evts, evt)
		default:
			return evts
		}
	}
}

func urlQuery(s string) string { return url.QueryEscape(s) }

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
