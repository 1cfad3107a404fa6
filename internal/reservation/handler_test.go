package reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/internal/auth"
	"lms/internal/config"
	"lms/internal/handlers"
	"lms/package/client/database"
)

type fakeStorage struct {
	nextID        int
	reservations  map[int]*Reservation
	copyAvailable map[int]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{nextID: 1, reservations: map[int]*Reservation{}, copyAvailable: map[int]bool{}}
}

func (f *fakeStorage) List(_ context.Context, filter Filter) ([]*Reservation, error) {
	var out []*Reservation
	for _, r := range f.reservations {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.BookID != nil && r.BookID != *filter.BookID {
			continue
		}
		if filter.Returned != nil && r.Returned() != *filter.Returned {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStorage) ByID(_ context.Context, id int) (*Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return r, nil
}

func (f *fakeStorage) Create(_ context.Context, userID, bookID, copyID int, start, due handlers.Date) (*Reservation, error) {
	if _, ok := f.copyAvailable[copyID]; !ok {
		return nil, database.ErrNotFound
	}
	f.copyAvailable[copyID] = false
	r := &Reservation{
		ID:        f.nextID,
		UserID:    userID,
		BookID:    bookID,
		CopyID:    copyID,
		StartDate: start,
		DueDate:   due,
		Status:    StatusActive,
	}
	f.nextID++
	f.reservations[r.ID] = r
	return r, nil
}

func (f *fakeStorage) Return(_ context.Context, id int) (int, error) {
	r, ok := f.reservations[id]
	if !ok {
		return 0, database.ErrNotFound
	}
	if r.Status == StatusReturned {
		return 0, ErrAlreadyReturned
	}
	r.Status = StatusReturned
	f.copyAvailable[r.CopyID] = true
	return r.CopyID, nil
}

func (f *fakeStorage) Extend(_ context.Context, id, days int) (handlers.Date, error) {
	r, ok := f.reservations[id]
	if !ok {
		return handlers.Date{}, database.ErrNotFound
	}
	r.DueDate = r.DueDate.AddDays(days)
	return r.DueDate, nil
}

func (f *fakeStorage) CloseActiveByCopy(_ context.Context, copyID int) (int, error) {
	for _, r := range f.reservations {
		if r.CopyID == copyID && r.Status == StatusActive {
			r.Status = StatusReturned
			f.copyAvailable[copyID] = true
			return r.ID, nil
		}
	}
	return 0, database.ErrNotFound
}

type fakeUserStore struct {
	users map[int]*auth.User
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserStore) UserByID(_ context.Context, id int) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) CreateUser(context.Context, string, string, string) (*auth.User, error) {
	return nil, database.ErrNotFound
}

type fixture struct {
	router  *httprouter.Router
	storage *fakeStorage
	tokens  *auth.TokenService
	staff   *auth.User
	member  *auth.User
	other   *auth.User
}

func newFixture() *fixture {
	staff := &auth.User{ID: 1, Name: "Librarian", Email: "lib@example.com", IsStaff: true, IsActive: true}
	member := &auth.User{ID: 2, Name: "Member", Email: "member@example.com", IsActive: true}
	other := &auth.User{ID: 3, Name: "Other", Email: "other@example.com", IsActive: true}
	users := &fakeUserStore{users: map[int]*auth.User{1: staff, 2: member, 3: other}}

	tokens := auth.NewTokenService(&config.Config{JWT: config.JWTConfig{
		SecretKey:       "test-secret",
		AccessTTLHours:  1,
		RefreshTTLHours: 24,
	}})
	authenticator := auth.NewAuthenticator(tokens, users)

	storage := newFakeStorage()
	router := httprouter.New()
	NewHandler(storage, users, authenticator).Register(router)

	return &fixture{router: router, storage: storage, tokens: tokens, staff: staff, member: member, other: other}
}

func (f *fixture) tokenFor(t *testing.T, u *auth.User) string {
	t.Helper()
	pair, err := f.tokens.IssuePair(u)
	require.NoError(t, err)
	return pair.Access
}

func (f *fixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) seedReservation(userID, bookID, copyID int, start string) *Reservation {
	date, _ := handlers.ParseDate(start)
	f.storage.copyAvailable[copyID] = true
	r, _ := f.storage.Create(context.Background(), userID, bookID, copyID, date, date.AddDays(loanDays))
	return r
}

func TestCreateReservation(t *testing.T) {
	f := newFixture()
	f.storage.copyAvailable[5] = true

	w := f.do(http.MethodPost, "/reservations/",
		`{"user_email":"member@example.com","book_id":4,"copy_id":5,"start_date":"2025-02-10"}`,
		f.tokenFor(t, f.staff))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-02-10", resp["start_date"])
	assert.Equal(t, "2025-02-17", resp["due_date"])
	assert.Equal(t, false, resp["returned"])

	// The referenced copy was flipped to unavailable.
	assert.False(t, f.storage.copyAvailable[5])
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture()
	f.storage.copyAvailable[5] = true
	token := f.tokenFor(t, f.staff)

	w := f.do(http.MethodPost, "/reservations/",
		`{"user_email":"member@example.com","book_id":4,"copy_id":5,"start_date":"10-02-2025"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid start_date")

	w = f.do(http.MethodPost, "/reservations/",
		`{"user_email":"nobody@example.com","book_id":4,"copy_id":5,"start_date":"2025-02-10"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")

	w = f.do(http.MethodPost, "/reservations/",
		`{"user_email":"member@example.com","book_id":4,"start_date":"2025-02-10"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationRequiresStaff(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/reservations/",
		`{"user_email":"member@example.com","book_id":4,"copy_id":5,"start_date":"2025-02-10"}`,
		f.tokenFor(t, f.member))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReturnReservation(t *testing.T) {
	f := newFixture()
	r := f.seedReservation(f.member.ID, 4, 5, "2025-02-10")
	token := f.tokenFor(t, f.staff)

	w := f.do(http.MethodPut, "/reservations/1/", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Copy    struct {
			CopyID      int  `json:"copy_id"`
			IsAvailable bool `json:"is_available"`
		} `json:"copy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, r.CopyID, resp.Copy.CopyID)
	assert.True(t, resp.Copy.IsAvailable)
	assert.True(t, f.storage.copyAvailable[r.CopyID])

	// A second return is a conflict.
	w = f.do(http.MethodPut, "/reservations/1/", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already returned")
}

func TestReturnReservationRequiresStaff(t *testing.T) {
	f := newFixture()
	f.seedReservation(f.member.ID, 4, 5, "2025-02-10")

	w := f.do(http.MethodPut, "/reservations/1/", "", f.tokenFor(t, f.member))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExtendReservation(t *testing.T) {
	f := newFixture()
	f.seedReservation(f.member.ID, 4, 5, "2025-02-10")
	token := f.tokenFor(t, f.member)

	w := f.do(http.MethodPut, "/reservations/1/extend/", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2025-02-24")

	// Extensions compose.
	w = f.do(http.MethodPut, "/reservations/1/extend/", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2025-03-03")
}

func TestExtendSomeoneElsesReservation(t *testing.T) {
	f := newFixture()
	f.seedReservation(f.member.ID, 4, 5, "2025-02-10")

	w := f.do(http.MethodPut, "/reservations/1/extend/", "", f.tokenFor(t, f.other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Staff may extend anyone's reservation.
	w = f.do(http.MethodPut, "/reservations/1/extend/", "", f.tokenFor(t, f.staff))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtendUnknownReservation(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPut, "/reservations/42/extend/", "", f.tokenFor(t, f.staff))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListScopedToOwnReservations(t *testing.T) {
	f := newFixture()
	f.seedReservation(f.member.ID, 4, 5, "2025-02-10")
	f.seedReservation(f.other.ID, 4, 6, "2025-02-11")

	w := f.do(http.MethodGet, "/reservations/", "", f.tokenFor(t, f.member))
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, float64(f.member.ID), items[0]["user_id"])

	w = f.do(http.MethodGet, "/reservations/", "", f.tokenFor(t, f.staff))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestListFilters(t *testing.T) {
	f := newFixture()
	f.seedReservation(f.member.ID, 4, 5, "2025-02-10")
	f.seedReservation(f.member.ID, 9, 6, "2025-02-11")
	_, err := f.storage.Return(context.Background(), 2)
	require.NoError(t, err)
	token := f.tokenFor(t, f.staff)

	w := f.do(http.MethodGet, "/reservations/?book_id=9", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, float64(9), items[0]["book_id"])

	w = f.do(http.MethodGet, "/reservations/?returned=true", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0]["returned"])

	w = f.do(http.MethodGet, "/reservations/?returned=false", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, false, items[0]["returned"])

	w = f.do(http.MethodGet, "/reservations/?returned=maybe", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRequiresAuthentication(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/reservations/", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
