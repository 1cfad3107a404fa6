package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/internal/config"
	"lms/package/client/database"
)

type fakeUserStore struct {
	nextID int
	users  map[int]*User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int]*User{}}
}

func (f *fakeUserStore) add(u User) *User {
	u.ID = f.nextID
	f.nextID++
	stored := u
	f.users[stored.ID] = &stored
	return &stored
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserStore) UserByID(_ context.Context, id int) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (*User, error) {
	return f.add(User{Name: name, Email: email, Password: passwordHash, IsActive: true}), nil
}

func newTestRouter(store UserStore) (*httprouter.Router, *TokenService) {
	tokens := NewTokenService(&config.Config{JWT: config.JWTConfig{
		SecretKey:       "test-secret",
		AccessTTLHours:  1,
		RefreshTTLHours: 24,
	}})
	authenticator := NewAuthenticator(tokens, store)
	router := httprouter.New()
	NewHandler(store, tokens, authenticator).Register(router)
	return router, tokens
}

func doJSON(router *httprouter.Router, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignUp(t *testing.T) {
	store := newFakeUserStore()
	router, _ := newTestRouter(store)

	w := doJSON(router, http.MethodPost, "/auth/sign-up/",
		`{"name":"New User","email":"newuser@example.com","password":"securepassword"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			ID    int    `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, "newuser@example.com", resp.User.Email)
	assert.Equal(t, "New User", resp.User.Name)

	created, err := store.UserByEmail(context.Background(), "newuser@example.com")
	require.NoError(t, err)
	assert.True(t, CheckPassword(created.Password, "securepassword"))
	assert.False(t, created.IsStaff)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	store.add(User{Name: "Existing", Email: "taken@example.com", IsActive: true})
	router, _ := newTestRouter(store)

	w := doJSON(router, http.MethodPost, "/auth/sign-up/",
		`{"name":"New","email":"taken@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestSignUpMissingFields(t *testing.T) {
	router, _ := newTestRouter(newFakeUserStore())

	for _, body := range []string{
		`{"email":"a@example.com","password":"pw"}`,
		`{"name":"A","password":"pw"}`,
		`{"name":"A","email":"a@example.com"}`,
		`{"name":"   ","email":"a@example.com","password":"pw"}`,
	} {
		w := doJSON(router, http.MethodPost, "/auth/sign-up/", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestSignUpSanitizesName(t *testing.T) {
	store := newFakeUserStore()
	router, _ := newTestRouter(store)

	w := doJSON(router, http.MethodPost, "/auth/sign-up/",
		`{"name":"  <b>Eve</b> ","email":"eve@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	created, err := store.UserByEmail(context.Background(), "eve@example.com")
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;Eve&lt;/b&gt;", created.Name)
}

func TestSignIn(t *testing.T) {
	store := newFakeUserStore()
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	store.add(User{Name: "Alice Smith", Email: "alice.smith@example.com", Password: hash, IsActive: true, IsStaff: true})
	router, _ := newTestRouter(store)

	w := doJSON(router, http.MethodPost, "/auth/sign-in/",
		`{"email":"alice.smith@example.com","password":"password1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			Email   string `json:"email"`
			Name    string `json:"name"`
			IsStaff bool   `json:"is_staff"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, "Alice Smith", resp.User.Name)
	assert.True(t, resp.User.IsStaff)
}

func TestSignInUniformFailure(t *testing.T) {
	store := newFakeUserStore()
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	store.add(User{Name: "Alice", Email: "alice@example.com", Password: hash, IsActive: true})
	store.add(User{Name: "Bob", Email: "bob@example.com", Password: hash, IsActive: false})
	router, _ := newTestRouter(store)

	for _, body := range []string{
		`{"email":"unknown@example.com","password":"password1"}`,
		`{"email":"alice@example.com","password":"wrong"}`,
		`{"email":"bob@example.com","password":"password1"}`,
	} {
		w := doJSON(router, http.MethodPost, "/auth/sign-in/", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Invalid email or password.", body)
	}
}

func TestMe(t *testing.T) {
	store := newFakeUserStore()
	u := store.add(User{Name: "Alice", Email: "alice@example.com", IsActive: true, IsStaff: true})
	router, tokens := newTestRouter(store)

	pair, err := tokens.IssuePair(u)
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/auth/users/me/", "", pair.Access)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		IsStaff bool   `json:"is_staff"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.True(t, resp.IsStaff)
}

func TestMeRequiresToken(t *testing.T) {
	router, _ := newTestRouter(newFakeUserStore())

	w := doJSON(router, http.MethodGet, "/auth/users/me/", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/auth/users/me/", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRejectsInactiveAccount(t *testing.T) {
	store := newFakeUserStore()
	u := store.add(User{Name: "Gone", Email: "gone@example.com", IsActive: true})
	router, tokens := newTestRouter(store)

	pair, err := tokens.IssuePair(u)
	require.NoError(t, err)

	store.users[u.ID].IsActive = false
	w := doJSON(router, http.MethodGet, "/auth/users/me/", "", pair.Access)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
