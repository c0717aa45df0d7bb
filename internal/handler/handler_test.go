package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mapadmin/internal/errors"
	"mapadmin/internal/external"
	"mapadmin/internal/model"
	"mapadmin/internal/service"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// httpError asserts err is an *echo.HTTPError and returns its status and envelope.
func httpError(t *testing.T, err error) (int, errors.ErrorResponse) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, stderrors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	body, ok := he.Message.(errors.ErrorResponse)
	require.True(t, ok, "expected errors.ErrorResponse message, got %T", he.Message)
	return he.Code, body
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.Admin, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, id uuid.UUID, in service.AccountUpdate) (*service.AuthResult, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func TestAuthHandler_Login(t *testing.T) {
	admin := &model.Admin{ID: uuid.New(), Email: "ops@example.com", FirstName: "Ada", LastName: "L", Role: model.RoleAdmin}

	tests := []struct {
		name       string
		body       string
		setup      func(m *mockAuthService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"email":"ops@example.com","password":"pw"}`,
			setup: func(m *mockAuthService) {
				m.On("Login", mock.Anything, "ops@example.com", "pw").Return(&service.AuthResult{Token: "tok", Admin: admin}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       `{"email":"ops@example.com"}`,
			setup:      func(m *mockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			setup:      func(m *mockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name: "unknown email",
			body: `{"email":"nobody@example.com","password":"pw"}`,
			setup: func(m *mockAuthService) {
				m.On("Login", mock.Anything, "nobody@example.com", "pw").Return(nil, errors.ErrAdminNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "USER_NOT_FOUND",
		},
		{
			name: "wrong password",
			body: `{"email":"ops@example.com","password":"nope"}`,
			setup: func(m *mockAuthService) {
				m.On("Login", mock.Anything, "ops@example.com", "nope").Return(nil, errors.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			tt.setup(svc)
			h := NewAuthHandler(svc)

			c, rec := jsonRequest(newEcho(), http.MethodPost, "/api/auth/login", tt.body)
			err := h.Login(c)

			if tt.wantCode != "" {
				status, body := httpError(t, err)
				assert.Equal(t, tt.wantStatus, status)
				assert.Equal(t, tt.wantCode, body.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp AuthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "tok", resp.Token)
			assert.Equal(t, admin.ID.String(), resp.User.ID)
			assert.Equal(t, "Ada", resp.User.FirstName)
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_MeWithoutClaims(t *testing.T) {
	h := NewAuthHandler(new(mockAuthService))
	c, _ := jsonRequest(newEcho(), http.MethodGet, "/api/auth/me", "")

	status, body := httpError(t, h.Me(c))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}

type stubMapService struct {
	service.MapService
	created service.CreatePinInput
}

func (s *stubMapService) CreatePin(ctx context.Context, in service.CreatePinInput) (*model.MapPin, error) {
	s.created = in
	return &model.MapPin{
		ID:           uuid.New(),
		UserID:       in.UserID,
		LocationName: in.Name,
		Latitude:     *in.Latitude,
		Longitude:    *in.Longitude,
	}, nil
}

func TestMapHandler_CreatePin(t *testing.T) {
	svc := &stubMapService{}
	h := NewMapHandler(svc)
	userID := uuid.New()

	c, rec := jsonRequest(newEcho(), http.MethodPost, "/api/map-pins",
		`{"userId":"`+userID.String()+`","name":"Cairo","lat":30.04,"lng":31.24}`)
	require.NoError(t, h.CreatePin(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Cairo", got["name"])
	assert.Equal(t, 30.04, got["lat"])
	assert.Equal(t, 31.24, got["lng"])
	assert.Equal(t, userID.String(), got["userId"])
	assert.NotContains(t, got, "location_name")
}

func TestMapHandler_CreatePinRequiresCoordinates(t *testing.T) {
	h := NewMapHandler(&stubMapService{})

	c, _ := jsonRequest(newEcho(), http.MethodPost, "/api/map-pins",
		`{"userId":"`+uuid.NewString()+`","name":"Nowhere","lat":0}`)
	status, body := httpError(t, h.CreatePin(c))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

type stubPaymentService struct {
	service.PaymentService
	got service.PaymentInput
}

func (s *stubPaymentService) Create(ctx context.Context, in service.PaymentInput) (*model.Payment, error) {
	s.got = in
	return &model.Payment{ID: uuid.New()}, nil
}

func TestPaymentHandler_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("parses amount and ids", func(t *testing.T) {
		svc := &stubPaymentService{}
		h := NewPaymentHandler(svc)

		c, rec := jsonRequest(newEcho(), http.MethodPost, "/api/payments",
			`{"user_id":"`+userID.String()+`","amount":"9.99","currency":"USD","status":"completed"}`)
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.got.Amount)
		assert.True(t, decimal.RequireFromString("9.99").Equal(*svc.got.Amount))
		require.NotNil(t, svc.got.UserID)
		assert.Equal(t, userID, *svc.got.UserID)
		require.NotNil(t, svc.got.Status)
		assert.Equal(t, model.PaymentStatus("completed"), *svc.got.Status)
		assert.Nil(t, svc.got.PlanID)
	})

	t.Run("rejects malformed amount", func(t *testing.T) {
		h := NewPaymentHandler(&stubPaymentService{})

		c, _ := jsonRequest(newEcho(), http.MethodPost, "/api/payments", `{"amount":"nine"}`)
		status, body := httpError(t, h.Create(c))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_AMOUNT", body.Code)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		h := NewPaymentHandler(&stubPaymentService{})

		c, _ := jsonRequest(newEcho(), http.MethodPost, "/api/payments", `{"status":"lost"}`)
		status, _ := httpError(t, h.Create(c))

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

type stubWeatherService struct {
	got external.TileQuery
	err error
}

func (s *stubWeatherService) Tile(ctx context.Context, q external.TileQuery) (*external.Tile, error) {
	s.got = q
	if s.err != nil {
		return nil, s.err
	}
	return &external.Tile{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}, nil
}

func TestDataHandler_Weather(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		svc := &stubWeatherService{}
		h := NewDataHandler(nil, svc)

		c, rec := jsonRequest(newEcho(), http.MethodGet, "/api/data/weather", "")
		require.NoError(t, h.Weather(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes())
		assert.Equal(t, defaultTileZoom, svc.got.Z)
		assert.Equal(t, defaultTileX, svc.got.X)
		assert.Equal(t, defaultTileY, svc.got.Y)
	})

	t.Run("explicit tile", func(t *testing.T) {
		svc := &stubWeatherService{}
		h := NewDataHandler(nil, svc)

		c, _ := jsonRequest(newEcho(), http.MethodGet, "/api/data/weather?z=3&x=1&y=7&field=temperature", "")
		require.NoError(t, h.Weather(c))

		assert.Equal(t, external.TileQuery{Z: 3, X: 1, Y: 7, Field: "temperature"}, svc.got)
	})

	t.Run("non numeric zoom", func(t *testing.T) {
		h := NewDataHandler(nil, &stubWeatherService{})

		c, _ := jsonRequest(newEcho(), http.MethodGet, "/api/data/weather?z=high", "")
		status, _ := httpError(t, h.Weather(c))

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("upstream failure", func(t *testing.T) {
		h := NewDataHandler(nil, &stubWeatherService{err: &errors.UpstreamError{StatusCode: http.StatusUnauthorized, Message: "bad key"}})

		c, _ := jsonRequest(newEcho(), http.MethodGet, "/api/data/weather", "")
		status, body := httpError(t, h.Weather(c))

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UPSTREAM_ERROR", body.Code)
	})
}

type fakeImageSaver struct {
	dir      string
	filename string
	removed  []string
}

func (f *fakeImageSaver) RemoveImage(ctx context.Context, publicPath string) error {
	f.removed = append(f.removed, publicPath)
	return nil
}

func (f *fakeImageSaver) SaveImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	f.dir = dir
	f.filename = fh.Filename
	return "/uploads/" + dir + "/saved.png", nil
}

type stubAdminService struct {
	service.AdminService
	attached map[uuid.UUID]string
}

func (s *stubAdminService) SetAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	if s.attached == nil {
		return errors.ErrAdminNotFound
	}
	s.attached[id] = avatar
	return nil
}

func multipartRequest(t *testing.T, e *echo.Echo, target string, fields map[string]string, file string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != "" {
		part, err := w.CreateFormFile("avatar", file)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminHandler_UploadAvatar(t *testing.T) {
	t.Run("stores and attaches", func(t *testing.T) {
		uploads := &fakeImageSaver{}
		svc := &stubAdminService{attached: map[uuid.UUID]string{}}
		h := NewAdminHandler(svc, uploads)
		owner := uuid.New()

		c, rec := multipartRequest(t, newEcho(), "/api/admins/upload/avatar", map[string]string{"userId": owner.String()}, "me.png")
		require.NoError(t, h.UploadAvatar(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, avatarDir, uploads.dir)
		assert.Equal(t, "me.png", uploads.filename)
		assert.Equal(t, "/uploads/avatars/saved.png", svc.attached[owner])

		var resp AvatarResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "/uploads/avatars/saved.png", resp.Avatar)
	})

	t.Run("store only without userId", func(t *testing.T) {
		uploads := &fakeImageSaver{}
		h := NewAdminHandler(&stubAdminService{}, uploads)

		c, rec := multipartRequest(t, newEcho(), "/api/admins/upload/avatar", nil, "me.png")
		require.NoError(t, h.UploadAvatar(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "me.png", uploads.filename)
	})

	t.Run("no file", func(t *testing.T) {
		h := NewAdminHandler(&stubAdminService{}, &fakeImageSaver{})

		c, _ := multipartRequest(t, newEcho(), "/api/admins/upload/avatar", map[string]string{"userId": uuid.NewString()}, "")
		status, body := httpError(t, h.UploadAvatar(c))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "NO_FILE", body.Code)
	})

	t.Run("unknown owner", func(t *testing.T) {
		uploads := &fakeImageSaver{}
		h := NewAdminHandler(&stubAdminService{}, uploads)

		c, _ := multipartRequest(t, newEcho(), "/api/admins/upload/avatar", map[string]string{"userId": uuid.NewString()}, "me.png")
		status, _ := httpError(t, h.UploadAvatar(c))

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, []string{"/uploads/avatars/saved.png"}, uploads.removed)
	})
}

type stubUserService struct {
	service.UserService
	err error
}

func (s *stubUserService) Create(ctx context.Context, in service.CreateUserInput) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.User{ID: uuid.New(), Email: in.Email, Avatar: in.Avatar}, nil
}

func TestUserHandler_Create_Avatar(t *testing.T) {
	fields := map[string]string{
		"firstName":       "Lin",
		"lastName":        "Chen",
		"email":           "lin@example.com",
		"password":        "pw",
		"confirmPassword": "pw",
	}

	t.Run("kept on success", func(t *testing.T) {
		uploads := &fakeImageSaver{}
		h := NewUserHandler(&stubUserService{}, uploads)

		c, rec := multipartRequest(t, newEcho(), "/api/user", fields, "me.png")
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Empty(t, uploads.removed)
	})

	t.Run("removed when the account is rejected", func(t *testing.T) {
		uploads := &fakeImageSaver{}
		h := NewUserHandler(&stubUserService{err: errors.ErrEmailTaken}, uploads)

		c, _ := multipartRequest(t, newEcho(), "/api/user", fields, "me.png")
		status, _ := httpError(t, h.Create(c))

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, []string{"/uploads/avatars/saved.png"}, uploads.removed)
	})

	t.Run("nothing stored on password mismatch", func(t *testing.T) {
		uploads := &fakeImageSaver{}
		h := NewUserHandler(&stubUserService{}, uploads)

		mismatch := map[string]string{}
		for k, v := range fields {
			mismatch[k] = v
		}
		mismatch["confirmPassword"] = "other"
		c, _ := multipartRequest(t, newEcho(), "/api/user", mismatch, "me.png")
		status, _ := httpError(t, h.Create(c))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Empty(t, uploads.filename)
	})
}

func TestUintParam(t *testing.T) {
	e := newEcho()
	c, _ := jsonRequest(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")

	c.SetParamValues("42")
	id, err := uintParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.SetParamValues("-1")
	_, err = uintParam(c, "id")
	status, body := httpError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", body.Code)
}
