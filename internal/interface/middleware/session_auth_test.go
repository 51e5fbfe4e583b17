package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/tests/testutil/mocks"
)

func newAuthTestContext(sessionID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionAuthMiddleware_Authenticate(t *testing.T) {
	user := entity.NewUser("123456789", "jaylen", "")

	t.Run("populates context for valid session", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepository(t)
		userRepo := mocks.NewMockUserRepository(t)

		session := entity.NewSession("sess-1", user.ID, "test-agent", "127.0.0.1")
		sessionRepo.On("FindByID", mock.Anything, "sess-1").Return(session, nil)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		sessionRepo.On("Save", mock.Anything, session).Return(nil)

		c, _ := newAuthTestContext("sess-1")
		m := NewSessionAuthMiddleware(sessionRepo, userRepo)

		var handlerCalled bool
		err := m.Authenticate()(func(c echo.Context) error {
			handlerCalled = true
			assert.Equal(t, user.ID.String(), GetUserID(c))
			assert.Equal(t, "sess-1", GetSessionID(c))
			assert.Equal(t, user, GetUser(c))
			return nil
		})(c)

		require.NoError(t, err)
		assert.True(t, handlerCalled)
	})

	t.Run("rejects request without cookie", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepository(t)
		userRepo := mocks.NewMockUserRepository(t)

		c, _ := newAuthTestContext("")
		m := NewSessionAuthMiddleware(sessionRepo, userRepo)

		err := m.Authenticate()(func(c echo.Context) error { return nil })(c)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})

	t.Run("deletes and rejects expired session", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepository(t)
		userRepo := mocks.NewMockUserRepository(t)

		session := entity.NewSession("sess-2", user.ID, "test-agent", "127.0.0.1")
		session.ExpiresAt = time.Now().Add(-time.Hour)
		sessionRepo.On("FindByID", mock.Anything, "sess-2").Return(session, nil)
		sessionRepo.On("Delete", mock.Anything, "sess-2").Return(nil)

		c, _ := newAuthTestContext("sess-2")
		m := NewSessionAuthMiddleware(sessionRepo, userRepo)

		err := m.Authenticate()(func(c echo.Context) error { return nil })(c)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
		assert.Equal(t, "session expired", appErr.Message)
	})
}
