// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/panjabighar/panjabi-backend/internal/models"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.GET("/seller-only", AuthRequired(), SellerRequired(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/admin-only", AuthRequired(), AdminRequired(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r, db
}

func requestWithToken(t *testing.T, r *gin.Engine, path, email string) *httptest.ResponseRecorder {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if email != "" {
		token, err := utils.GenerateJWT(email, 1)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := requestWithToken(t, r, "/seller-only", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBadTokenIsUnauthorized(t *testing.T) {
	r, _ := setupAuthTest(t)

	req, _ := http.NewRequest(http.MethodGet, "/seller-only", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWrongRoleIsForbidden(t *testing.T) {
	r, db := setupAuthTest(t)
	require.NoError(t, db.Create(&models.User{Email: "c@example.com", Role: models.RoleCustomer}).Error)

	w := requestWithToken(t, r, "/seller-only", "c@example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = requestWithToken(t, r, "/admin-only", "c@example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnknownUserIsForbidden(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := requestWithToken(t, r, "/seller-only", "nobody@example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// Role checks read the database on every request, so a promotion takes
// effect with the token the user already holds.
func TestRoleLookupIsLive(t *testing.T) {
	r, db := setupAuthTest(t)
	require.NoError(t, db.Create(&models.User{Email: "c@example.com", Role: models.RoleCustomer}).Error)

	w := requestWithToken(t, r, "/seller-only", "c@example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "c@example.com").
		Update("role", models.RoleSeller).Error)

	w = requestWithToken(t, r, "/seller-only", "c@example.com")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBearerHeaderFallback(t *testing.T) {
	r, db := setupAuthTest(t)
	require.NoError(t, db.Create(&models.User{Email: "s@example.com", Role: models.RoleSeller}).Error)

	token, err := utils.GenerateJWT("s@example.com", 1)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/seller-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
