package middleware

import (
	"os"
	"time"

	"PalletTrack/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SessionCookie is the name of the signed cookie carrying the session.
const SessionCookie = "session"

const sessionTTL = 24 * time.Hour

// Fallback for local development only; deployments set SESSION_SECRET.
const devSecretKey = "pallettrack-dev-secret"

const sessionLocalsKey = "session"

// SessionClaims is the JWT payload stored in the session cookie.
type SessionClaims struct {
	UserID   uint   `json:"uid"`
	UserName string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte(devSecretKey)
}

// IssueSessionCookie signs a session for the given user and attaches it to
// the response as an HttpOnly cookie.
func IssueSessionCookie(c *fiber.Ctx, user Models.User) error {
	claims := SessionClaims{
		UserID:   user.ID,
		UserName: user.Name,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

// ClearSessionCookie resets the session cookie to its logged-out state.
// Safe to call with no session present.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// DecodeSession reads the session cookie and returns the identity it holds.
// Any missing, expired or tampered cookie yields a logged-out session.
func DecodeSession(c *fiber.Ctx) Models.Session {
	cookie := c.Cookies(SessionCookie)
	if cookie == "" {
		return Models.Session{}
	}

	token, err := jwt.ParseWithClaims(cookie, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey(), nil
	})
	if err != nil || !token.Valid {
		return Models.Session{}
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return Models.Session{}
	}

	return Models.Session{
		UserID:     claims.UserID,
		UserName:   claims.UserName,
		Role:       claims.Role,
		IsLoggedIn: true,
	}
}

// SessionFrom returns the session placed in locals by Verify. Handlers behind
// the guard can rely on IsLoggedIn being true.
func SessionFrom(c *fiber.Ctx) Models.Session {
	if sess, ok := c.Locals(sessionLocalsKey).(Models.Session); ok {
		return sess
	}
	return Models.Session{}
}

// Verify gates a route on a valid session, and optionally on a role. An empty
// requiredRole admits any logged-in user. Wrong role answers 401 just like a
// missing session, so endpoints never confirm their existence to the wrong
// audience.
func Verify(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := DecodeSession(c)
		if !sess.IsLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if requiredRole != "" && sess.Role != requiredRole {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals(sessionLocalsKey, sess)
		return c.Next()
	}
}
