package jwt

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	SessionCookieName = "session"
	TokenTypeSession  = "session"
)

type Service interface {
	GenerateSessionToken(userID int64, role user.Role, sessionID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt int64) *http.Cookie
	ClearSessionCookie() *http.Cookie
}

// SessionClaims are the values the session middleware needs from a verified token.
type SessionClaims struct {
	UserID    int64
	SessionID string
	Role      user.Role
}

type JWTService struct {
	secretKey         string
	sessionExpiration time.Duration
	secureCookie      bool
	tokenAuth         *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, sessionExpiration time.Duration, secureCookie bool) Service {
	return &JWTService{
		secretKey:         secretKey,
		sessionExpiration: sessionExpiration,
		secureCookie:      secureCookie,
		tokenAuth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateSessionToken(userID int64, role user.Role, sessionID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.sessionExpiration).Unix()

	claims := map[string]interface{}{
		jwt.SubjectKey:    strconv.FormatInt(userID, 10),
		jwt.JwtIDKey:      sessionID,
		"role":            string(role),
		"type":            TokenTypeSession,
		jwt.ExpirationKey: expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromSessionCookie is a jwtauth token finder for the session cookie.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ParseSessionClaims extracts the session claims from a token already verified
// by jwtauth. It rejects tokens of any other type.
func ParseSessionClaims(token jwt.Token) (SessionClaims, error) {
	if token == nil {
		return SessionClaims{}, jwt.ErrInvalidJWT()
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeSession {
		return SessionClaims{}, jwt.ErrInvalidJWT()
	}

	userID, err := strconv.ParseInt(token.Subject(), 10, 64)
	if err != nil || userID <= 0 {
		return SessionClaims{}, jwt.ErrInvalidJWT()
	}

	sessionID := token.JwtID()
	if sessionID == "" {
		return SessionClaims{}, jwt.ErrInvalidJWT()
	}

	claims := SessionClaims{UserID: userID, SessionID: sessionID}
	if role, ok := token.Get("role"); ok {
		if roleStr, ok := role.(string); ok {
			claims.Role = user.Role(roleStr)
		}
	}
	return claims, nil
}
